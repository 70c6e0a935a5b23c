package request

type CreateTableRequest struct {
	Number   int32  `json:"number" binding:"required,gt=0"`
	Capacity int32  `json:"capacity" binding:"required,gt=0"`
	Location string `json:"location,omitempty"`
}

type UpdateTableRequest struct {
	Number   int32  `json:"number" binding:"required,gt=0"`
	Capacity int32  `json:"capacity" binding:"required,gt=0"`
	Location string `json:"location,omitempty"`
	Status   string `json:"status" binding:"required"`
}

type UpdateTableStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
