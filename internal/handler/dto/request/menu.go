package request

type CreateMenuItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	PriceMinor  int64  `json:"priceMinor" binding:"required,gte=0"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type UpdateMenuItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	PriceMinor  int64  `json:"priceMinor" binding:"required,gte=0"`
	Category    string `json:"category,omitempty"`
	Available   bool   `json:"available"`
	ImageURL    string `json:"imageUrl,omitempty"`
}
