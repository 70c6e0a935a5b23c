package response

import (
	"log/slog"
	"time"

	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type TableResponse struct {
	ID        uuid.UUID `json:"id"`
	Number    int32     `json:"number"`
	Capacity  int32     `json:"capacity"`
	Location  string    `json:"location,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromTableView(v *queries.TableView) *TableResponse {
	var resp TableResponse
	if err := copier.Copy(&resp, v); err != nil {
		slog.Warn("failed to map table view", "error", err.Error())
	}
	return &resp
}

func FromTableViews(views []*queries.TableView) []*TableResponse {
	result := make([]*TableResponse, len(views))
	for i, v := range views {
		result[i] = FromTableView(v)
	}
	return result
}
