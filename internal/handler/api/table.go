package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "restobook/internal/handler/dto/request"
	resdto "restobook/internal/handler/dto/response"
	"restobook/internal/usecase/commands"
	"restobook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TableHandler struct {
	tableCommands commands.TableCommands
	tableQueries  queries.TableQueries
}

func NewTableHandler(tableCommands commands.TableCommands, tableQueries queries.TableQueries) *TableHandler {
	return &TableHandler{
		tableCommands: tableCommands,
		tableQueries:  tableQueries,
	}
}

// @Summary Create table
// @Description Register a new dining table
// @Tags tables
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateTableRequest true "Table definition"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tables [post]
func (h *TableHandler) Create(c *gin.Context) {
	var req reqdto.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.tableCommands.CreateTable(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrTableNumberTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Table number is already in use",
			})
		case errors.Is(err, commands.ErrTableValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid table data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Update table
// @Description Update a table's number, capacity, or location
// @Tags tables
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body reqdto.UpdateTableRequest true "Updated fields"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tables/{id} [put]
func (h *TableHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.tableCommands.UpdateTable(c.Request.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, commands.ErrTableNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Table not found",
			})
		case errors.Is(err, commands.ErrTableNumberTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Table number is already in use",
			})
		case errors.Is(err, commands.ErrTableValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid table data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete table
// @Description Remove a table that has no bookings
// @Tags tables
// @Security BearerAuth
// @Param id path string true "Table ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tables/{id} [delete]
func (h *TableHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.tableCommands.DeleteTable(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrTableNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Table not found",
			})
		case errors.Is(err, commands.ErrTableInUse):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Table has bookings and cannot be removed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Set table status
// @Description Change a table's operational status
// @Tags tables
// @Security BearerAuth
// @Accept json
// @Param id path string true "Table ID"
// @Param request body reqdto.UpdateTableStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tables/{id}/status [patch]
func (h *TableHandler) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.tableCommands.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, commands.ErrTableNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Table not found",
			})
		case errors.Is(err, commands.ErrInvalidTableStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown table status",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get table
// @Description Get a table by ID
// @Tags tables
// @Security BearerAuth
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} resdto.TableResponse
// @Failure 404 {object} map[string]string
// @Router /tables/{id} [get]
func (h *TableHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.tableQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Table not found",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTableView(view))
}

// @Summary List tables
// @Description List all tables
// @Tags tables
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.TableResponse
// @Router /tables [get]
func (h *TableHandler) List(c *gin.Context) {
	views, err := h.tableQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTableViews(views))
}

// @Summary List available tables
// @Description List tables free for a given date, slot, and party size
// @Tags tables
// @Security BearerAuth
// @Produce json
// @Param date query string true "Booking date (YYYY-MM-DD)"
// @Param slot query string true "Dining slot"
// @Param guests query int true "Party size"
// @Success 200 {array} resdto.TableResponse
// @Failure 400 {object} map[string]string
// @Router /tables/available [get]
func (h *TableHandler) ListAvailable(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "date must be YYYY-MM-DD",
		})
		return
	}
	slot := c.Query("slot")
	if slot == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "slot is required",
		})
		return
	}
	guests64, err := strconv.ParseInt(c.Query("guests"), 10, 32)
	if err != nil || guests64 <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "guests must be a positive integer",
		})
		return
	}
	guests := int32(guests64)

	views, err := h.tableQueries.ListAvailable(c.Request.Context(), date, slot, guests)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTableViews(views))
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
