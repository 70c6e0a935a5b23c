package api

import (
	"errors"
	"net/http"

	reqdto "restobook/internal/handler/dto/request"
	resdto "restobook/internal/handler/dto/response"
	"restobook/internal/usecase/commands"
	"restobook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	menuCommands commands.MenuCommands
	menuQueries  queries.MenuQueries
}

func NewMenuHandler(menuCommands commands.MenuCommands, menuQueries queries.MenuQueries) *MenuHandler {
	return &MenuHandler{
		menuCommands: menuCommands,
		menuQueries:  menuQueries,
	}
}

// @Summary Create menu item
// @Description Add an item to the menu
// @Tags menu
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateMenuItemRequest true "Menu item"
// @Success 201 {object} resdto.CreateMenuItemResponse
// @Failure 400 {object} map[string]string
// @Router /menu [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req reqdto.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.menuCommands.CreateItem(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrMenuValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid menu item data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateMenuItemResponse{ID: id})
}

// @Summary Update menu item
// @Description Update a menu item; existing order lines keep their captured price
// @Tags menu
// @Security BearerAuth
// @Accept json
// @Param id path string true "Menu item ID"
// @Param request body reqdto.UpdateMenuItemRequest true "Updated fields"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /menu/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.menuCommands.UpdateItem(c.Request.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, commands.ErrMenuItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Menu item not found",
			})
		case errors.Is(err, commands.ErrMenuValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid menu item data",
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

// @Summary Delete menu item
// @Description Remove a menu item; past order lines are unaffected
// @Tags menu
// @Security BearerAuth
// @Param id path string true "Menu item ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /menu/{id} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.menuCommands.DeleteItem(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrMenuItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Menu item not found",
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

// @Summary Get menu item
// @Description Get a single menu item
// @Tags menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} resdto.MenuItemResponse
// @Failure 404 {object} map[string]string
// @Router /menu/{id} [get]
func (h *MenuHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.menuQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Menu item not found",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromMenuItemView(view))
}

// @Summary List menu
// @Description List menu items, optionally filtered by category or availability
// @Tags menu
// @Produce json
// @Param category query string false "Category filter"
// @Param available query bool false "Only available items"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.MenuListResponse
// @Failure 400 {object} map[string]string
// @Router /menu [get]
func (h *MenuHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	cursor, limit := pageParams(c)

	var (
		views []*queries.MenuItemView
		next  *queries.Cursor
		err   error
	)
	switch {
	case c.Query("category") != "":
		views, next, err = h.menuQueries.ListByCategory(ctx, c.Query("category"), cursor, limit)
	case c.Query("available") == "true":
		views, next, err = h.menuQueries.ListAvailable(ctx, cursor, limit)
	default:
		views, next, err = h.menuQueries.List(ctx, cursor, limit)
	}
	if err != nil {
		respondListErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromMenuItemViews(views, next))
}
