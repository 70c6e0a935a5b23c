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

type FeedbackHandler struct {
	feedbackCommands commands.FeedbackCommands
	feedbackQueries  queries.FeedbackQueries
}

func NewFeedbackHandler(feedbackCommands commands.FeedbackCommands, feedbackQueries queries.FeedbackQueries) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackCommands: feedbackCommands,
		feedbackQueries:  feedbackQueries,
	}
}

// @Summary Submit feedback
// @Description Leave a rating, optionally tied to one of the customer's completed orders
// @Tags feedback
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.SubmitFeedbackRequest true "Feedback"
// @Success 201 {object} resdto.SubmitFeedbackResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req reqdto.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.feedbackCommands.Submit(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrFeedbackValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid feedback data",
			})
		case errors.Is(err, commands.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
		case errors.Is(err, commands.ErrOrderNotOwned):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Order belongs to another customer",
			})
		case errors.Is(err, commands.ErrOrderNotCompleted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Feedback can only reference a completed order",
			})
		case errors.Is(err, commands.ErrDuplicateFeedback):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Feedback for this order already exists",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.SubmitFeedbackResponse{ID: id})
}

// @Summary Get feedback
// @Description Get a feedback entry; customers may only see their own
// @Tags feedback
// @Security BearerAuth
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} resdto.FeedbackResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /feedback/{id} [get]
func (h *FeedbackHandler) Get(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.feedbackQueries.GetByID(c.Request.Context(), actorID, actorIsStaff(c), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrFeedbackAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		default:
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Feedback not found",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromFeedbackView(view))
}

// @Summary List my feedback
// @Description List the authenticated customer's feedback entries, newest first
// @Tags feedback
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.FeedbackListResponse
// @Failure 400 {object} map[string]string
// @Router /feedback [get]
func (h *FeedbackHandler) ListMine(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	items, next, err := h.feedbackQueries.ListByCustomer(c.Request.Context(), actorID, cursor, limit)
	if err != nil {
		respondListErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromFeedbackList(items, next))
}

// @Summary List all feedback
// @Description List feedback across all customers with optional filters
// @Tags feedback
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Param category query string false "Category filter"
// @Param q query string false "Comment text search"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.FeedbackListResponse
// @Failure 400 {object} map[string]string
// @Router /feedback/all [get]
func (h *FeedbackHandler) ListAll(c *gin.Context) {
	var filters queries.FeedbackFilters
	if v := c.Query("status"); v != "" {
		filters.Status = &v
	}
	if v := c.Query("category"); v != "" {
		filters.Category = &v
	}
	if v := c.Query("q"); v != "" {
		filters.Search = &v
	}
	cursor, limit := pageParams(c)

	items, next, err := h.feedbackQueries.ListAll(c.Request.Context(), filters, cursor, limit)
	if err != nil {
		respondListErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromFeedbackList(items, next))
}

// @Summary Update feedback
// @Description Amend a pending feedback entry; only the author may edit
// @Tags feedback
// @Security BearerAuth
// @Accept json
// @Param id path string true "Feedback ID"
// @Param request body reqdto.UpdateFeedbackRequest true "Updated fields"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /feedback/{id} [put]
func (h *FeedbackHandler) Update(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.feedbackCommands.Update(c.Request.Context(), id, req, actorID)
	h.respondMutation(c, err)
}

// @Summary Moderate feedback
// @Description Set a feedback entry's triage status and attach internal notes
// @Tags feedback
// @Security BearerAuth
// @Accept json
// @Param id path string true "Feedback ID"
// @Param request body reqdto.ModerateFeedbackRequest true "Triage decision"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /feedback/{id}/status [put]
func (h *FeedbackHandler) Moderate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.ModerateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.feedbackCommands.Moderate(c.Request.Context(), id, req)
	h.respondMutation(c, err)
}

// @Summary Delete feedback
// @Description Remove a feedback entry; customers may only remove their own
// @Tags feedback
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /feedback/{id} [delete]
func (h *FeedbackHandler) Delete(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.feedbackCommands.Delete(c.Request.Context(), id, actorID, actorIsStaff(c))
	h.respondMutation(c, err)
}

// @Summary Feedback statistics
// @Description Aggregate rating, status and category counts across all feedback
// @Tags feedback
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.FeedbackStatsResponse
// @Router /feedback/stats [get]
func (h *FeedbackHandler) Stats(c *gin.Context) {
	stats, err := h.feedbackQueries.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromFeedbackStats(stats))
}

func (h *FeedbackHandler) respondMutation(c *gin.Context, err error) {
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrFeedbackNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Feedback not found",
			})
		case errors.Is(err, commands.ErrFeedbackNotOwned):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		case errors.Is(err, commands.ErrFeedbackLocked):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Feedback has already been reviewed",
			})
		case errors.Is(err, commands.ErrFeedbackValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid feedback data",
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
