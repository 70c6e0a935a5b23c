package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	reqdto "restobook/internal/handler/dto/request"
	resdto "restobook/internal/handler/dto/response"
	"restobook/internal/handler/middleware"
	"restobook/internal/usecase/commands"
	"restobook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Reserve a table for a date and slot
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.bookingCommands.CreateBooking(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrTableNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Table not found",
			})
		case errors.Is(err, commands.ErrSlotConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Table is already booked for this date and slot",
			})
		case errors.Is(err, commands.ErrCustomerHasActiveBooking):
			c.JSON(http.StatusConflict, gin.H{
				"error": "You already have an active booking",
			})
		case errors.Is(err, commands.ErrTableUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Table is not available for booking",
			})
		case errors.Is(err, commands.ErrTableTooSmall):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Table cannot seat this party",
			})
		case errors.Is(err, commands.ErrBookingValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid booking data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreateBookingResponse{ID: id})
}

// @Summary Confirm booking
// @Description Move a pending booking to confirmed
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.bookingCommands.ConfirmBooking)
}

// @Summary Cancel booking
// @Description Cancel a booking; customers may only cancel their own
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.bookingCommands.CancelBooking(c.Request.Context(), id, actorID, actorIsStaff(c))
	h.respondTransition(c, err)
}

// @Summary Check in booking
// @Description Seat an arriving party and mark the table occupied
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/checkin [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.bookingCommands.CheckIn)
}

// @Summary Check out booking
// @Description Complete a seated booking and free the table
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/checkout [post]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.bookingCommands.CheckOut)
}

// @Summary Mark no-show
// @Description Mark a confirmed booking whose party never arrived
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/no-show [post]
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.bookingCommands.MarkNoShow)
}

// @Summary Get booking
// @Description Get a booking; customers may only see their own
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), actorID, actorIsStaff(c), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		default:
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List my bookings
// @Description List the authenticated customer's bookings
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	cursor, limit := pageParams(c)

	views, next, err := h.bookingQueries.ListByCustomer(c.Request.Context(), actorID, cursor, limit)
	if err != nil {
		respondListErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views, next))
}

// @Summary List bookings by date
// @Description List all bookings for a service date
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param date query string true "Booking date (YYYY-MM-DD)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} map[string]string
// @Router /bookings/by-date [get]
func (h *BookingHandler) ListByDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "date must be YYYY-MM-DD",
		})
		return
	}
	cursor, limit := pageParams(c)

	views, next, err := h.bookingQueries.ListByDate(c.Request.Context(), date, cursor, limit)
	if err != nil {
		respondListErr(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(views, next))
}

func (h *BookingHandler) transition(c *gin.Context, apply func(ctx context.Context, id uuid.UUID) error) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	h.respondTransition(c, apply(c.Request.Context(), id))
}

func (h *BookingHandler) respondTransition(c *gin.Context, err error) {
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrBookingNotOwned):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
		case errors.Is(err, commands.ErrBookingStateConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking is not in a state that allows this action",
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

func requireActor(c *gin.Context) (uuid.UUID, bool) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return uuid.Nil, false
	}
	return actorID, true
}

func actorIsStaff(c *gin.Context) bool {
	role, ok := middleware.GetUserRole(c)
	return ok && role.IsStaff()
}
