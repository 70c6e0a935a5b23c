//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"restobook/internal/domain/user"
	"restobook/internal/handler/api"
	resdto "restobook/internal/handler/dto/response"
	"restobook/internal/usecase/commands"
	"restobook/internal/usecase/queries"
	"restobook/tests/common/httptest"
	commandsmock "restobook/tests/mock/commands"
	queriesmock "restobook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler

	actorID uuid.UUID
	role    user.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.actorID = uuid.New()
	s.role = user.RoleCustomer

	// Stand-in for the auth middleware: injects the suite's current actor.
	s.router.Use(func(c *gin.Context) {
		if s.actorID != uuid.Nil {
			c.Set("user_id", s.actorID)
			c.Set("user_role", s.role)
		}
	})

	s.router.POST("/bookings", s.handler.Create)
	s.router.GET("/bookings", s.handler.ListMine)
	s.router.GET("/bookings/by-date", s.handler.ListByDate)
	s.router.GET("/bookings/:id", s.handler.Get)
	s.router.POST("/bookings/:id/confirm", s.handler.Confirm)
	s.router.POST("/bookings/:id/cancel", s.handler.Cancel)
	s.router.POST("/bookings/:id/checkin", s.handler.CheckIn)
	s.router.POST("/bookings/:id/checkout", s.handler.CheckOut)
	s.router.POST("/bookings/:id/no-show", s.handler.MarkNoShow)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) createBody() map[string]any {
	return map[string]any{
		"tableId":     uuid.New().String(),
		"bookingDate": "2026-09-15T00:00:00Z",
		"slot":        "DINNER_1",
		"durationMin": 90,
		"guests":      2,
	}
}

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	s.Run("success: returns 201 with the new booking id", func() {
		bookingID := uuid.New()
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actorID).
			Return(bookingID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody())

		var response resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(bookingID, response.ID)
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		body := s.createBody()
		delete(body, "slot")

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 401 when not authenticated", func() {
		s.actorID = uuid.Nil
		defer func() { s.actorID = uuid.New() }()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "User not authenticated")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "table not found",
				commandsError:  commands.ErrTableNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Table not found",
			},
			{
				name:           "slot already taken",
				commandsError:  commands.ErrSlotConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already booked",
			},
			{
				name:           "customer already has an active booking",
				commandsError:  commands.ErrCustomerHasActiveBooking,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "active booking",
			},
			{
				name:           "table not available",
				commandsError:  commands.ErrTableUnavailable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not available",
			},
			{
				name:           "party too large for the table",
				commandsError:  commands.ErrTableTooSmall,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "cannot seat",
			},
			{
				name:           "validation failure",
				commandsError:  commands.ErrBookingValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid booking data",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actorID).
					Return(uuid.Nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.createBody())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestTransitions() {
	bookingID := uuid.New()

	s.Run("success: confirm returns 204", func() {
		s.mockCommands.EXPECT().ConfirmBooking(gomock.Any(), bookingID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+bookingID.String()+"/confirm", nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: checkin and checkout return 204", func() {
		s.mockCommands.EXPECT().CheckIn(gomock.Any(), bookingID).Return(nil).Times(1)
		s.mockCommands.EXPECT().CheckOut(gomock.Any(), bookingID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+bookingID.String()+"/checkin", nil)
		s.Equal(http.StatusNoContent, rec.Code)
		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+bookingID.String()+"/checkout", nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/not-a-uuid/confirm", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})

	s.Run("error: 404 when booking is missing", func() {
		s.mockCommands.EXPECT().MarkNoShow(gomock.Any(), bookingID).
			Return(commands.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+bookingID.String()+"/no-show", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 409 when the state machine rejects the edge", func() {
		s.mockCommands.EXPECT().ConfirmBooking(gomock.Any(), bookingID).
			Return(commands.ErrBookingStateConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+bookingID.String()+"/confirm", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not in a state")
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"

	s.Run("success: customer cancels with staff flag off", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.actorID, false).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: waiter cancels with staff flag on", func() {
		s.role = user.RoleWaiter
		defer func() { s.role = user.RoleCustomer }()

		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.actorID, true).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 when cancelling someone else's booking", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.actorID, false).
			Return(commands.ErrBookingNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	view := &queries.BookingView{
		ID:          bookingID,
		CustomerID:  uuid.New(),
		TableID:     uuid.New(),
		TableNumber: 7,
		BookingDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Slot:        "DINNER_1",
		DurationMin: 90,
		Guests:      2,
		Status:      "CONFIRMED",
	}

	s.Run("success: returns the view with a date-only booking date", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, false, bookingID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("2026-09-15", response.BookingDate)
		s.Equal(int32(7), response.TableNumber)
	})

	s.Run("error: 403 when the booking belongs to someone else", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, false, bookingID).
			Return(nil, queries.ErrBookingAccessDenied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("error: 404 when missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, false, bookingID).
			Return(nil, errors.New("no rows")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestListMine() {
	url := "/bookings"

	s.Run("success: first page carries the cursor of the last row", func() {
		views := []*queries.BookingView{{ID: uuid.New(), CustomerID: s.actorID}}
		next := &queries.Cursor{After: "opaque-token"}
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), s.actorID, nil, queries.DefaultListLimit).
			Return(views, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Bookings, 1)
		s.Equal("opaque-token", response.NextCursor)
	})

	s.Run("success: limit and after query params are passed through", func() {
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), s.actorID, &queries.Cursor{After: "tok"}, 5).
			Return([]*queries.BookingView{}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=5&after=tok", nil)

		var response resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.Bookings)
		s.Empty(response.NextCursor)
	})

	s.Run("error: 400 on a malformed cursor", func() {
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), s.actorID, gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?after=garbage", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid pagination cursor")
	})
}

func (s *BookingHandlerTestSuite) TestListByDate() {
	s.Run("success: passes the parsed service date through", func() {
		wantDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().ListByDate(gomock.Any(), wantDate, nil, queries.DefaultListLimit).
			Return([]*queries.BookingView{}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/by-date?date=2026-09-15", nil)

		var response resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.Bookings)
	})

	s.Run("error: 400 on a bad date string", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/by-date?date=15-09-2026", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "YYYY-MM-DD")
	})
}
