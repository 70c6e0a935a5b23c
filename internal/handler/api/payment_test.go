//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

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

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockPaymentQueries
	handler      *api.PaymentHandler

	actorID uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockPaymentQueries(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands, s.mockQueries)

	s.actorID = uuid.New()

	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.actorID)
		c.Set("user_role", user.RoleCustomer)
	})

	s.router.POST("/payments/intent", s.handler.CreateIntent)
	s.router.POST("/payments/verify", s.handler.Verify)
	s.router.POST("/payments/process", s.handler.Process)
	s.router.GET("/payments/order/:orderId", s.handler.GetByOrder)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) TestCreateIntent() {
	url := "/payments/intent"
	orderID := uuid.New()
	body := map[string]any{"orderId": orderID.String(), "method": "UPI"}

	s.Run("success: returns 201 with the gateway checkout fields", func() {
		result := &commands.PaymentIntentResult{
			PaymentID:       uuid.New(),
			OrderID:         orderID,
			GatewayOrderRef: "order_abc",
			AmountMinor:     45000,
			Currency:        "INR",
			GatewayKeyID:    "rzp_test_key",
		}
		s.mockCommands.EXPECT().CreateIntent(gomock.Any(), gomock.Any(), s.actorID, false).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)

		var response resdto.PaymentIntentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("order_abc", response.GatewayOrderRef)
		s.Equal(int64(45000), response.AmountMinor)
		s.Equal("INR", response.Currency)
		s.Equal("rzp_test_key", response.GatewayKeyID)
	})

	s.Run("error: 400 Bad Request on malformed body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"method": "UPI"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "order not found",
				commandsError:  commands.ErrOrderNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Order not found",
			},
			{
				name:           "order owned by someone else",
				commandsError:  commands.ErrOrderNotOwned,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Access denied",
			},
			{
				name:           "order already paid",
				commandsError:  commands.ErrOrderAlreadyPaid,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already paid",
			},
			{
				name:           "order not payable",
				commandsError:  commands.ErrOrderNotPayable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not in a payable state",
			},
			{
				name:           "gateway unreachable",
				commandsError:  commands.ErrGatewayUnavailable,
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "gateway is unavailable",
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
				s.mockCommands.EXPECT().CreateIntent(gomock.Any(), gomock.Any(), s.actorID, false).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *PaymentHandlerTestSuite) TestVerify() {
	url := "/payments/verify"
	body := map[string]any{
		"gatewayOrderRef":   "order_abc",
		"gatewayPaymentRef": "pay_123",
		"gatewaySignature":  "sig",
	}

	s.Run("success: fresh confirmation returns 200 with replayed false", func() {
		result := &commands.VerifyPaymentResult{
			OrderID:   uuid.New(),
			PaymentID: uuid.New(),
			Replayed:  false,
		}
		s.mockCommands.EXPECT().Verify(gomock.Any(), gomock.Any()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)

		var response resdto.VerifyPaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("SUCCESS", response.Status)
		s.False(response.Replayed)
	})

	s.Run("success: replayed confirmation still returns 200", func() {
		result := &commands.VerifyPaymentResult{
			OrderID:   uuid.New(),
			PaymentID: uuid.New(),
			Replayed:  true,
		}
		s.mockCommands.EXPECT().Verify(gomock.Any(), gomock.Any()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)

		var response resdto.VerifyPaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Replayed)
	})

	s.Run("error: 400 when the signature does not verify", func() {
		s.mockCommands.EXPECT().Verify(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrPaymentSignature).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "signature verification failed")
	})

	s.Run("error: 404 for an unknown gateway order", func() {
		s.mockCommands.EXPECT().Verify(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrPaymentNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Payment not found")
	})

	s.Run("error: 409 on a conflicting payment state", func() {
		s.mockCommands.EXPECT().Verify(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrPaymentConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "conflicting state")
	})

	s.Run("error: 400 when the callback triplet is incomplete", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{
			"gatewayOrderRef": "order_abc",
		})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *PaymentHandlerTestSuite) TestProcess() {
	url := "/payments/process"
	orderID := uuid.New()
	body := map[string]any{"orderId": orderID.String(), "method": "CASH"}

	s.Run("success: returns 201 with the payment id", func() {
		paymentID := uuid.New()
		s.mockCommands.EXPECT().ProcessManual(gomock.Any(), gomock.Any()).
			Return(paymentID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(paymentID.String(), response["paymentId"])
	})

	s.Run("error: 400 on an unknown method", func() {
		s.mockCommands.EXPECT().ProcessManual(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrPaymentMethodInvalid).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown payment method")
	})

	s.Run("error: 409 when the order is already settled", func() {
		s.mockCommands.EXPECT().ProcessManual(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrOrderAlreadyPaid).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already paid")
	})
}

func (s *PaymentHandlerTestSuite) TestGetByOrder() {
	orderID := uuid.New()
	url := "/payments/order/" + orderID.String()

	s.Run("success: returns the payment view", func() {
		view := &queries.PaymentView{
			ID:          uuid.New(),
			OrderID:     orderID,
			AmountMinor: 45000,
			Method:      "UPI",
			Status:      "SUCCESS",
			Success:     true,
		}
		s.mockQueries.EXPECT().GetByOrderID(gomock.Any(), orderID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)

		var response resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(orderID, response.OrderID)
		s.True(response.Success)
	})

	s.Run("error: 400 on a malformed order id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/order/not-a-uuid", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})

	s.Run("error: 404 when no payment exists for the order", func() {
		s.mockQueries.EXPECT().GetByOrderID(gomock.Any(), orderID).
			Return(nil, errors.New("no rows")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Payment not found")
	})
}
