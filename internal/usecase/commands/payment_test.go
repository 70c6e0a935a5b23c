//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restobook/internal/domain/money"
	"restobook/internal/domain/order"
	"restobook/internal/domain/payment"
	reqdto "restobook/internal/handler/dto/request"
	"restobook/internal/pkg/clock"
	"restobook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PaymentCommandsTestSuite struct {
	suite.Suite
	uow      *fakeUoW
	clock    *clock.MockClock
	gateway  *fakeGateway
	commands commands.PaymentCommands
}

func (s *PaymentCommandsTestSuite) SetupTest() {
	s.uow = newFakeUoW()
	s.clock = clock.NewMockClock(time.Date(2026, 8, 31, 19, 0, 0, 0, time.UTC))
	s.gateway = &fakeGateway{orderRef: "order_abc", validSig: "valid-signature"}
	s.commands = commands.NewPaymentCommands(s.uow, s.gateway, s.clock)
}

func TestPaymentCommandsSuite(t *testing.T) {
	suite.Run(t, new(PaymentCommandsTestSuite))
}

// Subtests reuse the scripted gateway ref, so stored rows must not leak from
// one subtest into the next lookup.
func (s *PaymentCommandsTestSuite) TearDownSubTest() {
	s.uow.tx.payments.rows = map[uuid.UUID]*payment.Payment{}
	s.uow.tx.orders.rows = map[uuid.UUID]*order.Order{}
	s.uow.tx.outbox.jobs = nil
}

func (s *PaymentCommandsTestSuite) seedOrder(totalMinor int64) *order.Order {
	item, err := order.NewItem(uuid.New(), "Thali", 1, money.New(totalMinor), "")
	require.NoError(s.T(), err)
	o, err := order.NewOrder(uuid.New(), nil, []order.Item{item}, "", s.clock.Now())
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.uow.tx.orders.Create(context.Background(), o))
	return o
}

func (s *PaymentCommandsTestSuite) TestCreateIntent() {
	ctx := context.Background()

	s.Run("opens a gateway order for the order total", func() {
		o := s.seedOrder(45000)

		result, err := s.commands.CreateIntent(ctx,
			reqdto.CreatePaymentIntentRequest{OrderID: o.ID(), Method: "UPI"},
			o.CustomerID(), false)
		s.Require().NoError(err)

		s.Equal("order_abc", result.GatewayOrderRef)
		s.Equal(int64(45000), result.AmountMinor)
		s.Equal("INR", result.Currency)
		s.Equal("rzp_test_key", result.GatewayKeyID)
		s.Equal([]int64{45000}, s.gateway.createdFor, "amount sent to the gateway")
	})

	s.Run("unknown method", func() {
		o := s.seedOrder(100)
		_, err := s.commands.CreateIntent(ctx,
			reqdto.CreatePaymentIntentRequest{OrderID: o.ID(), Method: "CHEQUE"},
			o.CustomerID(), false)
		s.ErrorIs(err, commands.ErrPaymentMethodInvalid)
	})

	s.Run("order owned by someone else", func() {
		o := s.seedOrder(100)
		_, err := s.commands.CreateIntent(ctx,
			reqdto.CreatePaymentIntentRequest{OrderID: o.ID(), Method: "UPI"},
			uuid.New(), false)
		s.ErrorIs(err, commands.ErrOrderNotOwned)
	})

	s.Run("staff may open intents for any order", func() {
		o := s.seedOrder(100)
		_, err := s.commands.CreateIntent(ctx,
			reqdto.CreatePaymentIntentRequest{OrderID: o.ID(), Method: "UPI"},
			uuid.New(), true)
		s.NoError(err)
	})

	s.Run("cancelled order is not payable", func() {
		o := s.seedOrder(100)
		s.Require().NoError(o.Cancel(s.clock.Now()))

		_, err := s.commands.CreateIntent(ctx,
			reqdto.CreatePaymentIntentRequest{OrderID: o.ID(), Method: "UPI"},
			o.CustomerID(), false)
		s.ErrorIs(err, commands.ErrOrderNotPayable)
	})

	s.Run("re-requesting an intent reissues the same payment row", func() {
		o := s.seedOrder(45000)
		req := reqdto.CreatePaymentIntentRequest{OrderID: o.ID(), Method: "UPI"}

		first, err := s.commands.CreateIntent(ctx, req, o.CustomerID(), false)
		s.Require().NoError(err)

		s.gateway.orderRef = "order_def"
		defer func() { s.gateway.orderRef = "order_abc" }()
		second, err := s.commands.CreateIntent(ctx, req, o.CustomerID(), false)
		s.Require().NoError(err)

		s.Equal(first.PaymentID, second.PaymentID)
		s.Equal("order_def", second.GatewayOrderRef)
	})

	s.Run("paid order is rejected", func() {
		o := s.seedOrder(45000)
		req := reqdto.CreatePaymentIntentRequest{OrderID: o.ID(), Method: "UPI"}
		_, err := s.commands.CreateIntent(ctx, req, o.CustomerID(), false)
		s.Require().NoError(err)

		_, err = s.commands.Verify(ctx, reqdto.VerifyPaymentRequest{
			GatewayOrderRef:   "order_abc",
			GatewayPaymentRef: "pay_123",
			GatewaySignature:  "valid-signature",
		})
		s.Require().NoError(err)

		_, err = s.commands.CreateIntent(ctx, req, o.CustomerID(), false)
		s.ErrorIs(err, commands.ErrOrderAlreadyPaid)
	})

	s.Run("gateway outage maps to a dedicated error and stores nothing", func() {
		o := s.seedOrder(100)
		s.gateway.createErr = errors.New("dial tcp: connection refused")
		defer func() { s.gateway.createErr = nil }()

		_, err := s.commands.CreateIntent(ctx,
			reqdto.CreatePaymentIntentRequest{OrderID: o.ID(), Method: "UPI"},
			o.CustomerID(), false)
		s.ErrorIs(err, commands.ErrGatewayUnavailable)
		s.Empty(s.uow.tx.payments.rows, "failed gateway call must not leave a payment row")
	})

	s.Run("gateway is never contacted for an unpayable order", func() {
		o := s.seedOrder(100)
		s.Require().NoError(o.Cancel(s.clock.Now()))
		calls := len(s.gateway.createdFor)

		_, err := s.commands.CreateIntent(ctx,
			reqdto.CreatePaymentIntentRequest{OrderID: o.ID(), Method: "UPI"},
			o.CustomerID(), false)
		s.ErrorIs(err, commands.ErrOrderNotPayable)
		s.Len(s.gateway.createdFor, calls)
	})
}

func (s *PaymentCommandsTestSuite) TestVerify() {
	ctx := context.Background()

	openIntent := func(o *order.Order) {
		_, err := s.commands.CreateIntent(ctx,
			reqdto.CreatePaymentIntentRequest{OrderID: o.ID(), Method: "UPI"},
			o.CustomerID(), false)
		s.Require().NoError(err)
	}

	confirmation := func(ref string) reqdto.VerifyPaymentRequest {
		return reqdto.VerifyPaymentRequest{
			GatewayOrderRef:   ref,
			GatewayPaymentRef: "pay_123",
			GatewaySignature:  "valid-signature",
		}
	}

	s.Run("valid confirmation settles payment and confirms order", func() {
		o := s.seedOrder(45000)
		openIntent(o)

		result, err := s.commands.Verify(ctx, confirmation("order_abc"))
		s.Require().NoError(err)
		s.False(result.Replayed)
		s.Equal(o.ID(), result.OrderID)

		p, err := s.uow.tx.payments.FindByOrderIDForUpdate(ctx, o.ID())
		s.Require().NoError(err)
		s.True(p.IsFinalized())
		s.Equal(order.StatusConfirmed, o.Status())
		s.Contains(s.uow.tx.outbox.topics(), "payment.succeeded")
	})

	s.Run("replayed confirmation is acknowledged without a second write", func() {
		o := s.seedOrder(45000)
		openIntent(o)

		first, err := s.commands.Verify(ctx, confirmation("order_abc"))
		s.Require().NoError(err)
		s.False(first.Replayed)

		second, err := s.commands.Verify(ctx, confirmation("order_abc"))
		s.Require().NoError(err)
		s.True(second.Replayed)
		s.Equal(first.PaymentID, second.PaymentID)
	})

	s.Run("bad signature marks the payment failed", func() {
		o := s.seedOrder(45000)
		openIntent(o)

		req := confirmation("order_abc")
		req.GatewaySignature = "forged"
		_, err := s.commands.Verify(ctx, req)
		s.ErrorIs(err, commands.ErrPaymentSignature)

		p, findErr := s.uow.tx.payments.FindByOrderIDForUpdate(ctx, o.ID())
		s.Require().NoError(findErr)
		s.Equal(payment.StatusFailed, p.Status())
		s.False(p.IsFinalized())
		s.Contains(s.uow.tx.outbox.topics(), "payment.failed")
	})

	s.Run("bad replay never un-finalizes a settled payment", func() {
		o := s.seedOrder(45000)
		openIntent(o)

		_, err := s.commands.Verify(ctx, confirmation("order_abc"))
		s.Require().NoError(err)

		req := confirmation("order_abc")
		req.GatewaySignature = "forged"
		_, err = s.commands.Verify(ctx, req)
		s.ErrorIs(err, commands.ErrPaymentSignature)

		p, findErr := s.uow.tx.payments.FindByOrderIDForUpdate(ctx, o.ID())
		s.Require().NoError(findErr)
		s.True(p.IsFinalized())
		s.Equal(payment.StatusSuccess, p.Status())
	})

	s.Run("unknown gateway order", func() {
		_, err := s.commands.Verify(ctx, confirmation("order_missing"))
		s.ErrorIs(err, commands.ErrPaymentNotFound)
	})
}

func (s *PaymentCommandsTestSuite) TestProcessManual() {
	ctx := context.Background()

	s.Run("cash settlement confirms the order immediately", func() {
		o := s.seedOrder(30000)

		paymentID, err := s.commands.ProcessManual(ctx,
			reqdto.ProcessPaymentRequest{OrderID: o.ID(), Method: "CASH"})
		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, paymentID)

		p, err := s.uow.tx.payments.FindByOrderIDForUpdate(ctx, o.ID())
		s.Require().NoError(err)
		s.True(p.IsFinalized())
		s.Equal(order.StatusConfirmed, o.Status())
	})

	s.Run("settling twice is rejected", func() {
		o := s.seedOrder(30000)
		req := reqdto.ProcessPaymentRequest{OrderID: o.ID(), Method: "CASH"}

		_, err := s.commands.ProcessManual(ctx, req)
		s.Require().NoError(err)

		_, err = s.commands.ProcessManual(ctx, req)
		s.ErrorIs(err, commands.ErrOrderAlreadyPaid)
	})

	s.Run("cash settlement after a failed gateway attempt reuses the row", func() {
		o := s.seedOrder(30000)
		_, err := s.commands.CreateIntent(ctx,
			reqdto.CreatePaymentIntentRequest{OrderID: o.ID(), Method: "UPI"},
			o.CustomerID(), false)
		s.Require().NoError(err)

		_, err = s.commands.Verify(ctx, reqdto.VerifyPaymentRequest{
			GatewayOrderRef:   "order_abc",
			GatewayPaymentRef: "pay_123",
			GatewaySignature:  "forged",
		})
		s.ErrorIs(err, commands.ErrPaymentSignature)

		paymentID, err := s.commands.ProcessManual(ctx,
			reqdto.ProcessPaymentRequest{OrderID: o.ID(), Method: "CASH"})
		s.Require().NoError(err)

		p, findErr := s.uow.tx.payments.FindByOrderIDForUpdate(ctx, o.ID())
		s.Require().NoError(findErr)
		s.Equal(p.ID(), paymentID)
		s.True(p.IsFinalized())
		s.Equal(payment.MethodCash, p.Method())
	})

	s.Run("unknown order", func() {
		_, err := s.commands.ProcessManual(ctx,
			reqdto.ProcessPaymentRequest{OrderID: uuid.New(), Method: "CASH"})
		s.ErrorIs(err, commands.ErrOrderNotFound)
	})
}
