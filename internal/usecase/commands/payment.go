package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"restobook/internal/domain/order"
	"restobook/internal/domain/payment"
	reqdto "restobook/internal/handler/dto/request"
	"restobook/internal/infra"
	"restobook/internal/pkg/clock"
	"restobook/internal/pkg/errs"
	"restobook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound      = errs.New("payment not found")
	ErrOrderAlreadyPaid     = errs.New("order already paid")
	ErrOrderNotPayable      = errs.New("order status does not allow payment")
	ErrPaymentSignature     = errs.New("payment signature verification failed")
	ErrPaymentMethodInvalid = errs.New("invalid payment method")
	ErrPaymentConflict      = errs.New("concurrent payment attempt for the same order")
	ErrGatewayUnavailable   = errs.New("payment gateway request failed")
)

const (
	topicPaymentSucceeded = "payment.succeeded"
	topicPaymentFailed    = "payment.failed"

	paymentCurrency = "INR"
)

type PaymentIntentResult struct {
	PaymentID       uuid.UUID
	OrderID         uuid.UUID
	GatewayOrderRef string
	AmountMinor     int64
	Currency        string
	GatewayKeyID    string
}

type VerifyPaymentResult struct {
	OrderID   uuid.UUID
	PaymentID uuid.UUID
	// Replayed is true when this confirmation had already been applied; the
	// stored outcome is returned unchanged.
	Replayed bool
}

type PaymentCommands interface {
	CreateIntent(ctx context.Context, req reqdto.CreatePaymentIntentRequest, actorID uuid.UUID, actorIsStaff bool) (*PaymentIntentResult, error)
	Verify(ctx context.Context, req reqdto.VerifyPaymentRequest) (*VerifyPaymentResult, error)
	ProcessManual(ctx context.Context, req reqdto.ProcessPaymentRequest) (uuid.UUID, error)
}

type paymentCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway PaymentGateway
	clock   clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, gateway PaymentGateway, clk clock.Clock) PaymentCommands {
	return &paymentCommandsImpl{uow: uow, gateway: gateway, clock: clk}
}

type paymentEvent struct {
	PaymentID uuid.UUID `json:"payment_id"`
	OrderID   uuid.UUID `json:"order_id"`
	Amount    int64     `json:"amount_minor"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
}

// CreateIntent registers the order total with the gateway and stores the
// pending payment. Re-requesting an intent for an unpaid order reissues the
// same payment row against a fresh gateway order; a paid order is rejected.
//
// The gateway round trip runs between two short transactions: the first one
// validates the order and reads the amount, the second one re-validates under
// the row lock and persists the gateway refs. A slow or unreachable gateway
// therefore never pins a FOR UPDATE lock on the order.
func (c *paymentCommandsImpl) CreateIntent(ctx context.Context, req reqdto.CreatePaymentIntentRequest, actorID uuid.UUID, actorIsStaff bool) (*PaymentIntentResult, error) {
	method, err := payment.NewMethod(req.Method)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentMethodInvalid)
	}

	now := c.clock.Now()

	var amountMinor int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, _, err := c.payableOrder(ctx, tx, req.OrderID, actorID, actorIsStaff)
		if err != nil {
			return err
		}
		amountMinor = o.TotalAmount().MinorUnits()
		return nil
	})
	if err != nil {
		return nil, err
	}

	gwOrder, err := c.gateway.CreateOrder(ctx, amountMinor, paymentCurrency, req.OrderID.String())
	if err != nil {
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}

	var result *PaymentIntentResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Re-validate under the lock: the order may have been paid or closed
		// while the gateway call was in flight.
		o, existing, err := c.payableOrder(ctx, tx, req.OrderID, actorID, actorIsStaff)
		if err != nil {
			return err
		}

		p := existing
		if p == nil {
			p = payment.NewIntent(o.ID(), o.TotalAmount(), method, gwOrder.Ref, now)
			if err := tx.Payments().Create(ctx, p); err != nil {
				if infra.IsKind(err, infra.KindDuplicateKey) {
					return errs.Mark(err, ErrPaymentConflict)
				}
				return err
			}
		} else {
			if err := p.Reissue(o.TotalAmount(), method, gwOrder.Ref, now); err != nil {
				return errs.Mark(err, ErrOrderAlreadyPaid)
			}
			if err := tx.Payments().Save(ctx, p); err != nil {
				return err
			}
		}

		result = &PaymentIntentResult{
			PaymentID:       p.ID(),
			OrderID:         o.ID(),
			GatewayOrderRef: gwOrder.Ref,
			AmountMinor:     gwOrder.AmountMinor,
			Currency:        gwOrder.Currency,
			GatewayKeyID:    c.gateway.KeyID(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// payableOrder locks the order row and checks that the actor may pay for it
// and that no finalized payment exists yet. The pending payment row, if any,
// is returned locked alongside the order.
func (c *paymentCommandsImpl) payableOrder(ctx context.Context, tx shared.Tx, orderID uuid.UUID, actorID uuid.UUID, actorIsStaff bool) (*order.Order, *payment.Payment, error) {
	o, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.Mark(err, ErrOrderNotFound)
		}
		return nil, nil, err
	}
	if !actorIsStaff && o.CustomerID() != actorID {
		return nil, nil, ErrOrderNotOwned
	}
	if o.Status().IsTerminal() {
		return nil, nil, ErrOrderNotPayable
	}

	existing, err := tx.Payments().FindByOrderIDForUpdate(ctx, o.ID())
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, nil, err
	}
	if existing != nil && existing.IsFinalized() {
		return nil, nil, ErrOrderAlreadyPaid
	}
	return o, existing, nil
}

// Verify finalizes a payment from the gateway confirmation triplet.
//
// The signature is checked against the stored gateway order before any state
// changes. Finalization is idempotent: the payment row is locked, so a
// replayed confirmation observes the committed success and is acknowledged
// without a second write. A confirmation with a bad signature marks the
// pending payment FAILED and is rejected.
func (c *paymentCommandsImpl) Verify(ctx context.Context, req reqdto.VerifyPaymentRequest) (*VerifyPaymentResult, error) {
	now := c.clock.Now()

	var (
		result     *VerifyPaymentResult
		sigInvalid bool
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Payments().FindByGatewayOrderRefForUpdate(ctx, req.GatewayOrderRef)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrPaymentNotFound)
			}
			return err
		}

		if !c.gateway.VerifySignature(req.GatewayOrderRef, req.GatewayPaymentRef, req.GatewaySignature) {
			sigInvalid = true
			if p.IsFinalized() {
				// Never un-finalize a settled payment over a bad replay.
				return nil
			}
			if err := p.MarkFailed(now); err != nil {
				return err
			}
			if err := tx.Payments().Save(ctx, p); err != nil {
				return err
			}
			return enqueuePaymentEvent(ctx, tx, topicPaymentFailed, p, now)
		}

		if p.IsFinalized() {
			result = &VerifyPaymentResult{OrderID: p.OrderID(), PaymentID: p.ID(), Replayed: true}
			return nil
		}

		if err := p.MarkSucceeded(req.GatewayPaymentRef, req.GatewaySignature, now); err != nil {
			return err
		}
		if err := tx.Payments().Save(ctx, p); err != nil {
			return err
		}

		o, err := tx.Orders().FindByIDForUpdate(ctx, p.OrderID())
		if err != nil {
			return err
		}
		if err := o.ConfirmPaid(now); err != nil {
			return errs.Mark(err, ErrOrderNotPayable)
		}
		if err := tx.Orders().UpdateStatus(ctx, o.ID(), o.Status(), now); err != nil {
			return err
		}

		result = &VerifyPaymentResult{OrderID: p.OrderID(), PaymentID: p.ID(), Replayed: false}
		return enqueuePaymentEvent(ctx, tx, topicPaymentSucceeded, p, now)
	})
	if err != nil {
		return nil, err
	}
	if sigInvalid {
		return nil, ErrPaymentSignature
	}

	return result, nil
}

// ProcessManual settles an order offline (cash at the counter). The payment
// is recorded as immediately successful and the order advances the same way
// a gateway confirmation would.
func (c *paymentCommandsImpl) ProcessManual(ctx context.Context, req reqdto.ProcessPaymentRequest) (uuid.UUID, error) {
	method, err := payment.NewMethod(req.Method)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrPaymentMethodInvalid)
	}

	now := c.clock.Now()

	var paymentID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByIDForUpdate(ctx, req.OrderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrOrderNotFound)
			}
			return err
		}

		existing, err := tx.Payments().FindByOrderIDForUpdate(ctx, o.ID())
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}

		var p *payment.Payment
		if existing == nil {
			p = payment.NewSettled(o.ID(), o.TotalAmount(), method, now)
			if err := tx.Payments().Create(ctx, p); err != nil {
				if infra.IsKind(err, infra.KindDuplicateKey) {
					return errs.Mark(err, ErrPaymentConflict)
				}
				return err
			}
		} else {
			if existing.IsFinalized() {
				return ErrOrderAlreadyPaid
			}
			if err := existing.Reissue(o.TotalAmount(), method, existing.GatewayOrderRef(), now); err != nil {
				return errs.Mark(err, ErrOrderAlreadyPaid)
			}
			if err := existing.MarkSucceeded(uuid.NewString(), "", now); err != nil {
				return errs.Mark(err, ErrOrderAlreadyPaid)
			}
			if err := tx.Payments().Save(ctx, existing); err != nil {
				return err
			}
			p = existing
		}
		paymentID = p.ID()

		if err := o.ConfirmPaid(now); err != nil {
			return errs.Mark(err, ErrOrderNotPayable)
		}
		if err := tx.Orders().UpdateStatus(ctx, o.ID(), o.Status(), now); err != nil {
			return err
		}

		return enqueuePaymentEvent(ctx, tx, topicPaymentSucceeded, p, now)
	})
	if err != nil {
		return uuid.Nil, err
	}

	return paymentID, nil
}

func enqueuePaymentEvent(ctx context.Context, tx shared.Tx, topic string, p *payment.Payment, now time.Time) error {
	payload, err := json.Marshal(paymentEvent{
		PaymentID: p.ID(),
		OrderID:   p.OrderID(),
		Amount:    p.Amount().MinorUnits(),
		Method:    p.Method().String(),
		Status:    p.Status().String(),
	})
	if err != nil {
		slog.Warn("failed to marshal payment event", "payment_id", p.ID(), "error", err.Error())
		return nil
	}
	return tx.Outbox().CreateJob(ctx, topic, payload, now)
}
