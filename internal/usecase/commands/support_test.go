//go:build unit

package commands_test

import (
	"context"
	"time"

	"restobook/internal/domain/booking"
	"restobook/internal/domain/feedback"
	"restobook/internal/domain/menu"
	"restobook/internal/domain/order"
	"restobook/internal/domain/payment"
	"restobook/internal/domain/table"
	"restobook/internal/domain/user"
	"restobook/internal/infra"
	"restobook/internal/usecase/commands"
	"restobook/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeUoW drives commands against in-memory stores. It mimics the transaction
// boundary only in that fn's error propagates; there is no rollback, which is
// fine for asserting decisions rather than persistence.
type fakeUoW struct {
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{tx: newFakeTx()}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

type fakeTx struct {
	tables   *fakeTableRepo
	bookings *fakeBookingRepo
	orders   *fakeOrderRepo
	payments *fakePaymentRepo
	menu     *fakeMenuRepo
	users    *fakeUserRepo
	feedback *fakeFeedbackRepo
	outbox   *fakeOutboxRepo
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		tables:   &fakeTableRepo{rows: map[uuid.UUID]*table.Table{}},
		bookings: &fakeBookingRepo{rows: map[uuid.UUID]*booking.Booking{}},
		orders:   &fakeOrderRepo{rows: map[uuid.UUID]*order.Order{}},
		payments: &fakePaymentRepo{rows: map[uuid.UUID]*payment.Payment{}},
		menu:     &fakeMenuRepo{rows: map[uuid.UUID]*menu.Item{}},
		users:    &fakeUserRepo{},
		feedback: &fakeFeedbackRepo{rows: map[uuid.UUID]*feedback.Feedback{}},
		outbox:   &fakeOutboxRepo{},
	}
}

func (t *fakeTx) Tables() shared.TableRepository      { return t.tables }
func (t *fakeTx) Bookings() shared.BookingRepository  { return t.bookings }
func (t *fakeTx) Orders() shared.OrderRepository      { return t.orders }
func (t *fakeTx) Payments() shared.PaymentRepository  { return t.payments }
func (t *fakeTx) Menu() shared.MenuRepository         { return t.menu }
func (t *fakeTx) Users() shared.UserRepository        { return t.users }
func (t *fakeTx) Feedback() shared.FeedbackRepository { return t.feedback }
func (t *fakeTx) Outbox() shared.OutboxRepository     { return t.outbox }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type fakeTableRepo struct {
	rows map[uuid.UUID]*table.Table
}

func (r *fakeTableRepo) Create(_ context.Context, t *table.Table) error {
	r.rows[t.ID()] = t
	return nil
}

func (r *fakeTableRepo) Update(_ context.Context, t *table.Table) error {
	if _, ok := r.rows[t.ID()]; !ok {
		return notFound("table not found")
	}
	r.rows[t.ID()] = t
	return nil
}

func (r *fakeTableRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return notFound("table not found")
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeTableRepo) FindByID(_ context.Context, id uuid.UUID) (*table.Table, error) {
	t, ok := r.rows[id]
	if !ok {
		return nil, notFound("table not found")
	}
	return t, nil
}

func (r *fakeTableRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*table.Table, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeTableRepo) UpdateStatus(_ context.Context, id uuid.UUID, status table.Status, now time.Time) error {
	t, ok := r.rows[id]
	if !ok {
		return notFound("table not found")
	}
	r.rows[id] = table.Reconstruct(
		t.ID(), t.Number(), t.Capacity(), t.Location(), status, t.CreatedAt(), now,
	)
	return nil
}

type fakeBookingRepo struct {
	rows map[uuid.UUID]*booking.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.rows[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.rows[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return b, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, _ booking.Status, _ time.Time) error {
	if _, ok := r.rows[id]; !ok {
		return notFound("booking not found")
	}
	return nil
}

func (r *fakeBookingRepo) CountActiveByCustomer(_ context.Context, customerID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.rows {
		if b.CustomerID() == customerID && b.IsActive() {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) ExistsActiveForSlot(_ context.Context, tableID uuid.UUID, date time.Time, slot string) (bool, error) {
	for _, b := range r.rows {
		if b.TableID() == tableID && b.IsActive() &&
			b.BookingDate().Value().Equal(date) && b.Slot().String() == slot {
			return true, nil
		}
	}
	return false, nil
}

type fakeOrderRepo struct {
	rows map[uuid.UUID]*order.Order
}

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	r.rows[o.ID()] = o
	return nil
}

func (r *fakeOrderRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.rows[id]
	if !ok {
		return nil, notFound("order not found")
	}
	return o, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, _ order.Status, _ time.Time) error {
	if _, ok := r.rows[id]; !ok {
		return notFound("order not found")
	}
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return notFound("order not found")
	}
	delete(r.rows, id)
	return nil
}

type fakePaymentRepo struct {
	rows map[uuid.UUID]*payment.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, p *payment.Payment) error {
	for _, existing := range r.rows {
		if existing.OrderID() == p.OrderID() {
			return infra.WrapRepoErr("payment exists", nil, infra.KindDuplicateKey)
		}
	}
	r.rows[p.ID()] = p
	return nil
}

func (r *fakePaymentRepo) Save(_ context.Context, p *payment.Payment) error {
	if _, ok := r.rows[p.ID()]; !ok {
		return notFound("payment not found")
	}
	r.rows[p.ID()] = p
	return nil
}

func (r *fakePaymentRepo) FindByOrderIDForUpdate(_ context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	for _, p := range r.rows {
		if p.OrderID() == orderID {
			return p, nil
		}
	}
	return nil, notFound("payment not found")
}

func (r *fakePaymentRepo) FindByGatewayOrderRefForUpdate(_ context.Context, ref string) (*payment.Payment, error) {
	for _, p := range r.rows {
		if p.GatewayOrderRef() == ref {
			return p, nil
		}
	}
	return nil, notFound("payment not found")
}

type fakeMenuRepo struct {
	rows map[uuid.UUID]*menu.Item
}

func (r *fakeMenuRepo) Create(_ context.Context, item *menu.Item) error {
	r.rows[item.ID()] = item
	return nil
}

func (r *fakeMenuRepo) Update(_ context.Context, item *menu.Item) error {
	if _, ok := r.rows[item.ID()]; !ok {
		return notFound("menu item not found")
	}
	r.rows[item.ID()] = item
	return nil
}

func (r *fakeMenuRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return notFound("menu item not found")
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*menu.Item, error) {
	item, ok := r.rows[id]
	if !ok {
		return nil, notFound("menu item not found")
	}
	return item, nil
}

type fakeUserRepo struct {
	created []*user.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.created = append(r.created, u)
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID, _ time.Time) error {
	return nil
}

type fakeFeedbackRepo struct {
	rows    map[uuid.UUID]*feedback.Feedback
	recalcs int
}

func (r *fakeFeedbackRepo) Create(_ context.Context, f *feedback.Feedback) error {
	if f.OrderID() != nil {
		for _, existing := range r.rows {
			if existing.OrderID() != nil && *existing.OrderID() == *f.OrderID() {
				return infra.WrapRepoErr("feedback exists for order", nil, infra.KindDuplicateKey)
			}
		}
	}
	r.rows[f.ID()] = f
	return nil
}

func (r *fakeFeedbackRepo) Save(_ context.Context, f *feedback.Feedback) error {
	if _, ok := r.rows[f.ID()]; !ok {
		return notFound("feedback not found")
	}
	r.rows[f.ID()] = f
	return nil
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return notFound("feedback not found")
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeFeedbackRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	f, ok := r.rows[id]
	if !ok {
		return nil, notFound("feedback not found")
	}
	return f, nil
}

func (r *fakeFeedbackRepo) RecalcStats(_ context.Context) error {
	r.recalcs++
	return nil
}

type outboxEntry struct {
	topic   string
	payload []byte
}

type fakeOutboxRepo struct {
	jobs []outboxEntry
}

func (r *fakeOutboxRepo) CreateJob(_ context.Context, topic string, payload []byte, _ time.Time) error {
	r.jobs = append(r.jobs, outboxEntry{topic: topic, payload: payload})
	return nil
}

func (r *fakeOutboxRepo) topics() []string {
	out := make([]string, len(r.jobs))
	for i, j := range r.jobs {
		out[i] = j.topic
	}
	return out
}

// fakeGateway satisfies the payment gateway port with scripted responses.
type fakeGateway struct {
	orderRef   string
	createErr  error
	validSig   string
	createdFor []int64
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountMinor int64, currency, _ string) (*commands.GatewayOrder, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.createdFor = append(g.createdFor, amountMinor)
	return &commands.GatewayOrder{Ref: g.orderRef, AmountMinor: amountMinor, Currency: currency}, nil
}

func (g *fakeGateway) VerifySignature(_, _, signature string) bool {
	return signature == g.validSig
}

func (g *fakeGateway) KeyID() string {
	return "rzp_test_key"
}
