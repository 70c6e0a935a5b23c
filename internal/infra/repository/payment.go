package repository

import (
	"context"
	"time"

	"restobook/internal/domain/money"
	"restobook/internal/domain/payment"
	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

const paymentColumns = `id, order_id, amount_minor, method, gateway_order_ref,
	gateway_payment_ref, gateway_signature, status, success, payment_date,
	created_at, updated_at`

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (
			id, order_id, amount_minor, method, gateway_order_ref,
			gateway_payment_ref, gateway_signature, status, success,
			payment_date, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		pgconv.UUIDToPgtype(p.ID()),
		pgconv.UUIDToPgtype(p.OrderID()),
		p.Amount().MinorUnits(),
		p.Method().String(),
		p.GatewayOrderRef(),
		p.GatewayPaymentRef(),
		p.GatewaySignature(),
		p.Status().String(),
		p.Success(),
		pgconv.TimePtrToPgtype(p.PaymentDate()),
		pgconv.TimeToPgtype(p.CreatedAt()),
		pgconv.TimeToPgtype(p.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payments
		SET amount_minor = $2, method = $3, gateway_order_ref = $4,
		    gateway_payment_ref = $5, gateway_signature = $6, status = $7,
		    success = $8, payment_date = $9, updated_at = $10
		WHERE id = $1`,
		pgconv.UUIDToPgtype(p.ID()),
		p.Amount().MinorUnits(),
		p.Method().String(),
		p.GatewayOrderRef(),
		p.GatewayPaymentRef(),
		p.GatewaySignature(),
		p.Status().String(),
		p.Success(),
		pgconv.TimePtrToPgtype(p.PaymentDate()),
		pgconv.TimeToPgtype(p.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PaymentRepository) FindByOrderIDForUpdate(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE order_id = $1 FOR UPDATE`,
		pgconv.UUIDToPgtype(orderID),
	)
	return r.scanOne(row, "payment for order not found")
}

// FindByGatewayOrderRefForUpdate locks the payment row during confirmation so
// a replayed confirmation for the same gateway order serializes behind the
// first one and sees its committed result.
func (r *PaymentRepository) FindByGatewayOrderRefForUpdate(ctx context.Context, gatewayOrderRef string) (*payment.Payment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE gateway_order_ref = $1 FOR UPDATE`,
		gatewayOrderRef,
	)
	return r.scanOne(row, "payment for gateway order not found")
}

func (r *PaymentRepository) scanOne(row rowScanner, notFoundMsg string) (*payment.Payment, error) {
	var (
		id, orderID                          uuid.UUID
		amountMinor                          int64
		method, orderRef, paymentRef, sig    string
		status                               string
		success                              bool
		paymentDate                          *time.Time
		createdAt, updatedAt                 time.Time
	)
	err := row.Scan(
		&id, &orderID, &amountMinor, &method, &orderRef,
		&paymentRef, &sig, &status, &success, &paymentDate,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(notFoundMsg, err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}

	methodVO, err := payment.NewMethod(method)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}

	return payment.Reconstruct(
		id, orderID, money.New(amountMinor), methodVO,
		orderRef, paymentRef, sig,
		payment.Status(status), success, paymentDate,
		createdAt, updatedAt,
	), nil
}
