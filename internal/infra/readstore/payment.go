package readstore

import (
	"context"

	"restobook/internal/infra"
	"restobook/internal/infra/db"
	"restobook/internal/pkg/pgconv"
	"restobook/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx}
}

func (r *PaymentReadStore) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*queries.PaymentView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, order_id, amount_minor, method, gateway_order_ref,
		       gateway_payment_ref, status, success, payment_date, created_at
		FROM payments
		WHERE order_id = $1`,
		pgconv.UUIDToPgtype(orderID),
	)

	var view queries.PaymentView
	err := row.Scan(
		&view.ID, &view.OrderID, &view.AmountMinor, &view.Method,
		&view.GatewayOrderRef, &view.GatewayPaymentRef, &view.Status,
		&view.Success, &view.PaymentDate, &view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	return &view, nil
}
