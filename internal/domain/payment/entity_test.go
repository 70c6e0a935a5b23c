//go:build unit

package payment_test

import (
	"testing"
	"time"

	"restobook/internal/domain/money"
	"restobook/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentLifecycle(t *testing.T) {
	now := time.Now()

	t.Run("intent starts pending and unfinalized", func(t *testing.T) {
		p := payment.NewIntent(uuid.New(), money.New(45000), payment.MethodUPI, "order_abc", now)

		assert.Equal(t, payment.StatusPending, p.Status())
		assert.False(t, p.IsFinalized())
		assert.Equal(t, "order_abc", p.GatewayOrderRef())
		assert.Nil(t, p.PaymentDate())
	})

	t.Run("succeed finalizes exactly once", func(t *testing.T) {
		p := payment.NewIntent(uuid.New(), money.New(45000), payment.MethodUPI, "order_abc", now)

		require.NoError(t, p.MarkSucceeded("pay_123", "sig", now))
		assert.True(t, p.IsFinalized())
		assert.Equal(t, payment.StatusSuccess, p.Status())
		require.NotNil(t, p.PaymentDate())

		err := p.MarkSucceeded("pay_456", "sig2", now.Add(time.Minute))
		assert.ErrorIs(t, err, payment.ErrAlreadyFinalized)
		assert.Equal(t, "pay_123", p.GatewayPaymentRef(), "replay must not overwrite the settled reference")
	})

	t.Run("a settled payment cannot be failed", func(t *testing.T) {
		p := payment.NewIntent(uuid.New(), money.New(45000), payment.MethodCard, "order_abc", now)
		require.NoError(t, p.MarkSucceeded("pay_123", "sig", now))

		assert.ErrorIs(t, p.MarkFailed(now), payment.ErrAlreadyFinalized)
		assert.Equal(t, payment.StatusSuccess, p.Status())
	})

	t.Run("failed payment can be reissued against a new gateway order", func(t *testing.T) {
		p := payment.NewIntent(uuid.New(), money.New(45000), payment.MethodCard, "order_old", now)
		require.NoError(t, p.MarkFailed(now))

		require.NoError(t, p.Reissue(money.New(47000), payment.MethodUPI, "order_new", now))
		assert.Equal(t, payment.StatusPending, p.Status())
		assert.Equal(t, "order_new", p.GatewayOrderRef())
		assert.Equal(t, int64(47000), p.Amount().MinorUnits())
	})

	t.Run("settled payment cannot be reissued", func(t *testing.T) {
		p := payment.NewIntent(uuid.New(), money.New(45000), payment.MethodCard, "order_abc", now)
		require.NoError(t, p.MarkSucceeded("pay_123", "sig", now))

		err := p.Reissue(money.New(1), payment.MethodCash, "order_other", now)
		assert.ErrorIs(t, err, payment.ErrAlreadyFinalized)
	})

	t.Run("offline settlement is immediately successful", func(t *testing.T) {
		p := payment.NewSettled(uuid.New(), money.New(30000), payment.MethodCash, now)

		assert.True(t, p.IsFinalized())
		assert.Equal(t, payment.StatusSuccess, p.Status())
		assert.NotEmpty(t, p.GatewayPaymentRef())
		require.NotNil(t, p.PaymentDate())
	})
}

func TestMethod(t *testing.T) {
	for _, valid := range []string{"CARD", "UPI", "CASH", "WALLET"} {
		m, err := payment.NewMethod(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, m.String())
	}

	_, err := payment.NewMethod("CHEQUE")
	assert.ErrorIs(t, err, payment.ErrInvalidMethod)
}
