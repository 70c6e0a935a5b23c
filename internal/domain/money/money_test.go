//go:build unit

package money_test

import (
	"testing"

	"restobook/internal/domain/money"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	t.Run("integer arithmetic", func(t *testing.T) {
		total := money.New(0).Add(money.New(32000).MulQty(2)).Add(money.New(6000).MulQty(3))
		assert.Equal(t, int64(82000), total.MinorUnits())
	})

	t.Run("equality", func(t *testing.T) {
		assert.True(t, money.New(100).Equals(money.New(100)))
		assert.False(t, money.New(100).Equals(money.New(101)))
	})

	t.Run("negative detection", func(t *testing.T) {
		assert.True(t, money.New(-1).IsNegative())
		assert.False(t, money.New(0).IsNegative())
	})

	t.Run("string renders major units", func(t *testing.T) {
		cases := map[int64]string{
			22050:  "220.50",
			100:    "1.00",
			5:      "0.05",
			0:      "0.00",
			-22050: "-220.50",
		}
		for minor, want := range cases {
			assert.Equal(t, want, money.New(minor).String())
		}
	})
}
