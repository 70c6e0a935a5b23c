package money

import "fmt"

// Money is an amount in minor currency units (paise, cents).
// Integer arithmetic only, so order totals never accumulate float drift.
type Money struct {
	minorUnits int64
}

func New(minorUnits int64) Money {
	return Money{minorUnits: minorUnits}
}

func (m Money) MinorUnits() int64 {
	return m.minorUnits
}

func (m Money) Add(other Money) Money {
	return Money{minorUnits: m.minorUnits + other.minorUnits}
}

func (m Money) MulQty(qty int32) Money {
	return Money{minorUnits: m.minorUnits * int64(qty)}
}

func (m Money) IsNegative() bool {
	return m.minorUnits < 0
}

func (m Money) Equals(other Money) bool {
	return m.minorUnits == other.minorUnits
}

// String renders the major-unit form, e.g. 22050 -> "220.50".
func (m Money) String() string {
	sign := ""
	v := m.minorUnits
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
