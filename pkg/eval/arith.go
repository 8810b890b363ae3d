package eval

import (
	"errors"

	"github.com/cockroachdb/apd/v3"
)

// ArithmeticEngine is the pluggable numeric ordering strategy. CompareNumbers
// returns a negative, zero or positive result, or fails on domain errors such
// as incomparable numeric representations.
type ArithmeticEngine interface {
	CompareNumbers(a, b *apd.Decimal) (int, error)
}

var errNaNComparison = errors.New("NaN is not comparable")

// DecimalEngine is the default arithmetic engine: exact arbitrary-precision
// decimal ordering.
type DecimalEngine struct{}

func (DecimalEngine) CompareNumbers(a, b *apd.Decimal) (int, error) {
	if a == nil || b == nil {
		return 0, errors.New("nil decimal operand")
	}
	if a.Form == apd.NaN || a.Form == apd.NaNSignaling ||
		b.Form == apd.NaN || b.Form == apd.NaNSignaling {
		return 0, errNaNComparison
	}
	return a.Cmp(b), nil
}
