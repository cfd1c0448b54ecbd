// Package points provides the Points value type used for all point
// arithmetic in the service. Points are always non-negative integers.
package points

import (
	"fmt"

	"devpath.app/profileservice/pkg/apperror"
)

// Points is an immutable non-negative point quantity.
type Points struct {
	value int
}

// New creates a Points value. Negative amounts are rejected.
func New(value int) (Points, error) {
	if value < 0 {
		return Points{}, fmt.Errorf("%w: points must be a non-negative integer, got %d", apperror.ErrInvalidInput, value)
	}
	return Points{value: value}, nil
}

// MustNew is New for compile-time constants. Panics on negative input.
func MustNew(value int) Points {
	p, err := New(value)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Points) Value() int {
	return p.value
}

// Add returns a new Points holding the sum.
func (p Points) Add(delta Points) Points {
	return Points{value: p.value + delta.value}
}

// Sub returns a new Points holding the difference. Subtracting more than
// the current value is an invalid operation.
func (p Points) Sub(delta Points) (Points, error) {
	if delta.value > p.value {
		return Points{}, fmt.Errorf("%w: cannot subtract %d points from %d", apperror.ErrInvalidInput, delta.value, p.value)
	}
	return Points{value: p.value - delta.value}, nil
}

func (p Points) Equals(other Points) bool {
	return p.value == other.value
}
