package kernel

import (
	"bistro/internal/pkg/errs"
	"bistro/internal/pkg/guard"
)

// Quantity bounds of the ordering contract. Line quantities are positive and
// must fit the reference 16-bit bound.
const (
	QuantityMin = 1
	QuantityMax = 32767
)

// ErrQuantityIsNotConstructed is returned when attempting to use an improperly
// initialized Quantity. Quantities must be created via NewQuantity.
var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError(
	"quantity must be created via NewQuantity constructor")

// Quantity is an immutable bounded positive integer used for cart and order
// line counts. The zero value is invalid and fails validation.
type Quantity struct { //nolint:recvcheck //using for validation
	value int
	guard guard.ConstructorGuard
}

// NewQuantity creates a Quantity within [QuantityMin, QuantityMax].
// Returns an error for zero, negative, or oversized values.
func NewQuantity(value int) (Quantity, error) {
	if value < QuantityMin || value > QuantityMax {
		return Quantity{}, errs.NewValueIsOutOfRangeError("quantity", value, QuantityMin, QuantityMax)
	}

	return Quantity{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Value returns the integer quantity.
func (q Quantity) Value() int {
	return q.value
}

// IsEqual compares two quantities by value.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.value == other.value
}

// Add returns the sum of two quantities.
// Returns an error if the merged quantity would exceed QuantityMax, so
// duplicate cart inserts cannot overflow the bound.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if err := q.Validate(); err != nil {
		return Quantity{}, err
	}
	if err := other.Validate(); err != nil {
		return Quantity{}, err
	}

	return NewQuantity(q.value + other.value)
}

// Validate checks that the Quantity was properly constructed.
// Returns ErrQuantityIsNotConstructed for zero-value instances.
func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}
