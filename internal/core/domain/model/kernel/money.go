package kernel

import (
	"fmt"

	"bistro/internal/pkg/errs"
	"bistro/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Monetary bounds of the ordering contract. Every amount the system stores or
// computes must fall inside [MoneyMinAmount, MoneyMaxAmount] with at most two
// decimal places, regardless of transport encoding.
const (
	MoneyMinAmount = "0.00"
	MoneyMaxAmount = "9999.99"

	// moneyExponent is the smallest permitted decimal exponent (two places).
	moneyExponent = -2
)

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money must be created using NewMoney or NewMoneyFromString to ensure validity.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or NewMoneyFromString constructors")

// Money is an immutable fixed-point monetary value object with two decimal
// places. The zero value is invalid and fails validation; use the constructors.
//
// Money guarantees its amount is within the system bounds at construction
// time, so arithmetic helpers (Add, MulQuantity) can reject overflow before
// any result escapes into an aggregate.
//
// Example:
//
//	price, err := kernel.NewMoneyFromString("4.00")
//	if err != nil {
//	    // Handle validation error
//	}
//	total, err := price.MulQuantity(qty)
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

func moneyMin() decimal.Decimal {
	return decimal.RequireFromString(MoneyMinAmount)
}

func moneyMax() decimal.Decimal {
	return decimal.RequireFromString(MoneyMaxAmount)
}

// NewMoney creates a Money value from a decimal amount.
// The amount must be within [MoneyMinAmount, MoneyMaxAmount] and carry at most
// two decimal places. Returns an error if either constraint is violated.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.Exponent() < moneyExponent {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than two decimal places", amount))
	}

	if amount.LessThan(moneyMin()) || amount.GreaterThan(moneyMax()) {
		return Money{}, errs.NewValueIsOutOfRangeError(
			"amount", amount.String(), MoneyMinAmount, MoneyMaxAmount)
	}

	return Money{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewMoneyFromString parses a decimal string such as "9.99" into a Money value.
// Returns an error if the string is not a valid decimal or violates the bounds.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}

	return NewMoney(amount)
}

// NewMoneyZero returns the zero amount (0.00).
func NewMoneyZero() Money {
	return Money{
		amount: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// String returns the amount formatted with exactly two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// IsZero reports whether the amount equals 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two Money values by amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Add returns the sum of two Money values.
// Returns an error if the result would exceed MoneyMaxAmount, before the sum
// escapes the kernel.
func (m Money) Add(other Money) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := other.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoney(m.amount.Add(other.amount))
}

// MulQuantity returns the amount multiplied by a line quantity.
// Returns an error if the product would exceed MoneyMaxAmount.
func (m Money) MulQuantity(q Quantity) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if err := q.Validate(); err != nil {
		return Money{}, err
	}

	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(q.Value()))))
}

// Validate checks that the Money value was properly constructed.
// Returns ErrMoneyIsNotConstructed for zero-value instances.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
