package order

import (
	"fmt"

	"bistro/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
// It implements a two-state machine with a single legal transition to ensure
// orders follow the fulfillment workflow.
//
// State transitions:
//
//	Pending ──> OutForDelivery
//
// The wire values (Pending=0, OutForDelivery=1) are part of the external
// contract and must not change. There is no reverse transition.
type Status int

const (
	// Pending is the initial status of every order created at checkout.
	// Pending orders are waiting for fulfillment.
	Pending Status = iota

	// OutForDelivery indicates the order has been handed to its delivery
	// crew. This is the final state with no further transitions.
	OutForDelivery
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:        "Pending",
		OutForDelivery: "OutForDelivery",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are Pending (0) and OutForDelivery (1); any other value is
// rejected before it can reach an order. This method is used to ensure Status
// values from external sources (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// Implements the fmt.Stringer interface and is safe to call on any Status
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == OutForDelivery
}

// TransitionTo validates a transition from the current status to target.
//
// Valid transitions:
//   - Pending -> OutForDelivery (the single forward edge)
//   - any status -> itself (idempotent set)
//
// Invalid transitions:
//   - OutForDelivery -> Pending (no reverse transition is defined)
//   - anything involving an invalid status value
//
// Returns:
//   - (target, nil) on a valid transition
//   - (0, error) with a validation error for invalid values or a conflict
//     error for a reverse transition
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if s.IsFinal() && target != s {
		return 0, errs.NewConflictErrorWithCause(
			"status cannot go back",
			fmt.Errorf("%s is final, cannot transition to %s", s, target),
		)
	}

	return target, nil
}
