package restockorder

import (
	"errors"
	"fmt"

	"restock/internal/pkg/errs"
)

var (
	// ErrTransitionNotAllowed is wrapped by every rejected status change.
	ErrTransitionNotAllowed = errors.New("status transition is not allowed")

	// ErrDeliveryRequiresCode is returned when a plain status update targets ENTREGADA
	// under the strict policy; delivery must go through code confirmation.
	ErrDeliveryRequiresCode = fmt.Errorf("%w: delivery must be confirmed with the delivery code",
		ErrTransitionNotAllowed)
)

// TransitionPolicy decides which status changes are legal.
type TransitionPolicy string

const (
	// StrictPolicy enforces the transition table documented on Status.
	StrictPolicy TransitionPolicy = "strict"

	// PermissivePolicy only requires the target to be a valid status: any state may
	// move to any state, ENTREGADA included.
	PermissivePolicy TransitionPolicy = "permissive"
)

func ParseTransitionPolicy(s string) (TransitionPolicy, error) {
	switch p := TransitionPolicy(s); p {
	case StrictPolicy, PermissivePolicy:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("transitionPolicy",
			fmt.Errorf("%q is neither %q nor %q", s, StrictPolicy, PermissivePolicy))
	}
}

func (p TransitionPolicy) Validate() error {
	_, err := ParseTransitionPolicy(string(p))
	return err
}

// CheckChange validates a status update from -> to.
func (p TransitionPolicy) CheckChange(from, to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if p == PermissivePolicy {
		return nil
	}
	if to == Delivered {
		return ErrDeliveryRequiresCode
	}
	if !from.CanTransitionTo(to) {
		return notAllowed(from, to)
	}
	return nil
}

// CheckDelivery validates that an order in status from may be confirmed as delivered.
func (p TransitionPolicy) CheckDelivery(from Status) error {
	if p == PermissivePolicy {
		if from == Cancelled || from == Rejected {
			return notAllowed(from, Delivered)
		}
		return nil
	}
	if !from.CanTransitionTo(Delivered) {
		return notAllowed(from, Delivered)
	}
	return nil
}

// Allowed lists the statuses a status update may target from `from`.
func (p TransitionPolicy) Allowed(from Status) []Status {
	if p == PermissivePolicy {
		return Statuses()
	}
	return from.NextStatuses()
}

func notAllowed(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, to)
}
