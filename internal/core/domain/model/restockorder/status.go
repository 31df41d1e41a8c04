package restockorder

import (
	"fmt"

	"restock/internal/pkg/errs"
)

// Status is the lifecycle state of a restock order.
//
//	CREADA ──> ENVIADA ──┬──> ACEPTADA ──> EN_PREPARACION ──> EN_RUTA ──> ENTREGADA
//	                     └──> RECHAZADA
//
// Any non-terminal state can also move to CANCELADA. ENTREGADA, CANCELADA and
// RECHAZADA are terminal. The table is only enforced by the strict TransitionPolicy.
type Status int

const (
	// Unknown (0) catches uninitialized values; it is never a valid status.
	Unknown Status = iota
	Created
	Sent
	Accepted
	Rejected
	InPreparation
	InTransit
	Delivered
	Cancelled
)

var statusLiterals = map[Status]string{
	Created:       "CREADA",
	Sent:          "ENVIADA",
	Accepted:      "ACEPTADA",
	Rejected:      "RECHAZADA",
	InPreparation: "EN_PREPARACION",
	InTransit:     "EN_RUTA",
	Delivered:     "ENTREGADA",
	Cancelled:     "CANCELADA",
}

// transitions lists the statuses reachable from each status under the strict policy.
var transitions = map[Status][]Status{
	Created:       {Sent, Cancelled},
	Sent:          {Accepted, Rejected, Cancelled},
	Accepted:      {InPreparation, Cancelled},
	InPreparation: {InTransit, Cancelled},
	InTransit:     {Delivered, Cancelled},
	Delivered:     {},
	Rejected:      {},
	Cancelled:     {},
}

// Statuses returns the eight valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Created, Sent, Accepted, Rejected, InPreparation, InTransit, Delivered, Cancelled}
}

// StatusLiterals returns the wire literals of Statuses, in the same order.
func StatusLiterals() []string {
	statuses := Statuses()
	literals := make([]string, 0, len(statuses))
	for _, s := range statuses {
		literals = append(literals, s.String())
	}
	return literals
}

// ParseStatus maps a wire literal such as "EN_RUTA" to its Status. Matching is exact.
func ParseStatus(literal string) (Status, error) {
	for status, l := range statusLiterals {
		if l == literal {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", literal))
}

// String returns the wire literal, or "Unknown" for invalid values.
func (s Status) String() string {
	if literal, ok := statusLiterals[s]; ok {
		return literal
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if _, ok := statusLiterals[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transition is expected from s.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// NextStatuses returns the statuses reachable from s under the strict table.
func (s Status) NextStatuses() []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether the strict table allows s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
