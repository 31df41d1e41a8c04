package queries

import (
	"restock/internal/core/domain/model/restockorder"

	"github.com/samber/lo"
)

// StatusView describes one status and where an order may go from it.
type StatusView struct {
	Status   string
	Terminal bool
	// Next lists the targets of a status update. ENTREGADA may appear here while
	// still requiring delivery confirmation, as reported by RequiresCode.
	Next         []string
	RequiresCode bool
}

// ListRestockOrderStatusesQueryHandler describes the lifecycle under the active policy.
// It takes no query object since it has no input.
type ListRestockOrderStatusesQueryHandler struct {
	policy restockorder.TransitionPolicy
}

func NewListRestockOrderStatusesQueryHandler(policy restockorder.TransitionPolicy) ListRestockOrderStatusesQueryHandler {
	return ListRestockOrderStatusesQueryHandler{policy: policy}
}

func (h ListRestockOrderStatusesQueryHandler) Handle() []StatusView {
	return lo.Map(restockorder.Statuses(), func(s restockorder.Status, _ int) StatusView {
		return StatusView{
			Status:   s.String(),
			Terminal: s.IsTerminal(),
			Next: lo.Map(h.policy.Allowed(s), func(next restockorder.Status, _ int) string {
				return next.String()
			}),
			RequiresCode: h.policy == restockorder.StrictPolicy && s.CanTransitionTo(restockorder.Delivered),
		}
	})
}
