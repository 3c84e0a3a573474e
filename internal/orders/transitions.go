package orders

import "github.com/angelmondragon/friendsofall-backend/pkg/enums"

// TransitionPolicy decides whether an order may move between two statuses.
type TransitionPolicy interface {
	Allow(from, to enums.OrderStatus) bool
}

// Unconstrained lets the admin set any status at any time.
type Unconstrained struct{}

func (Unconstrained) Allow(enums.OrderStatus, enums.OrderStatus) bool {
	return true
}

// StrictTransitions only permits forward moves through the kitchen workflow.
// Cancellation is possible until the order is handed off. Re-applying the
// current status is always allowed.
type StrictTransitions struct{}

var strictTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:   {enums.OrderStatusConfirmed, enums.OrderStatusPreparing, enums.OrderStatusCancelled},
	enums.OrderStatusConfirmed: {enums.OrderStatusPreparing, enums.OrderStatusCancelled},
	enums.OrderStatusPreparing: {enums.OrderStatusReady, enums.OrderStatusCancelled},
	enums.OrderStatusReady:     {enums.OrderStatusDelivered, enums.OrderStatusCancelled},
}

func (StrictTransitions) Allow(from, to enums.OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PolicyFor picks the policy configured by the strict transitions flag.
func PolicyFor(strict bool) TransitionPolicy {
	if strict {
		return StrictTransitions{}
	}
	return Unconstrained{}
}
