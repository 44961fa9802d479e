package domain

import "time"

type OrderStatus string

const (
	OrderPendingPayment    OrderStatus = "PENDING_PAYMENT"
	OrderEscrowHeld        OrderStatus = "ESCROW_HELD"
	OrderInProgress        OrderStatus = "IN_PROGRESS"
	OrderProviderCompleted OrderStatus = "PROVIDER_COMPLETED"
	OrderCustomerCompleted OrderStatus = "CUSTOMER_COMPLETED"
	OrderDisputed          OrderStatus = "DISPUTED"
	OrderCancelled         OrderStatus = "CANCELLED"
	OrderPaidOut           OrderStatus = "PAID_OUT"
)

// Order is the root aggregate created when a proposal is accepted. Time
// entries, the escrow record and payouts all hang off it.
type Order struct {
	ID          string
	QuoteID     string
	ProposalID  string
	CustomerID  string
	ProviderID  string
	GrossAmount int64
	HourlyRate  int64
	Currency    string
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPendingPayment:    {OrderEscrowHeld, OrderCancelled},
	OrderEscrowHeld:        {OrderInProgress, OrderCancelled, OrderDisputed},
	OrderInProgress:        {OrderProviderCompleted, OrderDisputed, OrderCancelled},
	OrderProviderCompleted: {OrderCustomerCompleted, OrderDisputed},
	OrderCustomerCompleted: {OrderPaidOut, OrderDisputed},
	OrderDisputed:          {OrderInProgress, OrderCancelled, OrderCustomerCompleted},
}

// CanTransitionOrder reports whether from -> to is a legal order transition.
// Illegal pairs fail fast instead of being inferred from field combinations.
func CanTransitionOrder(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
