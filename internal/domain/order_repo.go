package domain

type OrderRepository interface {
	GetOrderByID(orderID string) (*Order, error)
	GetOrderByQuoteID(quoteID string) (*Order, error)

	// UpdateOrderStatus applies the transition only if the order is still in
	// oldStatus; anything else fails with ErrInvalidStateTransition.
	UpdateOrderStatus(orderID string, oldStatus, newStatus OrderStatus) error
}
