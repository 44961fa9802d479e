package payoutdto

type ExecutePayoutInput struct {
	OrderID string
	ActorID string
}
