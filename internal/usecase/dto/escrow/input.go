package escrowdto

type CaptureFundsInput struct {
	OrderID  string
	ActorID  string
	Currency string
}

type CaptureAdditionalInput struct {
	OrderID string
	ActorID string
	Amount  int64
}

type RefundInput struct {
	OrderID string
	ActorID string
	Reason  string
}
