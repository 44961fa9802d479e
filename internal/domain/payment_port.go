package domain

import "context"

type PaymentEventKind string

const (
	PaymentEventCaptureSucceeded  PaymentEventKind = "capture.succeeded"
	PaymentEventCaptureFailed     PaymentEventKind = "capture.failed"
	PaymentEventTransferSucceeded PaymentEventKind = "transfer.succeeded"
	PaymentEventTransferFailed    PaymentEventKind = "transfer.failed"
)

// PaymentEvent is one asynchronous processor notification. Delivery is
// at-least-once and unordered relative to the initiating call; Reference is
// the dedup key.
type PaymentEvent struct {
	Reference string           `json:"reference"`
	Kind      PaymentEventKind `json:"kind"`
	Amount    int64            `json:"amount"`
	Currency  string           `json:"currency"`
}

// PaymentGateway is the money-moving collaborator. Both calls carry a bounded
// context; on timeout local state stays in its pending status and the call is
// retried under the same reference/key.
type PaymentGateway interface {
	Capture(ctx context.Context, amount int64, currency, reference string) error
	Transfer(ctx context.Context, amount int64, currency, destination, idempotencyKey string) (transferReference string, err error)
}
