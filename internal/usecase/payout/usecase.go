package usecase

import (
	"context"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/metrics"
	payoutdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/payout"
)

type PayoutUsecase interface {
	ExecutePayout(ctx context.Context, input *payoutdto.ExecutePayoutInput) (*domain.Payout, error)
	ApplyTransferEvent(event *domain.PaymentEvent) error
	RetryFailedPayouts(ctx context.Context) error
	ResumeStalledPayouts(ctx context.Context) error
	GetPayoutsByOrderID(orderID string) ([]*domain.Payout, error)
}

// PayoutEventPublisher is the slice of the kafka publisher this usecase needs.
type PayoutEventPublisher interface {
	PublishPayoutEvent(event publisher.PayoutEvent) error
}

type DefaultPayoutUsecase struct {
	payoutRepo    domain.PayoutRepository
	orderRepo     domain.OrderRepository
	escrowRepo    domain.EscrowRepository
	timeEntryRepo domain.TimeEntryRepository
	payeeResolver domain.PayeeResolver
	gateway       domain.PaymentGateway
	events        PayoutEventPublisher
	metrics       *metrics.EngineMetrics
	maxAttempts   int
	stalledAfter  int64
}

func NewDefaultPayoutUsecase(
	payoutRepo domain.PayoutRepository,
	orderRepo domain.OrderRepository,
	escrowRepo domain.EscrowRepository,
	timeEntryRepo domain.TimeEntryRepository,
	payeeResolver domain.PayeeResolver,
	gateway domain.PaymentGateway,
	events PayoutEventPublisher,
	engineMetrics *metrics.EngineMetrics,
	maxAttempts int,
	stalledAfterSeconds int64,
) *DefaultPayoutUsecase {
	return &DefaultPayoutUsecase{
		payoutRepo:    payoutRepo,
		orderRepo:     orderRepo,
		escrowRepo:    escrowRepo,
		timeEntryRepo: timeEntryRepo,
		payeeResolver: payeeResolver,
		gateway:       gateway,
		events:        events,
		metrics:       engineMetrics,
		maxAttempts:   maxAttempts,
		stalledAfter:  stalledAfterSeconds,
	}
}

func (payoutUc *DefaultPayoutUsecase) GetPayoutsByOrderID(orderID string) ([]*domain.Payout, error) {
	return payoutUc.payoutRepo.GetPayoutsByOrderID(orderID)
}
