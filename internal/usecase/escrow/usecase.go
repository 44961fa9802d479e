package usecase

import (
	"context"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/metrics"
	escrowdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/escrow"
)

type EscrowUsecase interface {
	CaptureFunds(ctx context.Context, input *escrowdto.CaptureFundsInput) (*domain.EscrowRecord, error)
	CaptureAdditional(ctx context.Context, input *escrowdto.CaptureAdditionalInput) (*domain.EscrowRecord, error)
	Refund(input *escrowdto.RefundInput) error
	ApplyCaptureEvent(event *domain.PaymentEvent) error
	ReconcileStuckCaptures(ctx context.Context) error
	GetEscrowByOrderID(orderID string) (*domain.EscrowRecord, error)
}

// OrderEventPublisher is the slice of the kafka publisher this usecase needs.
type OrderEventPublisher interface {
	PublishOrderEvent(event publisher.OrderEvent) error
}

type DefaultEscrowUsecase struct {
	escrowRepo          domain.EscrowRepository
	orderRepo           domain.OrderRepository
	gateway             domain.PaymentGateway
	events              OrderEventPublisher
	metrics             *metrics.EngineMetrics
	platformFeeBps      int64
	stuckPendingSeconds int64
}

func NewDefaultEscrowUsecase(
	escrowRepo domain.EscrowRepository,
	orderRepo domain.OrderRepository,
	gateway domain.PaymentGateway,
	events OrderEventPublisher,
	engineMetrics *metrics.EngineMetrics,
	platformFeeBps int64,
	stuckPendingSeconds int64,
) *DefaultEscrowUsecase {
	return &DefaultEscrowUsecase{
		escrowRepo:          escrowRepo,
		orderRepo:           orderRepo,
		gateway:             gateway,
		events:              events,
		metrics:             engineMetrics,
		platformFeeBps:      platformFeeBps,
		stuckPendingSeconds: stuckPendingSeconds,
	}
}

func (escrowUc *DefaultEscrowUsecase) GetEscrowByOrderID(orderID string) (*domain.EscrowRecord, error) {
	return escrowUc.escrowRepo.GetEscrowByOrderID(orderID)
}
