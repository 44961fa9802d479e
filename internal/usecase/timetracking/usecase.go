package usecase

import (
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/metrics"
	timetrackingdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/timetracking"
)

type TimeTrackingUsecase interface {
	LogTime(input *timetrackingdto.LogTimeInput) (*domain.TimeEntry, error)
	SubmitForApproval(input *timetrackingdto.SubmitForApprovalInput) (*domain.ApprovalRequest, error)
	ResolveApproval(input *timetrackingdto.ResolveApprovalInput) (*domain.ApprovalRequest, error)
	CompleteProvider(input *timetrackingdto.CompleteOrderInput) error
	CompleteCustomer(input *timetrackingdto.CompleteOrderInput) error
	GetTimeEntries(orderID string) ([]*domain.TimeEntry, error)
	GetApprovalRequests(orderID string) ([]*domain.ApprovalRequest, error)
	GetTimeSummary(orderID string) (*timetrackingdto.TimeSummaryOutput, error)
}

// EventPublisher is the slice of the kafka publisher this usecase needs.
type EventPublisher interface {
	PublishOrderEvent(event publisher.OrderEvent) error
	PublishApprovalEvent(event publisher.ApprovalEvent) error
}

type DefaultTimeTrackingUsecase struct {
	timeEntryRepo domain.TimeEntryRepository
	approvalRepo  domain.ApprovalRepository
	orderRepo     domain.OrderRepository
	events        EventPublisher
	metrics       *metrics.EngineMetrics
}

func NewDefaultTimeTrackingUsecase(
	timeEntryRepo domain.TimeEntryRepository,
	approvalRepo domain.ApprovalRepository,
	orderRepo domain.OrderRepository,
	events EventPublisher,
	engineMetrics *metrics.EngineMetrics,
) *DefaultTimeTrackingUsecase {
	return &DefaultTimeTrackingUsecase{
		timeEntryRepo: timeEntryRepo,
		approvalRepo:  approvalRepo,
		orderRepo:     orderRepo,
		events:        events,
		metrics:       engineMetrics,
	}
}
