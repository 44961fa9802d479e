package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	timetrackingdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/timetracking"
	"github.com/jaevor/go-nanoid"
)

// LogTime records worked hours against an active order. The first entry on a
// freshly funded order moves it to IN_PROGRESS.
func (ttUc *DefaultTimeTrackingUsecase) LogTime(input *timetrackingdto.LogTimeInput) (*domain.TimeEntry, error) {
	order, err := ttUc.orderRepo.GetOrderByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.ActorID != order.ProviderID {
		return nil, domain.ErrPermissionDenied
	}
	if input.Hours <= 0 || input.Hours > 24 {
		return nil, fmt.Errorf("%w: hours must be between 0 and 24", domain.ErrValidation)
	}

	switch order.Status {
	case domain.OrderEscrowHeld:
		if err := ttUc.orderRepo.UpdateOrderStatus(order.ID, domain.OrderEscrowHeld, domain.OrderInProgress); err != nil {
			// a concurrent first entry may have flipped it already
			if !errors.Is(err, domain.ErrInvalidStateTransition) {
				return nil, err
			}
		}
	case domain.OrderInProgress:
	default:
		return nil, fmt.Errorf("%w: time logging on order in status %s", domain.ErrInvalidStateTransition, order.Status)
	}

	category := input.Category
	if category == "" {
		category = domain.CategoryOriginal
	}
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	entry := domain.TimeEntry{
		ID:          idGenerator(),
		OrderID:     order.ID,
		ProviderID:  order.ProviderID,
		Date:        input.Date,
		Hours:       input.Hours,
		Category:    category,
		Description: input.Description,
		Status:      domain.EntryLogged,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := ttUc.timeEntryRepo.CreateTimeEntry(&entry); err != nil {
		return nil, err
	}

	ttUc.metrics.TimeEntriesLoggedTotal.WithLabelValues(string(category)).Inc()
	return &entry, nil
}
