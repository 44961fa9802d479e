package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/metrics"
	payoutdto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/payout"
)

var testMetrics = metrics.NewEngineMetrics()

// world bundles the in-memory state the payout fakes share, mirroring the
// single database the real repositories run transactions against.
type world struct {
	mu      sync.Mutex
	orders  map[string]*domain.Order
	escrows map[string]*domain.EscrowRecord
	entries map[string]*domain.TimeEntry
	payouts map[string]*domain.Payout
}

func newWorld() *world {
	return &world{
		orders:  make(map[string]*domain.Order),
		escrows: make(map[string]*domain.EscrowRecord),
		entries: make(map[string]*domain.TimeEntry),
		payouts: make(map[string]*domain.Payout),
	}
}

type fakeOrderRepo struct{ w *world }

func (f fakeOrderRepo) GetOrderByID(orderID string) (*domain.Order, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	order, ok := f.w.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f fakeOrderRepo) GetOrderByQuoteID(quoteID string) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (f fakeOrderRepo) UpdateOrderStatus(orderID string, oldStatus, newStatus domain.OrderStatus) error {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	order, ok := f.w.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	if order.Status != oldStatus {
		return domain.ErrInvalidStateTransition
	}
	order.Status = newStatus
	return nil
}

type fakeEscrowRepo struct{ w *world }

func (f fakeEscrowRepo) CreateEscrow(record *domain.EscrowRecord) error {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	copied := *record
	f.w.escrows[record.ID] = &copied
	return nil
}

func (f fakeEscrowRepo) GetEscrowByID(escrowID string) (*domain.EscrowRecord, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	record, ok := f.w.escrows[escrowID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (f fakeEscrowRepo) GetEscrowByOrderID(orderID string) (*domain.EscrowRecord, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	for _, record := range f.w.escrows {
		if record.OrderID == orderID {
			copied := *record
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakeEscrowRepo) GetEscrowByPaymentReference(reference string) (*domain.EscrowRecord, error) {
	return nil, domain.ErrNotFound
}

func (f fakeEscrowRepo) ConfirmCapture(reference string) (*domain.EscrowRecord, bool, error) {
	return nil, false, errors.New("not used")
}

func (f fakeEscrowRepo) ConfirmTopUp(escrowID, reference string, gross, platformFee, providerAmount int64) (bool, error) {
	return false, errors.New("not used")
}

func (f fakeEscrowRepo) RecordTopUpReference(escrowID, reference string, amount int64) error {
	return errors.New("not used")
}

func (f fakeEscrowRepo) GetTopUpEscrowID(reference string) (string, error) {
	return "", errors.New("not used")
}

func (f fakeEscrowRepo) Release(escrowID string, amount int64) error   { return errors.New("not used") }
func (f fakeEscrowRepo) Unrelease(escrowID string, amount int64) error { return errors.New("not used") }
func (f fakeEscrowRepo) Refund(escrowID string) error                  { return errors.New("not used") }
func (f fakeEscrowRepo) FindStuckPending(olderThanSeconds int64) ([]*domain.EscrowRecord, error) {
	return nil, nil
}

type fakeTimeEntryRepo struct{ w *world }

func (f fakeTimeEntryRepo) CreateTimeEntry(entry *domain.TimeEntry) error {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	copied := *entry
	f.w.entries[entry.ID] = &copied
	return nil
}

func (f fakeTimeEntryRepo) GetTimeEntryByID(entryID string) (*domain.TimeEntry, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	entry, ok := f.w.entries[entryID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f fakeTimeEntryRepo) GetTimeEntriesByOrderID(orderID string) ([]*domain.TimeEntry, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	var out []*domain.TimeEntry
	for _, entry := range f.w.entries {
		if entry.OrderID == orderID {
			copied := *entry
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f fakeTimeEntryRepo) GetBilledEntriesByOrderID(orderID string) ([]*domain.TimeEntry, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	var out []*domain.TimeEntry
	for _, entry := range f.w.entries {
		if entry.OrderID == orderID && entry.Status == domain.EntryBilled {
			copied := *entry
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f fakeTimeEntryRepo) CountEntriesByStatuses(orderID string, statuses []domain.TimeEntryStatus) (int64, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	var count int64
	for _, entry := range f.w.entries {
		if entry.OrderID != orderID {
			continue
		}
		for _, status := range statuses {
			if entry.Status == status {
				count++
				break
			}
		}
	}
	return count, nil
}

type fakePayoutRepo struct{ w *world }

func (f fakePayoutRepo) GetPayoutByID(payoutID string) (*domain.Payout, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	payout, ok := f.w.payouts[payoutID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *payout
	return &copied, nil
}

func (f fakePayoutRepo) GetPayoutByIdempotencyKey(key string) (*domain.Payout, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	for _, payout := range f.w.payouts {
		if payout.IdempotencyKey == key {
			copied := *payout
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakePayoutRepo) GetPayoutByTransferReference(transferReference string) (*domain.Payout, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	for _, payout := range f.w.payouts {
		if payout.TransferReference == transferReference {
			copied := *payout
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f fakePayoutRepo) GetPayoutsByOrderID(orderID string) ([]*domain.Payout, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	var out []*domain.Payout
	for _, payout := range f.w.payouts {
		if payout.OrderID == orderID {
			copied := *payout
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f fakePayoutRepo) FindFailedPayouts(maxAttempts int) ([]*domain.Payout, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	var out []*domain.Payout
	for _, payout := range f.w.payouts {
		if payout.Status == domain.PayoutFailed && payout.Attempts < maxAttempts {
			copied := *payout
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f fakePayoutRepo) FindStalledPayouts(olderThanSeconds int64) ([]*domain.Payout, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	cutoff := time.Now().Add(-time.Duration(olderThanSeconds) * time.Second)
	var out []*domain.Payout
	for _, payout := range f.w.payouts {
		if payout.Status == domain.PayoutPending && payout.TransferReference == "" && payout.UpdatedAt.Before(cutoff) {
			copied := *payout
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f fakePayoutRepo) BeginPayout(payout *domain.Payout) error {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	escrow, ok := f.w.escrows[payout.EscrowRecordID]
	if !ok {
		return domain.ErrNotFound
	}
	var total int64
	for _, entryID := range payout.TimeEntryIDs {
		entry, ok := f.w.entries[entryID]
		if !ok || entry.Status != domain.EntryBilled {
			return domain.ErrNoBillableEntries
		}
		total += entry.BillableAmount
	}
	if total != payout.NetAmount {
		return domain.ErrInsufficientEscrowBalance
	}
	if payout.NetAmount > escrow.ProviderAmount-escrow.ReleasedAmount {
		return domain.ErrInsufficientEscrowBalance
	}
	for _, entryID := range payout.TimeEntryIDs {
		f.w.entries[entryID].Status = domain.EntryPlatformHeld
	}
	escrow.ReleasedAmount += payout.NetAmount
	copied := *payout
	f.w.payouts[payout.ID] = &copied
	return nil
}

func (f fakePayoutRepo) MarkTransferAccepted(payoutID, transferReference string) error {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	payout, ok := f.w.payouts[payoutID]
	if !ok {
		return domain.ErrNotFound
	}
	payout.TransferReference = transferReference
	return nil
}

func (f fakePayoutRepo) ConfirmTransfer(transferReference string) (*domain.Payout, bool, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	var payout *domain.Payout
	for _, p := range f.w.payouts {
		if p.TransferReference == transferReference {
			payout = p
			break
		}
	}
	if payout == nil {
		return nil, false, domain.ErrNotFound
	}
	if payout.Status == domain.PayoutTransferred {
		copied := *payout
		return &copied, false, nil
	}
	for _, entryID := range payout.TimeEntryIDs {
		f.w.entries[entryID].Status = domain.EntryPaidOut
	}
	payout.Status = domain.PayoutTransferred

	order := f.w.orders[payout.OrderID]
	remaining := 0
	for _, entry := range f.w.entries {
		if entry.OrderID == payout.OrderID &&
			(entry.Status == domain.EntryBilled || entry.Status == domain.EntryPlatformHeld) {
			remaining++
		}
	}
	if order != nil && order.Status == domain.OrderCustomerCompleted && remaining == 0 {
		order.Status = domain.OrderPaidOut
	}
	copied := *payout
	return &copied, true, nil
}

func (f fakePayoutRepo) FailPayout(payoutID string, reason string) error {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	payout, ok := f.w.payouts[payoutID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, entryID := range payout.TimeEntryIDs {
		f.w.entries[entryID].Status = domain.EntryBilled
	}
	if escrow, ok := f.w.escrows[payout.EscrowRecordID]; ok {
		escrow.ReleasedAmount -= payout.NetAmount
	}
	payout.Status = domain.PayoutFailed
	payout.LastError = reason
	return nil
}

func (f fakePayoutRepo) ResumePayout(payoutID string) (*domain.Payout, error) {
	f.w.mu.Lock()
	defer f.w.mu.Unlock()
	payout, ok := f.w.payouts[payoutID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if payout.Status != domain.PayoutFailed {
		return nil, domain.ErrInvalidStateTransition
	}
	for _, entryID := range payout.TimeEntryIDs {
		if f.w.entries[entryID].Status != domain.EntryBilled {
			return nil, domain.ErrInvalidStateTransition
		}
	}
	for _, entryID := range payout.TimeEntryIDs {
		f.w.entries[entryID].Status = domain.EntryPlatformHeld
	}
	if escrow, ok := f.w.escrows[payout.EscrowRecordID]; ok {
		escrow.ReleasedAmount += payout.NetAmount
	}
	payout.Status = domain.PayoutPending
	payout.Attempts++
	copied := *payout
	return &copied, nil
}

type fakeResolver struct{}

func (fakeResolver) ResolvePayee(providerID string) (domain.Payee, error) {
	return domain.IndividualPayee{ProviderID: providerID, AccountRef: "acct_" + providerID}, nil
}

type fakeGateway struct {
	mu        sync.Mutex
	transfers []string
	failNext  bool
}

func (f *fakeGateway) Capture(ctx context.Context, amount int64, currency, reference string) error {
	return errors.New("not used")
}

func (f *fakeGateway) Transfer(ctx context.Context, amount int64, currency, destination, idempotencyKey string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return "", errors.New("processor unavailable")
	}
	f.transfers = append(f.transfers, idempotencyKey)
	return fmt.Sprintf("tr_%s_%d", idempotencyKey[:8], len(f.transfers)), nil
}

type nopEvents struct{}

func (nopEvents) PublishPayoutEvent(event publisher.PayoutEvent) error { return nil }

// seedWorld builds a customer-completed order with held escrow and billed
// entries worth 6000.
func seedWorld() *world {
	w := newWorld()
	w.orders["order-1"] = &domain.Order{
		ID: "order-1", CustomerID: "customer-1", ProviderID: "provider-1",
		GrossAmount: 45000, HourlyRate: 2000, Currency: "EUR",
		Status: domain.OrderCustomerCompleted,
	}
	w.escrows["escrow-1"] = &domain.EscrowRecord{
		ID: "escrow-1", OrderID: "order-1",
		GrossAmount: 45000, PlatformFeeAmount: 2250, ProviderAmount: 42750,
		Currency: "EUR", Status: domain.EscrowHeld,
	}
	w.entries["entry-1"] = &domain.TimeEntry{
		ID: "entry-1", OrderID: "order-1", ProviderID: "provider-1",
		Hours: 2, Status: domain.EntryBilled, BillableAmount: 4000,
	}
	w.entries["entry-2"] = &domain.TimeEntry{
		ID: "entry-2", OrderID: "order-1", ProviderID: "provider-1",
		Hours: 1, Status: domain.EntryBilled, BillableAmount: 2000,
	}
	return w
}

func newPayoutUsecase(w *world, gateway *fakeGateway) *DefaultPayoutUsecase {
	return NewDefaultPayoutUsecase(
		fakePayoutRepo{w},
		fakeOrderRepo{w},
		fakeEscrowRepo{w},
		fakeTimeEntryRepo{w},
		fakeResolver{},
		gateway,
		nopEvents{},
		testMetrics,
		3,
		300,
	)
}

func TestExecutePayout(t *testing.T) {
	t.Run("holds entries and releases escrow", func(t *testing.T) {
		w := seedWorld()
		gateway := &fakeGateway{}
		uc := newPayoutUsecase(w, gateway)

		payout, err := uc.ExecutePayout(context.Background(), &payoutdto.ExecutePayoutInput{
			OrderID: "order-1", ActorID: "provider-1",
		})
		if err != nil {
			t.Fatalf("ExecutePayout: %v", err)
		}
		if payout.NetAmount != 6000 {
			t.Errorf("net amount = %d, want 6000", payout.NetAmount)
		}
		if w.escrows["escrow-1"].ReleasedAmount != 6000 {
			t.Errorf("released = %d, want 6000", w.escrows["escrow-1"].ReleasedAmount)
		}
		for _, entryID := range []string{"entry-1", "entry-2"} {
			if w.entries[entryID].Status != domain.EntryPlatformHeld {
				t.Errorf("entry %s status = %s, want PLATFORM_HELD", entryID, w.entries[entryID].Status)
			}
		}
		if payout.TransferReference == "" {
			t.Error("transfer reference not recorded")
		}
	})

	t.Run("requires customer completion", func(t *testing.T) {
		w := seedWorld()
		w.orders["order-1"].Status = domain.OrderProviderCompleted
		uc := newPayoutUsecase(w, &fakeGateway{})

		_, err := uc.ExecutePayout(context.Background(), &payoutdto.ExecutePayoutInput{
			OrderID: "order-1", ActorID: "provider-1",
		})
		if !errors.Is(err, domain.ErrInvalidStateTransition) {
			t.Errorf("err = %v, want ErrInvalidStateTransition", err)
		}
	})

	t.Run("no billed entries", func(t *testing.T) {
		w := seedWorld()
		w.entries["entry-1"].Status = domain.EntryPaidOut
		w.entries["entry-2"].Status = domain.EntryPaidOut
		uc := newPayoutUsecase(w, &fakeGateway{})

		_, err := uc.ExecutePayout(context.Background(), &payoutdto.ExecutePayoutInput{
			OrderID: "order-1", ActorID: "provider-1",
		})
		if !errors.Is(err, domain.ErrNoBillableEntries) {
			t.Errorf("err = %v, want ErrNoBillableEntries", err)
		}
	})

	t.Run("billed total above held balance", func(t *testing.T) {
		w := seedWorld()
		w.escrows["escrow-1"].ReleasedAmount = 40000
		uc := newPayoutUsecase(w, &fakeGateway{})

		_, err := uc.ExecutePayout(context.Background(), &payoutdto.ExecutePayoutInput{
			OrderID: "order-1", ActorID: "provider-1",
		})
		if !errors.Is(err, domain.ErrInsufficientEscrowBalance) {
			t.Errorf("err = %v, want ErrInsufficientEscrowBalance", err)
		}
	})

	t.Run("stranger may not trigger payout", func(t *testing.T) {
		w := seedWorld()
		uc := newPayoutUsecase(w, &fakeGateway{})

		_, err := uc.ExecutePayout(context.Background(), &payoutdto.ExecutePayoutInput{
			OrderID: "order-1", ActorID: "someone-else",
		})
		if !errors.Is(err, domain.ErrPermissionDenied) {
			t.Errorf("err = %v, want ErrPermissionDenied", err)
		}
	})
}

func TestExecutePayoutIdempotent(t *testing.T) {
	t.Run("failed payout is resumed under the same key", func(t *testing.T) {
		w := seedWorld()
		gateway := &fakeGateway{failNext: true}
		uc := newPayoutUsecase(w, gateway)

		input := &payoutdto.ExecutePayoutInput{OrderID: "order-1", ActorID: "provider-1"}
		if _, err := uc.ExecutePayout(context.Background(), input); !errors.Is(err, domain.ErrPayoutFailed) {
			t.Fatalf("first ExecutePayout err = %v, want ErrPayoutFailed", err)
		}

		second, err := uc.ExecutePayout(context.Background(), input)
		if err != nil {
			t.Fatalf("second ExecutePayout: %v", err)
		}
		if len(w.payouts) != 1 {
			t.Fatalf("payouts = %d, want 1 row reused across attempts", len(w.payouts))
		}
		if second.Attempts != 2 {
			t.Errorf("attempts = %d, want 2", second.Attempts)
		}
		if len(gateway.transfers) != 1 || gateway.transfers[0] != second.IdempotencyKey {
			t.Errorf("transfers = %v, want one under key %s", gateway.transfers, second.IdempotencyKey)
		}
		if w.escrows["escrow-1"].ReleasedAmount != 6000 {
			t.Errorf("released = %d, want 6000 exactly once", w.escrows["escrow-1"].ReleasedAmount)
		}
	})

	t.Run("repeat call after acceptance does not double release", func(t *testing.T) {
		w := seedWorld()
		gateway := &fakeGateway{}
		uc := newPayoutUsecase(w, gateway)

		input := &payoutdto.ExecutePayoutInput{OrderID: "order-1", ActorID: "provider-1"}
		if _, err := uc.ExecutePayout(context.Background(), input); err != nil {
			t.Fatalf("ExecutePayout: %v", err)
		}

		_, err := uc.ExecutePayout(context.Background(), input)
		if !errors.Is(err, domain.ErrNoBillableEntries) {
			t.Fatalf("repeat err = %v, want ErrNoBillableEntries", err)
		}
		if len(w.payouts) != 1 {
			t.Errorf("payouts = %d, want 1", len(w.payouts))
		}
		if len(gateway.transfers) != 1 {
			t.Errorf("transfers = %d, want 1", len(gateway.transfers))
		}
		if w.escrows["escrow-1"].ReleasedAmount != 6000 {
			t.Errorf("released = %d, want 6000 exactly once", w.escrows["escrow-1"].ReleasedAmount)
		}
	})
}

func TestExecutePayoutFailureAndRetry(t *testing.T) {
	w := seedWorld()
	gateway := &fakeGateway{failNext: true}
	uc := newPayoutUsecase(w, gateway)

	_, err := uc.ExecutePayout(context.Background(), &payoutdto.ExecutePayoutInput{
		OrderID: "order-1", ActorID: "provider-1",
	})
	if !errors.Is(err, domain.ErrPayoutFailed) {
		t.Fatalf("err = %v, want ErrPayoutFailed", err)
	}

	var failed *domain.Payout
	for _, payout := range w.payouts {
		failed = payout
	}
	if failed == nil || failed.Status != domain.PayoutFailed {
		t.Fatalf("payout not rolled back to FAILED: %+v", failed)
	}
	if w.escrows["escrow-1"].ReleasedAmount != 0 {
		t.Errorf("released = %d, want 0 after rollback", w.escrows["escrow-1"].ReleasedAmount)
	}
	for _, entryID := range []string{"entry-1", "entry-2"} {
		if w.entries[entryID].Status != domain.EntryBilled {
			t.Errorf("entry %s status = %s, want BILLED after rollback", entryID, w.entries[entryID].Status)
		}
	}

	if err := uc.RetryFailedPayouts(context.Background()); err != nil {
		t.Fatalf("RetryFailedPayouts: %v", err)
	}

	retried := w.payouts[failed.ID]
	if retried.Status != domain.PayoutPending {
		t.Errorf("status = %s, want PENDING after retry", retried.Status)
	}
	if retried.Attempts != 2 {
		t.Errorf("attempts = %d, want 2", retried.Attempts)
	}
	if retried.IdempotencyKey != failed.IdempotencyKey {
		t.Error("retry changed the idempotency key")
	}
	if len(gateway.transfers) != 1 || gateway.transfers[0] != failed.IdempotencyKey {
		t.Errorf("transfers = %v, want one under the original key", gateway.transfers)
	}
}

func TestResumeStalledPayouts(t *testing.T) {
	// state after a crash between BeginPayout and the transfer call: entries
	// parked, escrow released, payout PENDING with no transfer reference
	seedStalled := func() (*world, *domain.Payout) {
		w := seedWorld()
		for _, entryID := range []string{"entry-1", "entry-2"} {
			w.entries[entryID].Status = domain.EntryPlatformHeld
		}
		w.escrows["escrow-1"].ReleasedAmount = 6000
		payout := &domain.Payout{
			ID:             "payout-1",
			OrderID:        "order-1",
			EscrowRecordID: "escrow-1",
			TimeEntryIDs:   []string{"entry-1", "entry-2"},
			NetAmount:      6000,
			Currency:       "EUR",
			Status:         domain.PayoutPending,
			IdempotencyKey: domain.PayoutIdempotencyKey("order-1", []string{"entry-1", "entry-2"}),
			Attempts:       1,
			UpdatedAt:      time.Now().Add(-time.Hour),
		}
		w.payouts[payout.ID] = payout
		return w, payout
	}

	t.Run("replays the transfer under the stored key", func(t *testing.T) {
		w, payout := seedStalled()
		gateway := &fakeGateway{}
		uc := newPayoutUsecase(w, gateway)

		// the interrupted attempt holds no billed entries, so a fresh execute
		// call cannot recover it
		_, err := uc.ExecutePayout(context.Background(), &payoutdto.ExecutePayoutInput{
			OrderID: "order-1", ActorID: "provider-1",
		})
		if !errors.Is(err, domain.ErrNoBillableEntries) {
			t.Fatalf("ExecutePayout err = %v, want ErrNoBillableEntries", err)
		}

		if err := uc.ResumeStalledPayouts(context.Background()); err != nil {
			t.Fatalf("ResumeStalledPayouts: %v", err)
		}
		if len(gateway.transfers) != 1 || gateway.transfers[0] != payout.IdempotencyKey {
			t.Fatalf("transfers = %v, want one under key %s", gateway.transfers, payout.IdempotencyKey)
		}
		if w.payouts["payout-1"].TransferReference == "" {
			t.Error("transfer reference not recorded")
		}
		if w.escrows["escrow-1"].ReleasedAmount != 6000 {
			t.Errorf("released = %d, want 6000 exactly once", w.escrows["escrow-1"].ReleasedAmount)
		}
		for _, entryID := range []string{"entry-1", "entry-2"} {
			if w.entries[entryID].Status != domain.EntryPlatformHeld {
				t.Errorf("entry %s status = %s, want PLATFORM_HELD", entryID, w.entries[entryID].Status)
			}
		}
	})

	t.Run("a failing replay falls back to the failed-retry path", func(t *testing.T) {
		w, payout := seedStalled()
		gateway := &fakeGateway{failNext: true}
		uc := newPayoutUsecase(w, gateway)

		if err := uc.ResumeStalledPayouts(context.Background()); err != nil {
			t.Fatalf("ResumeStalledPayouts: %v", err)
		}
		if w.payouts["payout-1"].Status != domain.PayoutFailed {
			t.Fatalf("status = %s, want FAILED after rollback", w.payouts["payout-1"].Status)
		}
		if w.escrows["escrow-1"].ReleasedAmount != 0 {
			t.Errorf("released = %d, want 0 after rollback", w.escrows["escrow-1"].ReleasedAmount)
		}

		if err := uc.RetryFailedPayouts(context.Background()); err != nil {
			t.Fatalf("RetryFailedPayouts: %v", err)
		}
		if len(gateway.transfers) != 1 || gateway.transfers[0] != payout.IdempotencyKey {
			t.Errorf("transfers = %v, want one under the original key", gateway.transfers)
		}
	})

	t.Run("payouts with an accepted transfer are left to the webhook", func(t *testing.T) {
		w, _ := seedStalled()
		w.payouts["payout-1"].TransferReference = "tr_accepted"
		gateway := &fakeGateway{}
		uc := newPayoutUsecase(w, gateway)

		if err := uc.ResumeStalledPayouts(context.Background()); err != nil {
			t.Fatalf("ResumeStalledPayouts: %v", err)
		}
		if len(gateway.transfers) != 0 {
			t.Errorf("transfers = %d, want 0", len(gateway.transfers))
		}
	})
}

func TestApplyTransferEvent(t *testing.T) {
	w := seedWorld()
	gateway := &fakeGateway{}
	uc := newPayoutUsecase(w, gateway)

	payout, err := uc.ExecutePayout(context.Background(), &payoutdto.ExecutePayoutInput{
		OrderID: "order-1", ActorID: "provider-1",
	})
	if err != nil {
		t.Fatalf("ExecutePayout: %v", err)
	}

	event := &domain.PaymentEvent{
		Reference: payout.TransferReference,
		Kind:      domain.PaymentEventTransferSucceeded,
		Amount:    6000,
		Currency:  "EUR",
	}

	t.Run("first delivery settles the payout", func(t *testing.T) {
		if err := uc.ApplyTransferEvent(event); err != nil {
			t.Fatalf("ApplyTransferEvent: %v", err)
		}
		if w.payouts[payout.ID].Status != domain.PayoutTransferred {
			t.Errorf("payout status = %s, want TRANSFERRED", w.payouts[payout.ID].Status)
		}
		for _, entryID := range []string{"entry-1", "entry-2"} {
			if w.entries[entryID].Status != domain.EntryPaidOut {
				t.Errorf("entry %s status = %s, want PAID_OUT", entryID, w.entries[entryID].Status)
			}
		}
		if w.orders["order-1"].Status != domain.OrderPaidOut {
			t.Errorf("order status = %s, want PAID_OUT", w.orders["order-1"].Status)
		}
	})

	t.Run("redelivery is a no-op", func(t *testing.T) {
		if err := uc.ApplyTransferEvent(event); err != nil {
			t.Fatalf("ApplyTransferEvent redelivery: %v", err)
		}
		if w.escrows["escrow-1"].ReleasedAmount != 6000 {
			t.Errorf("released = %d, want 6000", w.escrows["escrow-1"].ReleasedAmount)
		}
	})
}

func TestApplyTransferFailedEvent(t *testing.T) {
	w := seedWorld()
	gateway := &fakeGateway{}
	uc := newPayoutUsecase(w, gateway)

	payout, err := uc.ExecutePayout(context.Background(), &payoutdto.ExecutePayoutInput{
		OrderID: "order-1", ActorID: "provider-1",
	})
	if err != nil {
		t.Fatalf("ExecutePayout: %v", err)
	}

	event := &domain.PaymentEvent{
		Reference: payout.TransferReference,
		Kind:      domain.PaymentEventTransferFailed,
	}
	if err := uc.ApplyTransferEvent(event); err != nil {
		t.Fatalf("ApplyTransferEvent: %v", err)
	}

	if w.payouts[payout.ID].Status != domain.PayoutFailed {
		t.Errorf("payout status = %s, want FAILED", w.payouts[payout.ID].Status)
	}
	if w.escrows["escrow-1"].ReleasedAmount != 0 {
		t.Errorf("released = %d, want 0 after rollback", w.escrows["escrow-1"].ReleasedAmount)
	}

	if err := uc.ApplyTransferEvent(event); err != nil {
		t.Fatalf("ApplyTransferEvent redelivery: %v", err)
	}
	if w.escrows["escrow-1"].ReleasedAmount != 0 {
		t.Errorf("redelivery double-rolled back: released = %d", w.escrows["escrow-1"].ReleasedAmount)
	}
}
