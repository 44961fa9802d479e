package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	publisher "github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/kafka"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/metrics"
	quotedto "github.com/Andy54411/the-freelancer-marketing-sub059/internal/usecase/dto/quote"
)

// promauto registers in the default registry, so the package shares one set.
var testMetrics = metrics.NewEngineMetrics()

type fakeQuoteRepo struct {
	mu        sync.Mutex
	quotes    map[string]*domain.Quote
	proposals map[string]*domain.Proposal
	orders    map[string]*domain.Order
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes:    make(map[string]*domain.Quote),
		proposals: make(map[string]*domain.Proposal),
		orders:    make(map[string]*domain.Order),
	}
}

func (f *fakeQuoteRepo) CreateQuote(quote *domain.Quote) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *quote
	f.quotes[quote.ID] = &copied
	return nil
}

func (f *fakeQuoteRepo) GetQuoteByID(quoteID string) (*domain.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	quote, ok := f.quotes[quoteID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *quote
	return &copied, nil
}

func (f *fakeQuoteRepo) UpdateQuoteStatus(quoteID string, oldStatus, newStatus domain.QuoteStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	quote, ok := f.quotes[quoteID]
	if !ok {
		return nil
	}
	if quote.Status != oldStatus {
		return domain.ErrInvalidStateTransition
	}
	quote.Status = newStatus
	return nil
}

func (f *fakeQuoteRepo) CreateProposal(proposal *domain.Proposal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *proposal
	f.proposals[proposal.ID] = &copied
	return nil
}

func (f *fakeQuoteRepo) GetProposalByID(proposalID string) (*domain.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	proposal, ok := f.proposals[proposalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *proposal
	return &copied, nil
}

func (f *fakeQuoteRepo) GetProposalsByQuoteID(quoteID string) ([]*domain.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Proposal
	for _, proposal := range f.proposals {
		if proposal.QuoteID == quoteID {
			copied := *proposal
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeQuoteRepo) UpdateProposalStatus(proposalID string, oldStatus, newStatus domain.ProposalStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	proposal, ok := f.proposals[proposalID]
	if !ok {
		return domain.ErrNotFound
	}
	if proposal.Status != oldStatus {
		return domain.ErrInvalidStateTransition
	}
	proposal.Status = newStatus
	return nil
}

func (f *fakeQuoteRepo) AcceptProposal(quoteID, proposalID string, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	quote, ok := f.quotes[quoteID]
	if !ok {
		return domain.ErrNotFound
	}
	if quote.Status != domain.QuoteOpen {
		return domain.ErrConcurrentAcceptance
	}
	winner, ok := f.proposals[proposalID]
	if !ok {
		return domain.ErrNotFound
	}
	if winner.Status != domain.ProposalSubmitted {
		return domain.ErrConcurrentAcceptance
	}

	quote.Status = domain.QuoteProposalAccepted
	winner.Status = domain.ProposalAccepted
	for _, sibling := range f.proposals {
		if sibling.QuoteID == quoteID && sibling.ID != proposalID && sibling.Status == domain.ProposalSubmitted {
			sibling.Status = domain.ProposalDeclined
		}
	}
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (f *fakeOrderRepo) GetOrderByID(orderID string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) GetOrderByQuoteID(quoteID string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.QuoteID == quoteID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOrderRepo) UpdateOrderStatus(orderID string, oldStatus, newStatus domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	if order.Status != oldStatus || !domain.CanTransitionOrder(oldStatus, newStatus) {
		return domain.ErrInvalidStateTransition
	}
	order.Status = newStatus
	return nil
}

type nopEvents struct{}

func (nopEvents) PublishOrderEvent(event publisher.OrderEvent) error { return nil }

func newQuoteUsecase(repo *fakeQuoteRepo) *DefaultQuoteUsecase {
	return NewDefaultQuoteUsecase(repo, newFakeOrderRepo(), nopEvents{}, testMetrics)
}

func TestSubmitProposal(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newQuoteUsecase(repo)

	quote, err := uc.CreateQuote(&quotedto.CreateQuoteInput{
		CustomerID:  "customer-1",
		Description: "garden redesign",
		Category:    "landscaping",
	})
	if err != nil {
		t.Fatalf("CreateQuote: %v", err)
	}

	t.Run("submits to open quote", func(t *testing.T) {
		proposal, err := uc.SubmitProposal(&quotedto.SubmitProposalInput{
			QuoteID:     quote.ID,
			ProviderID:  "provider-1",
			TotalAmount: 45000,
			HourlyRate:  2000,
			Currency:    "EUR",
		})
		if err != nil {
			t.Fatalf("SubmitProposal: %v", err)
		}
		if proposal.Status != domain.ProposalSubmitted {
			t.Errorf("status = %s, want SUBMITTED", proposal.Status)
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := uc.SubmitProposal(&quotedto.SubmitProposalInput{
			QuoteID:    quote.ID,
			ProviderID: "provider-2",
			Currency:   "EUR",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("rejects closed quote", func(t *testing.T) {
		if err := uc.CancelQuote(&quotedto.CancelQuoteInput{QuoteID: quote.ID, ActorID: "customer-1"}); err != nil {
			t.Fatalf("CancelQuote: %v", err)
		}
		_, err := uc.SubmitProposal(&quotedto.SubmitProposalInput{
			QuoteID:     quote.ID,
			ProviderID:  "provider-3",
			TotalAmount: 1000,
			Currency:    "EUR",
		})
		if !errors.Is(err, domain.ErrQuoteClosed) {
			t.Errorf("err = %v, want ErrQuoteClosed", err)
		}
	})
}

func TestAcceptProposal(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newQuoteUsecase(repo)

	quote, _ := uc.CreateQuote(&quotedto.CreateQuoteInput{
		CustomerID:  "customer-1",
		Description: "balcony painting",
	})
	winner, _ := uc.SubmitProposal(&quotedto.SubmitProposalInput{
		QuoteID: quote.ID, ProviderID: "provider-1", TotalAmount: 45000, HourlyRate: 2000, Currency: "EUR",
	})
	loser, _ := uc.SubmitProposal(&quotedto.SubmitProposalInput{
		QuoteID: quote.ID, ProviderID: "provider-2", TotalAmount: 50000, HourlyRate: 2500, Currency: "EUR",
	})

	t.Run("only the customer may accept", func(t *testing.T) {
		_, err := uc.AcceptProposal(&quotedto.AcceptProposalInput{
			QuoteID: quote.ID, ProposalID: winner.ID, ActorID: "provider-1",
		})
		if !errors.Is(err, domain.ErrPermissionDenied) {
			t.Errorf("err = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("creates order and declines siblings", func(t *testing.T) {
		output, err := uc.AcceptProposal(&quotedto.AcceptProposalInput{
			QuoteID: quote.ID, ProposalID: winner.ID, ActorID: "customer-1",
		})
		if err != nil {
			t.Fatalf("AcceptProposal: %v", err)
		}
		if output.Order.Status != domain.OrderPendingPayment {
			t.Errorf("order status = %s, want PENDING_PAYMENT", output.Order.Status)
		}
		if output.Order.GrossAmount != 45000 || output.Order.HourlyRate != 2000 {
			t.Errorf("order amounts = %d/%d, want 45000/2000", output.Order.GrossAmount, output.Order.HourlyRate)
		}

		declined, _ := repo.GetProposalByID(loser.ID)
		if declined.Status != domain.ProposalDeclined {
			t.Errorf("sibling status = %s, want DECLINED", declined.Status)
		}
	})

	t.Run("second acceptance conflicts", func(t *testing.T) {
		_, err := uc.AcceptProposal(&quotedto.AcceptProposalInput{
			QuoteID: quote.ID, ProposalID: loser.ID, ActorID: "customer-1",
		})
		if !errors.Is(err, domain.ErrConcurrentAcceptance) {
			t.Errorf("err = %v, want ErrConcurrentAcceptance", err)
		}
	})
}

func TestAcceptProposalConcurrent(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newQuoteUsecase(repo)

	quote, _ := uc.CreateQuote(&quotedto.CreateQuoteInput{
		CustomerID:  "customer-1",
		Description: "deck repair",
	})
	var proposalIDs []string
	for i := 0; i < 4; i++ {
		proposal, _ := uc.SubmitProposal(&quotedto.SubmitProposalInput{
			QuoteID: quote.ID, ProviderID: "provider", TotalAmount: 10000, Currency: "EUR",
		})
		proposalIDs = append(proposalIDs, proposal.ID)
	}

	var wg sync.WaitGroup
	results := make(chan error, len(proposalIDs)*3)
	for i := 0; i < len(proposalIDs)*3; i++ {
		proposalID := proposalIDs[i%len(proposalIDs)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.AcceptProposal(&quotedto.AcceptProposalInput{
				QuoteID: quote.ID, ProposalID: proposalID, ActorID: "customer-1",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var accepted int
	for err := range results {
		if err == nil {
			accepted++
		} else if !errors.Is(err, domain.ErrConcurrentAcceptance) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if accepted != 1 {
		t.Errorf("accepted = %d, want exactly 1", accepted)
	}
	if len(repo.orders) != 1 {
		t.Errorf("orders created = %d, want exactly 1", len(repo.orders))
	}
}

func TestWithdrawProposal(t *testing.T) {
	repo := newFakeQuoteRepo()
	uc := newQuoteUsecase(repo)

	quote, _ := uc.CreateQuote(&quotedto.CreateQuoteInput{CustomerID: "customer-1", Description: "tiling"})
	proposal, _ := uc.SubmitProposal(&quotedto.SubmitProposalInput{
		QuoteID: quote.ID, ProviderID: "provider-1", TotalAmount: 1000, Currency: "EUR",
	})

	t.Run("only the owner may withdraw", func(t *testing.T) {
		err := uc.WithdrawProposal(&quotedto.WithdrawProposalInput{ProposalID: proposal.ID, ActorID: "provider-2"})
		if !errors.Is(err, domain.ErrPermissionDenied) {
			t.Errorf("err = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("withdraws a submitted proposal", func(t *testing.T) {
		if err := uc.WithdrawProposal(&quotedto.WithdrawProposalInput{ProposalID: proposal.ID, ActorID: "provider-1"}); err != nil {
			t.Fatalf("WithdrawProposal: %v", err)
		}
		withdrawn, _ := repo.GetProposalByID(proposal.ID)
		if withdrawn.Status != domain.ProposalWithdrawn {
			t.Errorf("status = %s, want WITHDRAWN", withdrawn.Status)
		}
	})

	t.Run("cannot withdraw twice", func(t *testing.T) {
		err := uc.WithdrawProposal(&quotedto.WithdrawProposalInput{ProposalID: proposal.ID, ActorID: "provider-1"})
		if !errors.Is(err, domain.ErrInvalidStateTransition) {
			t.Errorf("err = %v, want ErrInvalidStateTransition", err)
		}
	})
}
