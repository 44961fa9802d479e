package domain

// Payee abstracts over the provider shapes that can receive a payout.
// Companies, their employees and individual providers all resolve to a payout
// destination instead of being branched on at each call site.
type Payee interface {
	PayeeID() string
	PayoutDestination() string
}

// IndividualPayee is a self-employed provider paid straight to their own
// account.
type IndividualPayee struct {
	ProviderID string
	AccountRef string
}

func (p IndividualPayee) PayeeID() string           { return p.ProviderID }
func (p IndividualPayee) PayoutDestination() string { return p.AccountRef }

// CompanyPayee routes the payout to the company account regardless of which
// member did the work.
type CompanyPayee struct {
	CompanyID  string
	AccountRef string
}

func (p CompanyPayee) PayeeID() string           { return p.CompanyID }
func (p CompanyPayee) PayoutDestination() string { return p.AccountRef }

// EmployeePayee works under a company; funds go to the employer account.
type EmployeePayee struct {
	EmployeeID string
	Employer   CompanyPayee
}

func (p EmployeePayee) PayeeID() string           { return p.EmployeeID }
func (p EmployeePayee) PayoutDestination() string { return p.Employer.AccountRef }

// PayeeResolver looks up the payee for a provider id.
type PayeeResolver interface {
	ResolvePayee(providerID string) (Payee, error)
}
