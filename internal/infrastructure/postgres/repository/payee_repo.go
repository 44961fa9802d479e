package repository

import (
	"errors"
	"fmt"

	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultPayeeResolver resolves the payout destination for individual,
// company and employee providers from provider_accounts.
type DefaultPayeeResolver struct {
	DB *gorm.DB
}

func NewDefaultPayeeResolver(db *gorm.DB) *DefaultPayeeResolver {
	return &DefaultPayeeResolver{DB: db}
}

func (r *DefaultPayeeResolver) ResolvePayee(providerID string) (domain.Payee, error) {
	var account models.ProviderAccountModel
	if err := r.DB.First(&account, "provider_id = ?", providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	switch account.Kind {
	case "individual":
		return domain.IndividualPayee{ProviderID: account.ProviderID, AccountRef: account.AccountRef}, nil
	case "company":
		return domain.CompanyPayee{CompanyID: account.ProviderID, AccountRef: account.AccountRef}, nil
	case "employee":
		var employer models.ProviderAccountModel
		if err := r.DB.First(&employer, "provider_id = ?", account.CompanyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("employee %s has no employer account: %w", providerID, domain.ErrNotFound)
			}
			return nil, err
		}
		return domain.EmployeePayee{
			EmployeeID: account.ProviderID,
			Employer:   domain.CompanyPayee{CompanyID: employer.ProviderID, AccountRef: employer.AccountRef},
		}, nil
	default:
		return nil, fmt.Errorf("unknown payee kind %q for provider %s", account.Kind, providerID)
	}
}
