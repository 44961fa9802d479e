package mappers

import (
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/domain"
	"github.com/Andy54411/the-freelancer-marketing-sub059/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:          model.ID,
		QuoteID:     model.QuoteID,
		ProposalID:  model.ProposalID,
		CustomerID:  model.CustomerID,
		ProviderID:  model.ProviderID,
		GrossAmount: model.GrossAmount,
		HourlyRate:  model.HourlyRate,
		Currency:    model.Currency,
		Status:      model.Status,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:          order.ID,
		QuoteID:     order.QuoteID,
		ProposalID:  order.ProposalID,
		CustomerID:  order.CustomerID,
		ProviderID:  order.ProviderID,
		GrossAmount: order.GrossAmount,
		HourlyRate:  order.HourlyRate,
		Currency:    order.Currency,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

func ToDomainEscrow(model *models.EscrowModel) *domain.EscrowRecord {
	return &domain.EscrowRecord{
		ID:                model.ID,
		OrderID:           model.OrderID,
		GrossAmount:       model.GrossAmount,
		PlatformFeeAmount: model.PlatformFeeAmount,
		ProviderAmount:    model.ProviderAmount,
		ReleasedAmount:    model.ReleasedAmount,
		Currency:          model.Currency,
		Status:            model.Status,
		PaymentReference:  model.PaymentReference,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

func ToGORMEscrow(record *domain.EscrowRecord) *models.EscrowModel {
	return &models.EscrowModel{
		ID:                record.ID,
		OrderID:           record.OrderID,
		GrossAmount:       record.GrossAmount,
		PlatformFeeAmount: record.PlatformFeeAmount,
		ProviderAmount:    record.ProviderAmount,
		ReleasedAmount:    record.ReleasedAmount,
		Currency:          record.Currency,
		Status:            record.Status,
		PaymentReference:  record.PaymentReference,
		CreatedAt:         record.CreatedAt,
		UpdatedAt:         record.UpdatedAt,
	}
}
