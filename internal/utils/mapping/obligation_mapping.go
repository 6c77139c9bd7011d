package mapping

import (
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/rkalra23/workshop_mgmt_app/internal/models"
)

// ToModelObligation converts a domain Obligation to a model Obligation
func ToModelObligation(d domain.Obligation) models.Obligation {
	return models.Obligation{
		ObligationID:      d.ObligationID,
		Direction:         models.ObligationDirection(d.Direction),
		CustomerID:        d.CustomerID,
		Amount:            d.Amount,
		DueDate:           d.DueDate,
		Status:            models.ObligationStatus(d.Status),
		SettledAmount:     d.SettledAmount,
		SettledAt:         d.SettledAt,
		SettlementMethod:  d.SettlementMethod,
		InstallmentNumber: d.InstallmentNumber,
		OrderID:           d.OrderID,
		Description:       d.Description,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainObligation converts a model Obligation to a domain Obligation
func ToDomainObligation(m models.Obligation) domain.Obligation {
	return domain.Obligation{
		ObligationID:      m.ObligationID,
		Direction:         domain.ObligationDirection(m.Direction),
		CustomerID:        m.CustomerID,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		Status:            domain.ObligationStatus(m.Status),
		SettledAmount:     m.SettledAmount,
		SettledAt:         m.SettledAt,
		SettlementMethod:  m.SettlementMethod,
		InstallmentNumber: m.InstallmentNumber,
		OrderID:           m.OrderID,
		Description:       m.Description,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainObligationSlice converts a slice of model Obligations to domain Obligations
func ToDomainObligationSlice(ms []models.Obligation) []domain.Obligation {
	ds := make([]domain.Obligation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainObligation(m)
	}
	return ds
}
