package mapping

import (
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/rkalra23/workshop_mgmt_app/internal/models"
)

// ToModelCashMovement converts a domain CashMovement to a model CashMovement
func ToModelCashMovement(d domain.CashMovement) models.CashMovement {
	return models.CashMovement{
		CashMovementID: d.CashMovementID,
		Direction:      models.CashDirection(d.Direction),
		Amount:         d.Amount,
		Category:       d.Category,
		ReferenceKind:  models.CashReferenceKind(d.ReferenceKind),
		ReferenceID:    d.ReferenceID,
		OccurredAt:     d.OccurredAt,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainCashMovement converts a model CashMovement to a domain CashMovement
func ToDomainCashMovement(m models.CashMovement) domain.CashMovement {
	return domain.CashMovement{
		CashMovementID: m.CashMovementID,
		Direction:      domain.CashDirection(m.Direction),
		Amount:         m.Amount,
		Category:       m.Category,
		ReferenceKind:  domain.CashReferenceKind(m.ReferenceKind),
		ReferenceID:    m.ReferenceID,
		OccurredAt:     m.OccurredAt,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToDomainCashMovementSlice converts a slice of model CashMovements to domain CashMovements
func ToDomainCashMovementSlice(ms []models.CashMovement) []domain.CashMovement {
	ds := make([]domain.CashMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashMovement(m)
	}
	return ds
}
