package mapping

import (
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/rkalra23/workshop_mgmt_app/internal/models"
)

// ToModelOrder converts a domain Order to a model Order. Lines are mapped
// separately via ToModelOrderLine.
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:        d.OrderID,
		Kind:           models.OrderKind(d.Kind),
		SequenceNumber: d.SequenceNumber,
		CustomerID:     d.CustomerID,
		VehicleID:      d.VehicleID,
		LaborCost:      d.LaborCost,
		OrderDiscount:  d.OrderDiscount,
		Total:          d.Total,
		PaymentTerms:   models.PaymentTerms(d.PaymentTerms),
		Installments:   d.Installments,
		Status:         models.OrderStatus(d.Status),
		StockApplied:   d.StockApplied,
		CompletedAt:    d.CompletedAt,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts a model Order to a domain Order (without lines).
func ToDomainOrder(m models.Order) domain.Order {
	return domain.Order{
		OrderID:        m.OrderID,
		Kind:           domain.OrderKind(m.Kind),
		SequenceNumber: m.SequenceNumber,
		CustomerID:     m.CustomerID,
		VehicleID:      m.VehicleID,
		LaborCost:      m.LaborCost,
		OrderDiscount:  m.OrderDiscount,
		Total:          m.Total,
		PaymentTerms:   domain.PaymentTerms(m.PaymentTerms),
		Installments:   m.Installments,
		Status:         domain.OrderStatus(m.Status),
		StockApplied:   m.StockApplied,
		CompletedAt:    m.CompletedAt,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrderLine converts a domain OrderLine to a model OrderLine
func ToModelOrderLine(d domain.OrderLine) models.OrderLine {
	return models.OrderLine{
		OrderLineID:  d.OrderLineID,
		OrderID:      d.OrderID,
		StockItemID:  d.StockItemID,
		Description:  d.Description,
		Quantity:     d.Quantity,
		UnitPrice:    d.UnitPrice,
		LineDiscount: d.LineDiscount,
		LineTotal:    d.LineTotal,
	}
}

// ToDomainOrderLine converts a model OrderLine to a domain OrderLine
func ToDomainOrderLine(m models.OrderLine) domain.OrderLine {
	return domain.OrderLine{
		OrderLineID:  m.OrderLineID,
		OrderID:      m.OrderID,
		StockItemID:  m.StockItemID,
		Description:  m.Description,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		LineDiscount: m.LineDiscount,
		LineTotal:    m.LineTotal,
	}
}

// ToDomainOrderLineSlice converts a slice of model OrderLines to domain OrderLines
func ToDomainOrderLineSlice(ms []models.OrderLine) []domain.OrderLine {
	ds := make([]domain.OrderLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrderLine(m)
	}
	return ds
}
