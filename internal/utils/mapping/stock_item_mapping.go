package mapping

import (
	"github.com/rkalra23/workshop_mgmt_app/internal/core/domain"
	"github.com/rkalra23/workshop_mgmt_app/internal/models"
)

// ToModelStockItem converts a domain StockItem to a model StockItem
func ToModelStockItem(d domain.StockItem) models.StockItem {
	return models.StockItem{
		StockItemID: d.StockItemID,
		SKU:         d.SKU,
		Name:        d.Name,
		Kind:        models.StockItemKind(d.Kind),
		UnitPrice:   d.UnitPrice,
		OnHand:      d.OnHand,
		Reserved:    d.Reserved,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStockItem converts a model StockItem to a domain StockItem
func ToDomainStockItem(m models.StockItem) domain.StockItem {
	return domain.StockItem{
		StockItemID: m.StockItemID,
		SKU:         m.SKU,
		Name:        m.Name,
		Kind:        domain.StockItemKind(m.Kind),
		UnitPrice:   m.UnitPrice,
		OnHand:      m.OnHand,
		Reserved:    m.Reserved,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStockItemSlice converts a slice of model StockItems to domain StockItems
func ToDomainStockItemSlice(ms []models.StockItem) []domain.StockItem {
	ds := make([]domain.StockItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStockItem(m)
	}
	return ds
}
