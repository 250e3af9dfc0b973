package mapping

import (
	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/kemasku/packshop_backend/internal/models"
)

// ToModelInventoryItem converts a domain InventoryItem to its table row.
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ItemID:      d.ItemID,
		Name:        d.Name,
		Category:    d.Category,
		Size:        d.Size,
		Unit:        d.Unit,
		Stock:       d.Stock,
		MinStock:    d.MinStock,
		CostPerUnit: d.CostPerUnit,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryItem converts an inventory_items row to a domain item.
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:      m.ItemID,
		Name:        m.Name,
		Category:    m.Category,
		Size:        m.Size,
		Unit:        m.Unit,
		Stock:       m.Stock,
		MinStock:    m.MinStock,
		CostPerUnit: m.CostPerUnit,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInventoryLog converts a domain log entry to its table row.
func ToModelInventoryLog(d domain.InventoryLogEntry) models.InventoryLog {
	return models.InventoryLog{
		LogID:     d.LogID,
		ItemID:    d.ItemID,
		Direction: string(d.Direction),
		Amount:    d.Amount,
		Note:      d.Note,
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}
}

// ToDomainInventoryLog converts an inventory_logs row to a domain log entry.
func ToDomainInventoryLog(m models.InventoryLog) domain.InventoryLogEntry {
	return domain.InventoryLogEntry{
		LogID:     m.LogID,
		ItemID:    m.ItemID,
		Direction: domain.LogDirection(m.Direction),
		Amount:    m.Amount,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}
