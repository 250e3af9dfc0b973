package dto

import (
	"time"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListFinanceEntriesParams captures query parameters for the finance log.
type ListFinanceEntriesParams struct {
	From      *time.Time `form:"from" binding:"omitempty" time_format:"2006-01-02"`
	To        *time.Time `form:"to" binding:"omitempty" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string    `form:"nextToken" binding:"omitempty"`
}

// FinanceSummaryParams captures the date window for an income summary.
type FinanceSummaryParams struct {
	From *time.Time `form:"from" binding:"omitempty" time_format:"2006-01-02"`
	To   *time.Time `form:"to" binding:"omitempty" time_format:"2006-01-02"`
}

// FinanceEntryResponse is one finance log row.
type FinanceEntryResponse struct {
	EntryID       string          `json:"entryId"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ListFinanceEntriesResponse is a page of finance log rows.
type ListFinanceEntriesResponse struct {
	Entries   []FinanceEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// FinanceMethodTotal is the income aggregate for one payment method.
type FinanceMethodTotal struct {
	PaymentMethod string          `json:"paymentMethod"`
	Total         decimal.Decimal `json:"total"`
	Count         int64           `json:"count"`
}

// FinanceSummaryResponse aggregates income over the requested window.
type FinanceSummaryResponse struct {
	TotalIncome decimal.Decimal      `json:"totalIncome"`
	ByMethod    []FinanceMethodTotal `json:"byMethod"`
}

// ToFinanceEntryResponse converts a domain finance entry to its API shape.
func ToFinanceEntryResponse(e domain.FinanceLogEntry) FinanceEntryResponse {
	return FinanceEntryResponse{
		EntryID:       e.EntryID,
		Type:          string(e.Type),
		Category:      e.Category,
		Amount:        e.Amount,
		Description:   e.Description,
		PaymentMethod: string(e.PaymentMethod),
		InvoiceNumber: e.InvoiceNumber,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
	}
}
