package repositories

import (
	"context"
	"time"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FinanceSummaryRow is one aggregate line of the manager income summary.
type FinanceSummaryRow struct {
	PaymentMethod domain.PaymentMethod
	Total         decimal.Decimal
	Count         int64
}

// FinanceRepositoryFacade defines persistence operations for the finance log.
// The money ledger only ever writes; reads serve manager reporting.
type FinanceRepositoryFacade interface {
	SaveEntry(ctx context.Context, entry domain.FinanceLogEntry) error
	ListEntries(ctx context.Context, from, to *time.Time, limit int, nextToken *string) ([]domain.FinanceLogEntry, *string, error)
	SummarizeIncome(ctx context.Context, from, to *time.Time) ([]FinanceSummaryRow, error)
}
