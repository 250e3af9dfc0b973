package services

import (
	"context"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	"github.com/kemasku/packshop_backend/internal/dto"
)

// FinanceSvcFacade defines the finance log collaborator surface.
// The money ledger writes; manager reporting reads.
type FinanceSvcFacade interface {
	// RecordIncome appends a write-only income entry. Callers treat failures
	// as non-fatal: the ledger's own consistency never depends on this log.
	RecordIncome(ctx context.Context, entry domain.FinanceLogEntry) error

	ListEntries(ctx context.Context, params dto.ListFinanceEntriesParams) (*dto.ListFinanceEntriesResponse, error)
	SummarizeIncome(ctx context.Context, params dto.FinanceSummaryParams) (*dto.FinanceSummaryResponse, error)
}
