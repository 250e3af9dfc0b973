package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	portssvc "github.com/kemasku/packshop_backend/internal/core/ports/services"
	"github.com/kemasku/packshop_backend/internal/dto"
)

// financeService provides the finance log: append-only income entries from
// the money ledger and manager-facing reporting reads.
type financeService struct {
	financeRepo portsrepo.FinanceRepositoryFacade
}

// NewFinanceService creates a new FinanceService.
func NewFinanceService(financeRepo portsrepo.FinanceRepositoryFacade) portssvc.FinanceSvcFacade {
	return &financeService{financeRepo: financeRepo}
}

var _ portssvc.FinanceSvcFacade = (*financeService)(nil)

// RecordIncome appends one income entry.
func (s *financeService) RecordIncome(ctx context.Context, entry domain.FinanceLogEntry) error {
	if err := s.financeRepo.SaveEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to save finance log entry: %w", err)
	}
	return nil
}

// ListEntries retrieves the finance log for a date window, newest first.
func (s *financeService) ListEntries(ctx context.Context, params dto.ListFinanceEntriesParams) (*dto.ListFinanceEntriesResponse, error) {
	entries, nextToken, err := s.financeRepo.ListEntries(ctx, params.From, params.To, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list finance log entries: %w", err)
	}

	resp := dto.ListFinanceEntriesResponse{
		Entries:   make([]dto.FinanceEntryResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.ToFinanceEntryResponse(e))
	}
	return &resp, nil
}

// SummarizeIncome aggregates income totals per payment method over a window.
func (s *financeService) SummarizeIncome(ctx context.Context, params dto.FinanceSummaryParams) (*dto.FinanceSummaryResponse, error) {
	rows, err := s.financeRepo.SummarizeIncome(ctx, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize income: %w", err)
	}

	resp := dto.FinanceSummaryResponse{
		TotalIncome: decimal.Zero,
		ByMethod:    make([]dto.FinanceMethodTotal, 0, len(rows)),
	}
	for _, row := range rows {
		resp.TotalIncome = resp.TotalIncome.Add(row.Total)
		resp.ByMethod = append(resp.ByMethod, dto.FinanceMethodTotal{
			PaymentMethod: string(row.PaymentMethod),
			Total:         row.Total,
			Count:         row.Count,
		})
	}
	return &resp, nil
}
