package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kemasku/packshop_backend/internal/apperrors"
	"github.com/kemasku/packshop_backend/internal/core/domain"
	portsrepo "github.com/kemasku/packshop_backend/internal/core/ports/repositories"
	"github.com/kemasku/packshop_backend/internal/models"
	"github.com/kemasku/packshop_backend/internal/utils/pagination"
)

type PgxFinanceRepository struct {
	BaseRepository
}

func newPgxFinanceRepository(pool *pgxpool.Pool) portsrepo.FinanceRepositoryFacade {
	return &PgxFinanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinanceRepositoryFacade = (*PgxFinanceRepository)(nil)

const financeColumns = `entry_id, type, category, amount, description, payment_method, invoice_number, created_at, created_by`

// SaveEntry appends one finance log row. The table is append-only.
func (r *PgxFinanceRepository) SaveEntry(ctx context.Context, entry domain.FinanceLogEntry) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO finance_logs (`+financeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		entry.EntryID, string(entry.Type), entry.Category, entry.Amount, entry.Description,
		string(entry.PaymentMethod), entry.InvoiceNumber, entry.CreatedAt, entry.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save finance log entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// ListEntries retrieves finance log rows for a date window, newest first.
func (r *PgxFinanceRepository) ListEntries(ctx context.Context, from, to *time.Time, limit int, nextToken *string) ([]domain.FinanceLogEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + financeColumns + ` FROM finance_logs WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argPos)
		args = append(args, *from)
		argPos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at < $%d", argPos)
		args = append(args, *to)
		argPos++
	}
	if nextToken != nil {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += fmt.Sprintf(" AND (created_at, entry_id) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, createdAt, fields[1])
		argPos += 2
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, entry_id DESC LIMIT $%d;", argPos)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query finance logs: %w", err)
	}
	defer rows.Close()

	entries := []domain.FinanceLogEntry{}
	for rows.Next() {
		var m models.FinanceLog
		if err := rows.Scan(
			&m.EntryID, &m.Type, &m.Category, &m.Amount, &m.Description,
			&m.PaymentMethod, &m.InvoiceNumber, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("failed to scan finance log row: %w", err)
		}
		entries = append(entries, domain.FinanceLogEntry{
			EntryID:       m.EntryID,
			Type:          domain.FinanceLogType(m.Type),
			Category:      m.Category,
			Amount:        m.Amount,
			Description:   m.Description,
			PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
			InvoiceNumber: m.InvoiceNumber,
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating finance log rows: %w", err)
	}

	var next *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeMultiFieldToken(last.CreatedAt.Format(time.RFC3339Nano), last.EntryID)
		next = &token
	}
	return entries, next, nil
}

// SummarizeIncome aggregates income totals per payment method over a window.
func (r *PgxFinanceRepository) SummarizeIncome(ctx context.Context, from, to *time.Time) ([]portsrepo.FinanceSummaryRow, error) {
	query := `
		SELECT payment_method, COALESCE(SUM(amount), 0), COUNT(*)
		FROM finance_logs
		WHERE type = 'income'
	`
	args := []interface{}{}
	argPos := 1

	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argPos)
		args = append(args, *from)
		argPos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at < $%d", argPos)
		args = append(args, *to)
		argPos++
	}
	query += " GROUP BY payment_method ORDER BY payment_method;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize income: %w", err)
	}
	defer rows.Close()

	summary := []portsrepo.FinanceSummaryRow{}
	for rows.Next() {
		var method string
		var total decimal.Decimal
		var count int64
		if err := rows.Scan(&method, &total, &count); err != nil {
			return nil, fmt.Errorf("failed to scan income summary row: %w", err)
		}
		summary = append(summary, portsrepo.FinanceSummaryRow{
			PaymentMethod: domain.PaymentMethod(method),
			Total:         total,
			Count:         count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income summary rows: %w", err)
	}
	return summary, nil
}
