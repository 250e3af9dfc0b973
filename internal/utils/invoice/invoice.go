// Package invoice builds and parses invoice numbers of the form
// INV-YYYYMMDD-NNNN, where NNNN is a per-day sequence from 0001 to 9999.
package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kemasku/packshop_backend/internal/core/domain"
)

const (
	prefix      = "INV"
	dateLayout  = "20060102"
	maxSequence = 9999
)

// DayPrefix returns the shared prefix of all invoice numbers issued on the
// given date, e.g. "INV-20250131-". Repositories use it to find the latest
// same-day invoice.
func DayPrefix(date time.Time) string {
	return fmt.Sprintf("%s-%s-", prefix, date.Format(dateLayout))
}

// Format builds the invoice number for a date and sequence value.
// Sequences outside 1..9999 return domain.ErrInvoiceSequenceExhausted.
func Format(date time.Time, seq int) (string, error) {
	if seq < 1 || seq > maxSequence {
		return "", fmt.Errorf("%w: sequence %d", domain.ErrInvoiceSequenceExhausted, seq)
	}
	return fmt.Sprintf("%s%04d", DayPrefix(date), seq), nil
}

// SequenceOf extracts the numeric sequence from an invoice number.
func SequenceOf(invoiceNumber string) (int, error) {
	parts := strings.Split(invoiceNumber, "-")
	if len(parts) != 3 || parts[0] != prefix || len(parts[2]) != 4 {
		return 0, fmt.Errorf("malformed invoice number %q", invoiceNumber)
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("malformed invoice number %q: %w", invoiceNumber, err)
	}
	return seq, nil
}

// Next returns the invoice number following latest for the given date.
// An empty latest, or one issued on a different day, starts the day at 0001.
func Next(latest string, date time.Time) (string, error) {
	if latest == "" || !strings.HasPrefix(latest, DayPrefix(date)) {
		return Format(date, 1)
	}
	seq, err := SequenceOf(latest)
	if err != nil {
		return "", err
	}
	return Format(date, seq+1)
}
