// Package export projects filtered transactions onto a caller-chosen column
// set and serializes them as CSV.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/PUSHKARDEORE/Finalytics/internal/transaction"
)

// DefaultColumns is the column set used when the caller supplies none.
var DefaultColumns = []string{"id", "date", "amount", "category", "status", "user_id"}

type Service struct {
	repo transaction.Repository
	now  func() time.Time
}

func NewService(repo transaction.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Result is a rendered CSV document plus the dated filename suggested for
// the Content-Disposition header.
type Result struct {
	Data     []byte
	Filename string
}

// CSV renders every transaction matching the raw filter, sorted date
// descending, one row per record under a header row of the given columns.
// Columns must be non-empty and each must name a transaction field; anything
// else is a validation error, never a silently dropped column.
func (s *Service) CSV(ctx context.Context, columns []string, raw transaction.RawFilter) (*Result, error) {
	if len(columns) == 0 {
		return nil, transaction.NewValidationError("at least one export column is required")
	}

	fields := make([]transaction.Field, len(columns))

	for i, col := range columns {
		if !transaction.ValidField(col) {
			return nil, transaction.NewValidationError("unknown export column %q", col)
		}

		fields[i] = transaction.Field(col)
	}

	pred, err := transaction.BuildPredicate(raw)
	if err != nil {
		return nil, err
	}

	txs, err := s.repo.ListAll(ctx, pred, transaction.DefaultSort)
	if err != nil {
		return nil, fmt.Errorf("listing transactions for export: %w", err)
	}

	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	row := make([]string, len(fields))

	for _, tx := range txs {
		for i, f := range fields {
			row[i] = tx.CellValue(f)
		}

		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return &Result{
		Data:     buf.Bytes(),
		Filename: fmt.Sprintf("transactions-%s.csv", s.now().Format(time.DateOnly)),
	}, nil
}
