// Package seed bulk-loads the transaction collection from its external JSON
// data source. Loading happens once, before the store accepts queries, and
// every record is validated on the way in.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/PUSHKARDEORE/Finalytics/internal/encoding"
	"github.com/PUSHKARDEORE/Finalytics/internal/transaction"
)

type record struct {
	ID          int     `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	UserID      string  `json:"user_id"`
	UserProfile string  `json:"user_profile"`
}

// Parse reads a transactions JSON array and returns validated transactions.
// A record with an unknown category or status, a missing required field, or
// a duplicate id fails the whole load.
func Parse(r io.Reader) ([]*transaction.Transaction, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	var records []record
	if err := json.NewDecoder(utf8r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}

	txs := make([]*transaction.Transaction, 0, len(records))
	seen := make(map[int]struct{}, len(records))

	for _, rec := range records {
		date, err := parseDate(rec.Date)
		if err != nil {
			return nil, transaction.NewValidationError("transaction %d: invalid date %q", rec.ID, rec.Date)
		}

		tx := &transaction.Transaction{
			ID:          rec.ID,
			Date:        date,
			Amount:      rec.Amount,
			Category:    transaction.Category(rec.Category),
			Status:      transaction.Status(rec.Status),
			UserID:      rec.UserID,
			UserProfile: rec.UserProfile,
		}

		if err := tx.Validate(); err != nil {
			return nil, err
		}

		if _, ok := seen[tx.ID]; ok {
			return nil, transaction.NewValidationError("transaction %d: duplicate id", tx.ID)
		}

		seen[tx.ID] = struct{}{}
		txs = append(txs, tx)
	}

	return txs, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse(time.DateOnly, s)
}

// LoadFile parses the seed file and replaces the store's collection with its
// contents.
func LoadFile(ctx context.Context, path string, repo transaction.Repository) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	txs, err := Parse(f)
	if err != nil {
		return 0, fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	if err := repo.ReplaceAll(ctx, txs); err != nil {
		return 0, fmt.Errorf("loading transactions: %w", err)
	}

	return len(txs), nil
}
