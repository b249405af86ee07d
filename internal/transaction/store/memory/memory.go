// Package memory provides an in-memory transaction store. The collection is
// bulk-loaded once at startup and read-only afterwards, so queries take a
// shared lock and never block each other.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/PUSHKARDEORE/Finalytics/internal/transaction"
)

type Store struct {
	mu  sync.RWMutex
	txs []*transaction.Transaction
}

func New() *Store {
	return &Store{}
}

// ReplaceAll swaps the whole collection. Records are stored in insertion
// order; copies of the slice headers are taken so the caller keeps no
// mutable reference into the store.
func (s *Store) ReplaceAll(_ context.Context, txs []*transaction.Transaction) error {
	snapshot := make([]*transaction.Transaction, len(txs))
	copy(snapshot, txs)

	s.mu.Lock()
	s.txs = snapshot
	s.mu.Unlock()

	return nil
}

func (s *Store) matching(p transaction.Predicate) []*transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*transaction.Transaction

	for _, tx := range s.txs {
		if p.Match(tx) {
			out = append(out, tx)
		}
	}

	return out
}

// less orders two transactions on the sort field. Ties fall back to id
// ascending so page concatenation is deterministic regardless of direction.
func less(a, b *transaction.Transaction, s transaction.Sort) bool {
	var cmp int

	switch s.Field {
	case transaction.FieldID:
		cmp = compareInt(a.ID, b.ID)
	case transaction.FieldDate:
		cmp = a.Date.Compare(b.Date)
	case transaction.FieldAmount:
		cmp = compareFloat(a.Amount, b.Amount)
	case transaction.FieldCategory:
		cmp = compareString(string(a.Category), string(b.Category))
	case transaction.FieldStatus:
		cmp = compareString(string(a.Status), string(b.Status))
	case transaction.FieldUserID:
		cmp = compareString(a.UserID, b.UserID)
	case transaction.FieldUserProfile:
		cmp = compareString(a.UserProfile, b.UserProfile)
	}

	if cmp == 0 {
		return a.ID < b.ID
	}

	if s.Order == transaction.SortDesc {
		return cmp > 0
	}

	return cmp < 0
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

func sortTransactions(txs []*transaction.Transaction, s transaction.Sort) {
	sort.Slice(txs, func(i, j int) bool {
		return less(txs[i], txs[j], s)
	})
}

func (s *Store) List(ctx context.Context, p transaction.Predicate, srt transaction.Sort, page transaction.Page) ([]*transaction.Transaction, int, error) {
	matched := s.matching(p)
	sortTransactions(matched, srt)

	total := len(matched)

	offset := page.Offset()
	if offset >= total {
		// Out of range is a valid empty page, not an error.
		return []*transaction.Transaction{}, total, nil
	}

	end := offset + page.Size
	if end > total {
		end = total
	}

	return matched[offset:end], total, nil
}

func (s *Store) ListAll(ctx context.Context, p transaction.Predicate, srt transaction.Sort) ([]*transaction.Transaction, error) {
	matched := s.matching(p)
	sortTransactions(matched, srt)

	return matched, nil
}

func (s *Store) Count(ctx context.Context, p transaction.Predicate) (int, error) {
	return len(s.matching(p)), nil
}

// DistinctValues scans the whole collection, never a filtered subset.
func (s *Store) DistinctValues(ctx context.Context, field transaction.Field) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})

	var out []string

	for _, tx := range s.txs {
		v := tx.CellValue(field)
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	sort.Strings(out)

	return out, nil
}

func (s *Store) GroupByField(ctx context.Context, p transaction.Predicate, field transaction.Field) ([]transaction.FieldAggregate, error) {
	groups := make(map[string]*transaction.FieldAggregate)

	var order []string

	for _, tx := range s.matching(p) {
		v := tx.CellValue(field)

		agg, ok := groups[v]
		if !ok {
			agg = &transaction.FieldAggregate{Value: v}
			groups[v] = agg

			order = append(order, v)
		}

		agg.Total += tx.Amount
		agg.Count++
	}

	sort.Strings(order)

	out := make([]transaction.FieldAggregate, 0, len(order))
	for _, v := range order {
		out = append(out, *groups[v])
	}

	return out, nil
}

func (s *Store) GroupByMonth(ctx context.Context, p transaction.Predicate) ([]transaction.MonthlyAggregate, error) {
	type key struct {
		year     int
		month    int
		category transaction.Category
	}

	groups := make(map[key]float64)

	for _, tx := range s.matching(p) {
		k := key{year: tx.Date.Year(), month: int(tx.Date.Month()), category: tx.Category}
		groups[k] += tx.Amount
	}

	out := make([]transaction.MonthlyAggregate, 0, len(groups))
	for k, total := range groups {
		out = append(out, transaction.MonthlyAggregate{
			Year:     k.year,
			Month:    k.month,
			Category: k.category,
			Total:    total,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}

		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}

		return out[i].Category < out[j].Category
	})

	return out, nil
}
