// Package stats computes dashboard aggregates over the transaction
// collection: revenue/expense summary, category and status breakdowns, and
// monthly trend series.
package stats

import (
	"context"
	"fmt"

	"github.com/PUSHKARDEORE/Finalytics/internal/transaction"
)

type Service struct {
	repo transaction.Repository
}

func NewService(repo transaction.Repository) *Service {
	return &Service{repo: repo}
}

// Summary is the headline dashboard figures for the active filter set.
type Summary struct {
	TotalRevenue      float64
	TotalExpenses     float64
	NetProfit         float64
	TotalTransactions int
}

// Stats is the full dashboard payload. An empty matching set yields zero
// sums and empty slices, never an error.
type Stats struct {
	Summary           Summary
	CategoryBreakdown []transaction.FieldAggregate
	StatusBreakdown   []transaction.FieldAggregate
	MonthlyTrends     []transaction.MonthlyAggregate
}

// Compute aggregates every transaction matching the raw filter.
func (s *Service) Compute(ctx context.Context, raw transaction.RawFilter) (*Stats, error) {
	pred, err := transaction.BuildPredicate(raw)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.GroupByField(ctx, pred, transaction.FieldCategory)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}

	statuses, err := s.repo.GroupByField(ctx, pred, transaction.FieldStatus)
	if err != nil {
		return nil, fmt.Errorf("status breakdown: %w", err)
	}

	trends, err := s.repo.GroupByMonth(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("monthly trends: %w", err)
	}

	var summary Summary

	for _, agg := range categories {
		switch transaction.Category(agg.Value) {
		case transaction.CategoryRevenue:
			summary.TotalRevenue = agg.Total
		case transaction.CategoryExpense:
			summary.TotalExpenses = agg.Total
		}

		// Every record has exactly one of the two categories, so the
		// breakdown counts add up to the total match count.
		summary.TotalTransactions += agg.Count
	}

	summary.NetProfit = summary.TotalRevenue - summary.TotalExpenses

	if categories == nil {
		categories = []transaction.FieldAggregate{}
	}

	if statuses == nil {
		statuses = []transaction.FieldAggregate{}
	}

	if trends == nil {
		trends = []transaction.MonthlyAggregate{}
	}

	return &Stats{
		Summary:           summary,
		CategoryBreakdown: categories,
		StatusBreakdown:   statuses,
		MonthlyTrends:     trends,
	}, nil
}
