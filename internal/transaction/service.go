package transaction

import (
	"context"
	"math"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	// List returns one page of matching transactions plus the total number of
	// matches independent of pagination. An out-of-range page yields an empty
	// slice with the count still correct.
	List(ctx context.Context, p Predicate, sort Sort, page Page) ([]*Transaction, int, error)

	// Count returns the number of transactions matching the predicate.
	Count(ctx context.Context, p Predicate) (int, error)

	// DistinctValues returns the distinct values of category, status or
	// user_id across the entire collection, ignoring any active filter.
	DistinctValues(ctx context.Context, field Field) ([]string, error)

	// GroupByField returns per-value amount sums and counts restricted to the
	// predicate. Group order is unspecified.
	GroupByField(ctx context.Context, p Predicate, field Field) ([]FieldAggregate, error)

	// GroupByMonth returns per-(year, month, category) amount sums restricted
	// to the predicate, sorted ascending by year then month.
	GroupByMonth(ctx context.Context, p Predicate) ([]MonthlyAggregate, error)

	// ListAll returns every matching transaction in the given sort order,
	// without pagination. Used by the CSV exporter.
	ListAll(ctx context.Context, p Predicate, sort Sort) ([]*Transaction, error)

	// ReplaceAll atomically swaps the whole collection for the given records.
	// Bulk load is a one-time initialization step; the store serves queries
	// only after it completes.
	ReplaceAll(ctx context.Context, txs []*Transaction) error
}

// FieldAggregate is the sum and count of transactions sharing one value of a
// grouping field.
type FieldAggregate struct {
	Value string
	Total float64
	Count int
}

// MonthlyAggregate is the amount sum for one (year, month, category) cell.
type MonthlyAggregate struct {
	Year     int
	Month    int
	Category Category
	Total    float64
}

// Service executes queries over the transaction collection.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Pagination describes the window a listing was cut to.
type Pagination struct {
	CurrentPage  int
	TotalPages   int
	TotalItems   int
	ItemsPerPage int
}

// ListResult is one page of transactions with its pagination envelope.
type ListResult struct {
	Transactions []*Transaction
	Pagination   Pagination
}

// List builds the predicate from the raw filter and returns the requested
// page. Malformed filter bounds surface as validation errors.
func (s *Service) List(ctx context.Context, raw RawFilter, sort Sort, page Page) (*ListResult, error) {
	pred, err := BuildPredicate(raw)
	if err != nil {
		return nil, err
	}

	txs, total, err := s.repo.List(ctx, pred, sort, page)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Transactions: txs,
		Pagination: Pagination{
			CurrentPage:  page.Number,
			TotalPages:   int(math.Ceil(float64(total) / float64(page.Size))),
			TotalItems:   total,
			ItemsPerPage: page.Size,
		},
	}, nil
}

// Count returns the number of transactions matching the raw filter.
func (s *Service) Count(ctx context.Context, raw RawFilter) (int, error) {
	pred, err := BuildPredicate(raw)
	if err != nil {
		return 0, err
	}

	return s.repo.Count(ctx, pred)
}

// FilterOptions are the distinct values available for filter selection,
// always computed over the unfiltered collection.
type FilterOptions struct {
	Categories []string
	Statuses   []string
	UserIDs    []string
}

func (s *Service) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	categories, err := s.repo.DistinctValues(ctx, FieldCategory)
	if err != nil {
		return nil, err
	}

	statuses, err := s.repo.DistinctValues(ctx, FieldStatus)
	if err != nil {
		return nil, err
	}

	userIDs, err := s.repo.DistinctValues(ctx, FieldUserID)
	if err != nil {
		return nil, err
	}

	return &FilterOptions{
		Categories: categories,
		Statuses:   statuses,
		UserIDs:    userIDs,
	}, nil
}
