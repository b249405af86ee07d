// Package postgres implements the transaction repository over Postgres.
// Predicates translate to WHERE clauses so filtering, sorting, pagination
// and grouping all run inside the database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/PUSHKARDEORE/Finalytics/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `id, date, amount, category, status, user_id, user_profile`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var category, status string

	if err := s.Scan(&tx.ID, &tx.Date, &tx.Amount, &category, &status, &tx.UserID, &tx.UserProfile); err != nil {
		return nil, err
	}

	tx.Category = transaction.Category(category)
	tx.Status = transaction.Status(status)

	return &tx, nil
}

// searchProbes are the textual forms the search OR-group tests, matching the
// fixed forms used by the in-memory evaluator.
var searchProbes = []string{
	"id::text",
	"user_id",
	"category",
	"status",
	"user_profile",
	"trim_scale(amount::numeric)::text",
	"to_char(date, 'YYYY-MM-DD')",
}

func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// whereClause renders the predicate as SQL. Conditions AND together; the
// search condition expands into an OR across its probes.
func whereClause(p transaction.Predicate) (string, []any) {
	var clauses []string

	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, c := range p.Conditions {
		switch c := c.(type) {
		case transaction.FieldEquals:
			clauses = append(clauses, fmt.Sprintf("%s = %s", c.Field, arg(c.Value)))
		case transaction.DateRange:
			if c.From != nil {
				clauses = append(clauses, fmt.Sprintf("date >= %s", arg(*c.From)))
			}

			if c.To != nil {
				clauses = append(clauses, fmt.Sprintf("date <= %s", arg(*c.To)))
			}
		case transaction.AmountRange:
			if c.Min != nil {
				clauses = append(clauses, fmt.Sprintf("amount >= %s", arg(*c.Min)))
			}

			if c.Max != nil {
				clauses = append(clauses, fmt.Sprintf("amount <= %s", arg(*c.Max)))
			}
		case transaction.Search:
			ph := arg("%" + escapeLike(c.Term) + "%")

			ors := make([]string, len(searchProbes))
			for i, probe := range searchProbes {
				ors[i] = fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, probe, ph)
			}

			clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
		}
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

// orderClause appends the id tie-break so pages are deterministic even when
// many records share the sort key.
func orderClause(s transaction.Sort) string {
	dir := "ASC"
	if s.Order == transaction.SortDesc {
		dir = "DESC"
	}

	if s.Field == transaction.FieldID {
		return fmt.Sprintf(" ORDER BY id %s", dir)
	}

	return fmt.Sprintf(" ORDER BY %s %s, id ASC", s.Field, dir)
}

func (s *Store) List(ctx context.Context, p transaction.Predicate, srt transaction.Sort, page transaction.Page) ([]*transaction.Transaction, int, error) {
	where, args := whereClause(p)

	total, err := s.count(ctx, where, args)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + selectColumns + ` FROM transactions` + where + orderClause(srt)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	txs, err := s.queryTransactions(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func (s *Store) ListAll(ctx context.Context, p transaction.Predicate, srt transaction.Sort) ([]*transaction.Transaction, error) {
	where, args := whereClause(p)
	query := `SELECT ` + selectColumns + ` FROM transactions` + where + orderClause(srt)

	return s.queryTransactions(ctx, query, args)
}

func (s *Store) queryTransactions(ctx context.Context, query string, args []any) ([]*transaction.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	txs := []*transaction.Transaction{}

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) Count(ctx context.Context, p transaction.Predicate) (int, error) {
	where, args := whereClause(p)

	return s.count(ctx, where, args)
}

func (s *Store) count(ctx context.Context, where string, args []any) (int, error) {
	var total int

	query := `SELECT COUNT(*) FROM transactions` + where
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}

	return total, nil
}

func (s *Store) DistinctValues(ctx context.Context, field transaction.Field) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM transactions ORDER BY %s ASC`, field, field)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing distinct %s: %w", field, err)
	}
	defer rows.Close()

	var out []string

	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning distinct %s: %w", field, err)
		}

		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating distinct %s: %w", field, err)
	}

	return out, nil
}

func (s *Store) GroupByField(ctx context.Context, p transaction.Predicate, field transaction.Field) ([]transaction.FieldAggregate, error) {
	where, args := whereClause(p)
	query := fmt.Sprintf(
		`SELECT %s, COALESCE(SUM(amount), 0), COUNT(*) FROM transactions%s GROUP BY %s ORDER BY %s ASC`,
		field, where, field, field,
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("grouping by %s: %w", field, err)
	}
	defer rows.Close()

	var out []transaction.FieldAggregate

	for rows.Next() {
		var agg transaction.FieldAggregate
		if err := rows.Scan(&agg.Value, &agg.Total, &agg.Count); err != nil {
			return nil, fmt.Errorf("scanning %s group: %w", field, err)
		}

		out = append(out, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s groups: %w", field, err)
	}

	return out, nil
}

func (s *Store) GroupByMonth(ctx context.Context, p transaction.Predicate) ([]transaction.MonthlyAggregate, error) {
	where, args := whereClause(p)
	query := `SELECT EXTRACT(YEAR FROM date)::int, EXTRACT(MONTH FROM date)::int, category, COALESCE(SUM(amount), 0)
		FROM transactions` + where + `
		GROUP BY 1, 2, 3
		ORDER BY 1 ASC, 2 ASC, 3 ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("grouping by month: %w", err)
	}
	defer rows.Close()

	var out []transaction.MonthlyAggregate

	for rows.Next() {
		var agg transaction.MonthlyAggregate

		var category string

		if err := rows.Scan(&agg.Year, &agg.Month, &category, &agg.Total); err != nil {
			return nil, fmt.Errorf("scanning monthly group: %w", err)
		}

		agg.Category = transaction.Category(category)
		out = append(out, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monthly groups: %w", err)
	}

	return out, nil
}

// ReplaceAll clears the table and inserts the given records in one database
// transaction, so readers never observe a half-loaded collection.
func (s *Store) ReplaceAll(ctx context.Context, txs []*transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed tx: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clearing transactions: %w", err)
	}

	insert := `INSERT INTO transactions (` + selectColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, tx := range txs {
		_, err := dbTx.ExecContext(ctx, insert,
			tx.ID, tx.Date, tx.Amount, tx.Category, tx.Status, tx.UserID, tx.UserProfile,
		)
		if err != nil {
			return fmt.Errorf("inserting transaction %d: %w", tx.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing seed tx: %w", err)
	}

	return nil
}
