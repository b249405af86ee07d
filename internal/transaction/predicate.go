package transaction

import (
	"strconv"
	"strings"
	"time"
)

// Condition is one clause of a predicate. Implementations form a closed set:
// FieldEquals, DateRange, AmountRange and Search. Stores either evaluate
// conditions directly (memory) or translate them to SQL (postgres), so every
// condition both matches in-process and is inspectable as data.
type Condition interface {
	// Match reports whether the transaction satisfies the condition.
	Match(t *Transaction) bool
}

// FieldEquals is an exact match on category, status or user_id.
type FieldEquals struct {
	Field Field
	Value string
}

func (c FieldEquals) Match(t *Transaction) bool {
	return t.CellValue(c.Field) == c.Value
}

// DateRange bounds the transaction date inclusively. Either side may be nil.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (c DateRange) Match(t *Transaction) bool {
	if c.From != nil && t.Date.Before(*c.From) {
		return false
	}

	if c.To != nil && t.Date.After(*c.To) {
		return false
	}

	return true
}

// AmountRange bounds the transaction amount inclusively. Either side may be nil.
type AmountRange struct {
	Min *float64
	Max *float64
}

func (c AmountRange) Match(t *Transaction) bool {
	if c.Min != nil && t.Amount < *c.Min {
		return false
	}

	if c.Max != nil && t.Amount > *c.Max {
		return false
	}

	return true
}

// Search is a case-insensitive substring probe tested against the textual
// form of id, user_id, category, status, user_profile, amount and date.
// A transaction matches if the term is a substring of any of them.
type Search struct {
	// Term is the trimmed, lowercased search term.
	Term string
}

func (c Search) Match(t *Transaction) bool {
	for _, probe := range []string{
		strconv.Itoa(t.ID),
		t.UserID,
		string(t.Category),
		string(t.Status),
		t.UserProfile,
		FormatAmount(t.Amount),
		FormatDate(t.Date),
	} {
		if strings.Contains(strings.ToLower(probe), c.Term) {
			return true
		}
	}

	return false
}

// Predicate is the conjunction of its conditions. The zero value matches
// every transaction.
type Predicate struct {
	Conditions []Condition
}

// MatchAll is the predicate with no conditions.
var MatchAll = Predicate{}

func (p Predicate) Match(t *Transaction) bool {
	for _, c := range p.Conditions {
		if !c.Match(t) {
			return false
		}
	}

	return true
}

// And returns a copy of p with an extra condition appended.
func (p Predicate) And(c Condition) Predicate {
	conds := make([]Condition, 0, len(p.Conditions)+1)
	conds = append(conds, p.Conditions...)
	conds = append(conds, c)

	return Predicate{Conditions: conds}
}

// WithCategory narrows p to a single category. Used by the statistics
// aggregator for the revenue/expense summary splits.
func (p Predicate) WithCategory(c Category) Predicate {
	return p.And(FieldEquals{Field: FieldCategory, Value: string(c)})
}
