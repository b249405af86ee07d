package transaction

import (
	"strconv"
	"strings"
	"time"
)

// RawFilter carries the filter parameters exactly as supplied by a caller,
// before any validation. Empty strings mean "not supplied".
type RawFilter struct {
	Category  string
	Status    string
	UserID    string
	Search    string
	StartDate string
	EndDate   string
	MinAmount string
	MaxAmount string
}

// BuildPredicate normalizes a raw filter into a predicate: the AND of every
// supplied exact and range filter plus the search OR-group when present.
// Supplying nothing yields the match-everything predicate. The only failure
// mode is a malformed date or amount bound, which is a validation error
// rather than a silent default.
func BuildPredicate(raw RawFilter) (Predicate, error) {
	p := Predicate{}

	if raw.Category != "" {
		p = p.And(FieldEquals{Field: FieldCategory, Value: raw.Category})
	}

	if raw.Status != "" {
		p = p.And(FieldEquals{Field: FieldStatus, Value: raw.Status})
	}

	if raw.UserID != "" {
		p = p.And(FieldEquals{Field: FieldUserID, Value: raw.UserID})
	}

	if raw.StartDate != "" || raw.EndDate != "" {
		var dr DateRange

		if raw.StartDate != "" {
			t, _, err := parseDate(raw.StartDate)
			if err != nil {
				return Predicate{}, NewValidationError("invalid startDate %q: expected YYYY-MM-DD", raw.StartDate)
			}

			dr.From = &t
		}

		if raw.EndDate != "" {
			t, bare, err := parseDate(raw.EndDate)
			if err != nil {
				return Predicate{}, NewValidationError("invalid endDate %q: expected YYYY-MM-DD", raw.EndDate)
			}

			// Inclusive upper bound: a bare date covers the whole day.
			if bare {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}

			dr.To = &t
		}

		p = p.And(dr)
	}

	if raw.MinAmount != "" || raw.MaxAmount != "" {
		var ar AmountRange

		if raw.MinAmount != "" {
			v, err := strconv.ParseFloat(raw.MinAmount, 64)
			if err != nil {
				return Predicate{}, NewValidationError("invalid minAmount %q", raw.MinAmount)
			}

			ar.Min = &v
		}

		if raw.MaxAmount != "" {
			v, err := strconv.ParseFloat(raw.MaxAmount, 64)
			if err != nil {
				return Predicate{}, NewValidationError("invalid maxAmount %q", raw.MaxAmount)
			}

			ar.Max = &v
		}

		p = p.And(ar)
	}

	// A whitespace-only term is the same as omitting search entirely.
	if term := strings.TrimSpace(raw.Search); term != "" {
		p = p.And(Search{Term: strings.ToLower(term)})
	}

	return p, nil
}

// parseDate accepts a bare YYYY-MM-DD date or a full RFC 3339 timestamp.
// The second return reports the bare-date case.
func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true, nil
	}

	t, err := time.Parse(time.RFC3339, s)

	return t, false, err
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Sort names the field and direction for listing. The zero value is
// normalized to date descending.
type Sort struct {
	Field Field
	Order SortOrder
}

// DefaultSort is date descending, the listing and export order.
var DefaultSort = Sort{Field: FieldDate, Order: SortDesc}

// NormalizeSort resolves caller-supplied sort parameters. Unknown field names
// fall back to the date default, mirroring how unknown filter fields are
// ignored rather than rejected. Any order other than "asc" sorts descending.
func NormalizeSort(sortBy, sortOrder string) Sort {
	s := DefaultSort

	if ValidField(sortBy) {
		s.Field = Field(sortBy)
	}

	if sortOrder == string(SortAsc) {
		s.Order = SortAsc
	}

	return s
}

// Page is a 1-indexed pagination window.
type Page struct {
	Number int
	Size   int
}

// NormalizePage clamps page parameters to their defaults: page 1, size 10.
func NormalizePage(number, size int) Page {
	if number < 1 {
		number = 1
	}

	if size < 1 {
		size = 10
	}

	return Page{Number: number, Size: size}
}

// Offset returns the number of records preceding the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}
