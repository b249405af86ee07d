package transaction

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Category classifies a transaction as money in or money out.
// Amounts are positive for both; the category carries the meaning.
type Category string

const (
	CategoryRevenue Category = "Revenue"
	CategoryExpense Category = "Expense"
)

// Status represents the settlement state of a transaction.
type Status string

const (
	StatusPaid    Status = "Paid"
	StatusPending Status = "Pending"
)

// Transaction represents a financial transaction record.
type Transaction struct {
	ID          int
	Date        time.Time
	Amount      float64
	Category    Category
	Status      Status
	UserID      string
	UserProfile string
}

// Field identifies a transaction attribute for sorting, grouping,
// distinct-value queries and export column selection.
type Field string

const (
	FieldID          Field = "id"
	FieldDate        Field = "date"
	FieldAmount      Field = "amount"
	FieldCategory    Field = "category"
	FieldStatus      Field = "status"
	FieldUserID      Field = "user_id"
	FieldUserProfile Field = "user_profile"
)

// Fields lists every transaction field, in the order used for export defaults.
var Fields = []Field{
	FieldID, FieldDate, FieldAmount, FieldCategory,
	FieldStatus, FieldUserID, FieldUserProfile,
}

// ValidField reports whether name is a known transaction field.
func ValidField(name string) bool {
	for _, f := range Fields {
		if string(f) == name {
			return true
		}
	}

	return false
}

var ErrNotFound = errors.New("transaction not found")

// ValidationError reports malformed caller input: bad date or amount bounds,
// invalid export columns, or a seed record violating the schema.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}

// Validate checks the record against the schema. Enum violations and missing
// required fields fail here, at ingestion, never at query time.
func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		return NewValidationError("transaction %d: date is required", t.ID)
	}

	if t.Category != CategoryRevenue && t.Category != CategoryExpense {
		return NewValidationError("transaction %d: invalid category %q", t.ID, t.Category)
	}

	if t.Status != StatusPaid && t.Status != StatusPending {
		return NewValidationError("transaction %d: invalid status %q", t.ID, t.Status)
	}

	if t.UserID == "" {
		return NewValidationError("transaction %d: user_id is required", t.ID)
	}

	if t.UserProfile == "" {
		return NewValidationError("transaction %d: user_profile is required", t.ID)
	}

	return nil
}

// FormatAmount renders an amount in the fixed decimal text form used for
// search matching and CSV cells. Locale-independent, plain decimal notation,
// shortest representation that round-trips.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDate renders a date in the fixed YYYY-MM-DD form used for search
// matching and CSV cells.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// CellValue renders the named field of t as text, in the form used for CSV
// export. Dates render as YYYY-MM-DD, everything else in its natural text form.
func (t *Transaction) CellValue(f Field) string {
	switch f {
	case FieldID:
		return strconv.Itoa(t.ID)
	case FieldDate:
		return FormatDate(t.Date)
	case FieldAmount:
		return FormatAmount(t.Amount)
	case FieldCategory:
		return string(t.Category)
	case FieldStatus:
		return string(t.Status)
	case FieldUserID:
		return t.UserID
	case FieldUserProfile:
		return t.UserProfile
	}

	return ""
}
