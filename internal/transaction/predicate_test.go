package transaction_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PUSHKARDEORE/Finalytics/internal/transaction"
)

func sampleTx() *transaction.Transaction {
	return &transaction.Transaction{
		ID:          42,
		Date:        time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
		Amount:      1500.75,
		Category:    transaction.CategoryRevenue,
		Status:      transaction.StatusPaid,
		UserID:      "user_001",
		UserProfile: "https://thispersondoesnotexist.com/",
	}
}

func TestSearch_Match(t *testing.T) {
	type testCase struct {
		name string
		term string
		want bool
	}

	tests := []testCase{
		{name: "IDSubstring", term: "42", want: true},
		{name: "UserIDExact", term: "user_001", want: true},
		{name: "UserIDSubstring", term: "_001", want: true},
		{name: "CategoryCaseInsensitive", term: "revenue", want: true},
		{name: "StatusSubstring", term: "aid", want: true},
		{name: "ProfileSubstring", term: "doesnotexist", want: true},
		{name: "AmountText", term: "1500.75", want: true},
		{name: "AmountPartial", term: "500.7", want: true},
		{name: "DateText", term: "2024-01-15", want: true},
		{name: "DatePartial", term: "2024-01", want: true},
		{name: "NoMatch", term: "zebra", want: false},
		{name: "DateWrongFormat", term: "15/01/2024", want: false},
	}

	tx := sampleTx()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := transaction.Search{Term: tt.term}
			assert.Equal(t, tt.want, cond.Match(tx))
		})
	}
}

// Search is a superset match: any transaction found by an exact user_id
// filter is also found by searching for that user_id.
func TestSearch_SupersetOfExactUserID(t *testing.T) {
	tx := sampleTx()

	exact := transaction.FieldEquals{Field: transaction.FieldUserID, Value: tx.UserID}
	search := transaction.Search{Term: tx.UserID}

	require.True(t, exact.Match(tx))
	assert.True(t, search.Match(tx))
}

func TestPredicate_Conjunction(t *testing.T) {
	tx := sampleTx()

	p := transaction.MatchAll.
		And(transaction.FieldEquals{Field: transaction.FieldCategory, Value: "Revenue"}).
		And(transaction.FieldEquals{Field: transaction.FieldStatus, Value: "Paid"})
	assert.True(t, p.Match(tx))

	p = p.And(transaction.FieldEquals{Field: transaction.FieldUserID, Value: "someone_else"})
	assert.False(t, p.Match(tx), "one failing condition fails the conjunction")
}

func TestPredicate_ZeroValueMatchesEverything(t *testing.T) {
	assert.True(t, transaction.MatchAll.Match(sampleTx()))
	assert.True(t, transaction.Predicate{}.Match(&transaction.Transaction{}))
}

func TestPredicate_WithCategory(t *testing.T) {
	tx := sampleTx()

	assert.True(t, transaction.MatchAll.WithCategory(transaction.CategoryRevenue).Match(tx))
	assert.False(t, transaction.MatchAll.WithCategory(transaction.CategoryExpense).Match(tx))
}

func TestTransaction_Validate(t *testing.T) {
	type testCase struct {
		name    string
		mutate  func(tx *transaction.Transaction)
		wantErr bool
	}

	tests := []testCase{
		{name: "Valid", mutate: func(tx *transaction.Transaction) {}},
		{
			name:    "ZeroDate",
			mutate:  func(tx *transaction.Transaction) { tx.Date = time.Time{} },
			wantErr: true,
		},
		{
			name:    "BadCategory",
			mutate:  func(tx *transaction.Transaction) { tx.Category = "Income" },
			wantErr: true,
		},
		{
			name:    "BadStatus",
			mutate:  func(tx *transaction.Transaction) { tx.Status = "Overdue" },
			wantErr: true,
		},
		{
			name:    "MissingUserID",
			mutate:  func(tx *transaction.Transaction) { tx.UserID = "" },
			wantErr: true,
		},
		{
			name:    "MissingUserProfile",
			mutate:  func(tx *transaction.Transaction) { tx.UserProfile = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := sampleTx()
			tt.mutate(tx)

			err := tx.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, transaction.IsValidationError(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1500.75", transaction.FormatAmount(1500.75))
	assert.Equal(t, "100", transaction.FormatAmount(100))
	assert.Equal(t, "0.5", transaction.FormatAmount(0.5))
}

func TestCellValue(t *testing.T) {
	tx := sampleTx()

	assert.Equal(t, "42", tx.CellValue(transaction.FieldID))
	assert.Equal(t, "2024-01-15", tx.CellValue(transaction.FieldDate))
	assert.Equal(t, "1500.75", tx.CellValue(transaction.FieldAmount))
	assert.Equal(t, "Revenue", tx.CellValue(transaction.FieldCategory))
	assert.Equal(t, "Paid", tx.CellValue(transaction.FieldStatus))
	assert.Equal(t, "user_001", tx.CellValue(transaction.FieldUserID))
}
