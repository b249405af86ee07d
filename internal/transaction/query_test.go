package transaction_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PUSHKARDEORE/Finalytics/internal/transaction"
)

func TestBuildPredicate(t *testing.T) {
	type testCase struct {
		name      string
		raw       transaction.RawFilter
		wantConds int
		wantErr   bool
	}

	tests := []testCase{
		{
			name:      "Empty",
			raw:       transaction.RawFilter{},
			wantConds: 0,
		},
		{
			name: "AllFilters",
			raw: transaction.RawFilter{
				Category:  "Revenue",
				Status:    "Paid",
				UserID:    "user_001",
				Search:    "office",
				StartDate: "2024-01-01",
				EndDate:   "2024-12-31",
				MinAmount: "100",
				MaxAmount: "2000",
			},
			wantConds: 6, // three equals, one date range, one amount range, one search
		},
		{
			name:      "WhitespaceSearchIsOmitted",
			raw:       transaction.RawFilter{Search: "   \t  "},
			wantConds: 0,
		},
		{
			name:      "StartDateAlone",
			raw:       transaction.RawFilter{StartDate: "2024-03-01"},
			wantConds: 1,
		},
		{
			name:      "MaxAmountAlone",
			raw:       transaction.RawFilter{MaxAmount: "500.50"},
			wantConds: 1,
		},
		{
			name:    "MalformedStartDate",
			raw:     transaction.RawFilter{StartDate: "01/03/2024"},
			wantErr: true,
		},
		{
			name:    "MalformedEndDate",
			raw:     transaction.RawFilter{EndDate: "not-a-date"},
			wantErr: true,
		},
		{
			name:    "MalformedMinAmount",
			raw:     transaction.RawFilter{MinAmount: "ten"},
			wantErr: true,
		},
		{
			name:    "MalformedMaxAmount",
			raw:     transaction.RawFilter{MaxAmount: "12,50"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := transaction.BuildPredicate(tt.raw)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, transaction.IsValidationError(err))

				return
			}

			require.NoError(t, err)
			assert.Len(t, pred.Conditions, tt.wantConds)
		})
	}
}

func TestBuildPredicate_DateBoundsInclusive(t *testing.T) {
	pred, err := transaction.BuildPredicate(transaction.RawFilter{
		StartDate: "2024-02-10",
		EndDate:   "2024-02-10",
	})
	require.NoError(t, err)

	onDay := &transaction.Transaction{
		ID: 1, Date: time.Date(2024, 2, 10, 15, 30, 0, 0, time.UTC),
		Amount: 50, Category: transaction.CategoryExpense, Status: transaction.StatusPending,
		UserID: "u2", UserProfile: "p",
	}
	dayBefore := *onDay
	dayBefore.Date = time.Date(2024, 2, 9, 23, 59, 59, 0, time.UTC)
	dayAfter := *onDay
	dayAfter.Date = time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, pred.Match(onDay))
	assert.False(t, pred.Match(&dayBefore))
	assert.False(t, pred.Match(&dayAfter))
}

func TestBuildPredicate_AmountBoundsInclusive(t *testing.T) {
	pred, err := transaction.BuildPredicate(transaction.RawFilter{
		MinAmount: "100",
		MaxAmount: "200",
	})
	require.NoError(t, err)

	tx := func(amount float64) *transaction.Transaction {
		return &transaction.Transaction{ID: 1, Date: time.Now(), Amount: amount}
	}

	assert.True(t, pred.Match(tx(100)))
	assert.True(t, pred.Match(tx(200)))
	assert.True(t, pred.Match(tx(150.75)))
	assert.False(t, pred.Match(tx(99.99)))
	assert.False(t, pred.Match(tx(200.01)))
}

func TestNormalizeSort(t *testing.T) {
	type testCase struct {
		name      string
		sortBy    string
		sortOrder string
		want      transaction.Sort
	}

	tests := []testCase{
		{
			name: "DefaultsToDateDesc",
			want: transaction.Sort{Field: transaction.FieldDate, Order: transaction.SortDesc},
		},
		{
			name:      "AmountAsc",
			sortBy:    "amount",
			sortOrder: "asc",
			want:      transaction.Sort{Field: transaction.FieldAmount, Order: transaction.SortAsc},
		},
		{
			name:      "UnknownFieldFallsBackToDate",
			sortBy:    "nonsense",
			sortOrder: "asc",
			want:      transaction.Sort{Field: transaction.FieldDate, Order: transaction.SortAsc},
		},
		{
			name:      "UnknownOrderFallsBackToDesc",
			sortBy:    "id",
			sortOrder: "sideways",
			want:      transaction.Sort{Field: transaction.FieldID, Order: transaction.SortDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transaction.NormalizeSort(tt.sortBy, tt.sortOrder))
		})
	}
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, transaction.Page{Number: 1, Size: 10}, transaction.NormalizePage(0, 0))
	assert.Equal(t, transaction.Page{Number: 1, Size: 10}, transaction.NormalizePage(-3, -1), "negatives clamp to defaults")
	assert.Equal(t, transaction.Page{Number: 4, Size: 25}, transaction.NormalizePage(4, 25))
	assert.Equal(t, 75, transaction.Page{Number: 4, Size: 25}.Offset())
}
