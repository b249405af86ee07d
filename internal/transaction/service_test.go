package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/PUSHKARDEORE/Finalytics/internal/transaction"
)

func TestService_List(t *testing.T) {
	type args struct {
		raw  transaction.RawFilter
		sort transaction.Sort
		page transaction.Page
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(m *transaction.MockRepository)
		wantLen    int
		wantPages  int
		wantTotal  int
		wantErr    bool
		wantVerErr bool
	}

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "Success",
			args: args{
				raw:  transaction.RawFilter{},
				sort: transaction.DefaultSort,
				page: transaction.Page{Number: 1, Size: 10},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					List(gomock.Any(), gomock.Any(), transaction.DefaultSort, transaction.Page{Number: 1, Size: 10}).
					Return([]*transaction.Transaction{
						{ID: 1, Date: date},
						{ID: 2, Date: date},
					}, 25, nil)
			},
			wantLen:   2,
			wantPages: 3,
			wantTotal: 25,
		},
		{
			name: "MalformedFilterNeverReachesStore",
			args: args{
				raw:  transaction.RawFilter{StartDate: "garbage"},
				sort: transaction.DefaultSort,
				page: transaction.Page{Number: 1, Size: 10},
			},
			wantErr:    true,
			wantVerErr: true,
		},
		{
			name: "RepoError",
			args: args{
				raw:  transaction.RawFilter{},
				sort: transaction.DefaultSort,
				page: transaction.Page{Number: 1, Size: 10},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, 0, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.List(context.Background(), tt.args.raw, tt.args.sort, tt.args.page)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantVerErr, transaction.IsValidationError(err))

				return
			}

			require.NoError(t, err)
			assert.Len(t, got.Transactions, tt.wantLen)
			assert.Equal(t, tt.wantPages, got.Pagination.TotalPages)
			assert.Equal(t, tt.wantTotal, got.Pagination.TotalItems)
			assert.Equal(t, tt.args.page.Number, got.Pagination.CurrentPage)
			assert.Equal(t, tt.args.page.Size, got.Pagination.ItemsPerPage)
		})
	}
}

func TestService_List_TotalPagesRoundsUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*transaction.Transaction{}, 1, nil)

	svc := transaction.NewService(repo)

	got, err := svc.List(context.Background(), transaction.RawFilter{},
		transaction.DefaultSort, transaction.Page{Number: 1, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Pagination.TotalPages)
}

func TestService_Count(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(7, nil)

	svc := transaction.NewService(repo)

	got, err := svc.Count(context.Background(), transaction.RawFilter{Category: "Expense"})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestService_FilterOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().DistinctValues(gomock.Any(), transaction.FieldCategory).Return([]string{"Expense", "Revenue"}, nil)
	repo.EXPECT().DistinctValues(gomock.Any(), transaction.FieldStatus).Return([]string{"Paid", "Pending"}, nil)
	repo.EXPECT().DistinctValues(gomock.Any(), transaction.FieldUserID).Return([]string{"user_001", "user_002"}, nil)

	svc := transaction.NewService(repo)

	got, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Expense", "Revenue"}, got.Categories)
	assert.Equal(t, []string{"Paid", "Pending"}, got.Statuses)
	assert.Equal(t, []string{"user_001", "user_002"}, got.UserIDs)
}

func TestService_FilterOptions_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().DistinctValues(gomock.Any(), transaction.FieldCategory).Return(nil, errors.New("db error"))

	svc := transaction.NewService(repo)

	_, err := svc.FilterOptions(context.Background())
	assert.Error(t, err)
}
