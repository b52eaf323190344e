package transactionservice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/pagepkg"
	"github.com/go-petr/pet-finance/pkg/randompkg"
	gomock "github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type eqParamsMatcher struct {
	want any
}

func (e eqParamsMatcher) Matches(x interface{}) bool {
	return cmp.Equal(e.want, x)
}

func (e eqParamsMatcher) String() string {
	return fmt.Sprintf("matches arg %+v", e.want)
}

func randomResult() domain.TransactionTxResult {
	account := domain.Account{
		ID:        randompkg.IntBetween(1, 1000),
		UserID:    randompkg.IntBetween(1, 1000),
		Name:      randompkg.Name(),
		Balance:   randompkg.MoneyAmountBetween(0, 1000),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	return domain.TransactionTxResult{
		Transaction: domain.Transaction{
			ID:          int64(randompkg.IntBetween(1, 1000)),
			AccountID:   account.ID,
			CategoryID:  randompkg.IntBetween(1, 1000),
			Amount:      randompkg.MoneyAmountBetween(-500, 500),
			Description: randompkg.String(10),
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
		},
		Account: account,
	}
}

func TestCreate(t *testing.T) {
	result := randomResult()
	txn := result.Transaction

	testCases := []struct {
		name       string
		amount     string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name:   "OK",
			amount: txn.Amount.String(),
			buildStubs: func(repo *MockRepo) {
				arg := domain.CreateTransactionParams{
					AccountID:   txn.AccountID,
					CategoryID:  txn.CategoryID,
					Amount:      txn.Amount,
					Description: txn.Description,
				}
				repo.EXPECT().Create(gomock.Any(), eqParamsMatcher{arg}).Times(1).Return(result, nil)
			},
		},
		{
			name:   "ZeroAmount",
			amount: "0",
			buildStubs: func(repo *MockRepo) {
				arg := domain.CreateTransactionParams{
					AccountID:   txn.AccountID,
					CategoryID:  txn.CategoryID,
					Amount:      decimal.Zero,
					Description: txn.Description,
				}
				repo.EXPECT().Create(gomock.Any(), eqParamsMatcher{arg}).Times(1).Return(result, nil)
			},
		},
		{
			name:   "NotANumber",
			amount: "12abc",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:   "EmptyAmount",
			amount: "",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:   "ErrAccountNotFound",
			amount: "10",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionTxResult{}, domain.ErrAccountNotFound)
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			got, err := New(repo).Create(context.Background(), txn.AccountID, txn.CategoryID, tc.amount, txn.Description)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, got)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(result, got); diff != "" {
				t.Errorf("s.Create() returned unexpected difference (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	result := randomResult()
	id := result.Transaction.ID

	amount := "-200.5"
	parsed := decimal.RequireFromString(amount)
	invalid := "--1"
	categoryID := int32(9)
	empty := ""

	testCases := []struct {
		name        string
		amount      *string
		categoryID  *int32
		description *string
		buildStubs  func(repo *MockRepo)
		wantErr     error
	}{
		{
			name:   "AmountOnly",
			amount: &amount,
			buildStubs: func(repo *MockRepo) {
				arg := domain.UpdateTransactionParams{ID: id, Amount: &parsed}
				repo.EXPECT().Update(gomock.Any(), eqParamsMatcher{arg}).Times(1).Return(result, nil)
			},
		},
		{
			name:        "CategoryAndEmptyDescription",
			categoryID:  &categoryID,
			description: &empty,
			buildStubs: func(repo *MockRepo) {
				arg := domain.UpdateTransactionParams{ID: id, CategoryID: &categoryID, Description: &empty}
				repo.EXPECT().Update(gomock.Any(), eqParamsMatcher{arg}).Times(1).Return(result, nil)
			},
		},
		{
			name:       "InvalidAmount",
			amount:     &invalid,
			categoryID: &categoryID,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:   "ErrTransactionNotFound",
			amount: &amount,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Update(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransactionTxResult{}, domain.ErrTransactionNotFound)
			},
			wantErr: domain.ErrTransactionNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			got, err := New(repo).Update(context.Background(), id, tc.amount, tc.categoryID, tc.description)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, id, got.Transaction.ID)
		})
	}
}

func TestList(t *testing.T) {
	result := randomResult()

	testCases := []struct {
		name       string
		accountID  int32
		page       int32
		limit      int32
		buildStubs func(repo *MockRepo)
		wantMeta   pagepkg.Meta
		wantErr    error
	}{
		{
			name:      "ByAccount",
			accountID: result.Account.ID,
			page:      2,
			limit:     10,
			buildStubs: func(repo *MockRepo) {
				arg := domain.ListTransactionsParams{AccountID: result.Account.ID, Limit: 10, Offset: 10}
				repo.EXPECT().List(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return([]domain.Transaction{result.Transaction}, nil)
				repo.EXPECT().Count(gomock.Any(), gomock.Eq(result.Account.ID)).Times(1).Return(int64(11), nil)
			},
			wantMeta: pagepkg.Meta{Total: 11, Page: 2, Limit: 10, TotalPages: 2},
		},
		{
			name: "AllWithDefaults",
			buildStubs: func(repo *MockRepo) {
				arg := domain.ListTransactionsParams{Limit: DefaultLimit}
				repo.EXPECT().List(gomock.Any(), gomock.Eq(arg)).Times(1).Return(nil, nil)
				repo.EXPECT().Count(gomock.Any(), gomock.Eq(int32(0))).Times(1).Return(int64(0), nil)
			},
			wantMeta: pagepkg.Meta{Total: 0, Page: 1, Limit: DefaultLimit, TotalPages: 0},
		},
		{
			name: "CountError",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any(), gomock.Any()).Times(1).Return(nil, nil)
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Times(1).Return(int64(0), errorspkg.ErrInternal)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			_, meta, err := New(repo).List(context.Background(), tc.accountID, tc.page, tc.limit)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tc.wantMeta, meta); diff != "" {
				t.Errorf("s.List() meta mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetAndDelete(t *testing.T) {
	result := randomResult()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Get(gomock.Any(), gomock.Eq(result.Transaction.ID)).Times(1).Return(result.Transaction, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Eq(result.Transaction.ID)).Times(1).Return(result, nil)

	s := New(repo)

	got, err := s.Get(context.Background(), result.Transaction.ID)
	require.NoError(t, err)
	require.Equal(t, result.Transaction.ID, got.ID)

	deleted, err := s.Delete(context.Background(), result.Transaction.ID)
	require.NoError(t, err)
	require.Equal(t, result.Account.ID, deleted.Account.ID)
}
