package categoryservice

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/pagepkg"
	"github.com/go-petr/pet-finance/pkg/randompkg"
	gomock "github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func randomCategory() domain.Category {
	return domain.Category{
		ID:        randompkg.IntBetween(1, 1000),
		Name:      randompkg.Name(),
		Type:      randompkg.CategoryType(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestCreate(t *testing.T) {
	category := randomCategory()

	testCases := []struct {
		name         string
		categoryType string
		buildStubs   func(repo *MockRepo)
		wantErr      error
	}{
		{
			name:         "OK",
			categoryType: category.Type,
			buildStubs: func(repo *MockRepo) {
				arg := domain.CreateCategoryParams{Name: category.Name, Type: category.Type}
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(arg)).Times(1).Return(category, nil)
			},
		},
		{
			name:         "LowercaseType",
			categoryType: "income",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidCategoryType,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			got, err := New(repo).Create(context.Background(), category.Name+"\t", tc.categoryType)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(category, got); diff != "" {
				t.Errorf("s.Create() returned unexpected difference (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	category := randomCategory()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	arg := domain.UpdateCategoryParams{ID: category.ID, Name: category.Name, Type: domain.CategoryExpense}
	repo.EXPECT().Update(gomock.Any(), gomock.Eq(arg)).Times(1).Return(category, nil)

	s := New(repo)

	_, err := s.Update(context.Background(), category.ID, category.Name, domain.CategoryExpense)
	require.NoError(t, err)

	_, err = s.Update(context.Background(), category.ID, category.Name, "SAVINGS")
	require.ErrorIs(t, err, domain.ErrInvalidCategoryType)
}

func TestList(t *testing.T) {
	categories := []domain.Category{randomCategory()}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().List(gomock.Any(), gomock.Eq(int32(pagepkg.MaxLimit)), gomock.Eq(int64(0))).Times(1).Return(categories, nil)
	repo.EXPECT().Count(gomock.Any()).Times(1).Return(int64(1), nil)

	got, meta, err := New(repo).List(context.Background(), 1, 1000)
	require.NoError(t, err)
	require.Equal(t, categories, got)
	require.Equal(t, pagepkg.Meta{Total: 1, Page: 1, Limit: pagepkg.MaxLimit, TotalPages: 1}, meta)
}

func TestDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Delete(gomock.Any(), gomock.Eq(int32(4))).Times(1).Return(domain.ErrCategoryInUse)

	err := New(repo).Delete(context.Background(), 4)
	require.ErrorIs(t, err, domain.ErrCategoryInUse)
}
