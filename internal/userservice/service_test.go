package userservice

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/pagepkg"
	"github.com/go-petr/pet-finance/pkg/randompkg"
	gomock "github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func randomUser() domain.User {
	return domain.User{
		ID:        int32(randompkg.IntBetween(1, 1000)),
		Name:      randompkg.Name(),
		Email:     randompkg.Email(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestCreate(t *testing.T) {
	user := randomUser()

	testCases := []struct {
		name       string
		userName   string
		email      string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name:     "OK",
			userName: "  " + user.Name + " ",
			email:    user.Email + " ",
			buildStubs: func(repo *MockRepo) {
				arg := domain.CreateUserParams{Name: user.Name, Email: user.Email}
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(arg)).Times(1).Return(user, nil)
			},
		},
		{
			name:     "ErrEmailAlreadyExists",
			userName: user.Name,
			email:    user.Email,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(1).Return(domain.User{}, domain.ErrEmailAlreadyExists)
			},
			wantErr: domain.ErrEmailAlreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			s := New(repo)

			got, err := s.Create(context.Background(), tc.userName, tc.email)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(user, got); diff != "" {
				t.Errorf("s.Create() returned unexpected difference (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList(t *testing.T) {
	users := []domain.User{randomUser(), randomUser()}

	testCases := []struct {
		name       string
		page       int32
		limit      int32
		buildStubs func(repo *MockRepo)
		wantMeta   pagepkg.Meta
		wantErr    error
	}{
		{
			name:  "DefaultLimit",
			page:  0,
			limit: 0,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any(), gomock.Eq(int32(DefaultLimit)), gomock.Eq(int64(0))).
					Times(1).
					Return(users, nil)
				repo.EXPECT().Count(gomock.Any()).Times(1).Return(int64(12), nil)
			},
			wantMeta: pagepkg.Meta{Total: 12, Page: 1, Limit: DefaultLimit, TotalPages: 3},
		},
		{
			name:  "SecondPage",
			page:  2,
			limit: 2,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any(), gomock.Eq(int32(2)), gomock.Eq(int64(2))).
					Times(1).
					Return(users, nil)
				repo.EXPECT().Count(gomock.Any()).Times(1).Return(int64(4), nil)
			},
			wantMeta: pagepkg.Meta{Total: 4, Page: 2, Limit: 2, TotalPages: 2},
		},
		{
			name:  "FarPage",
			page:  math.MaxInt32,
			limit: pagepkg.MaxLimit,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					List(gomock.Any(), gomock.Eq(int32(pagepkg.MaxLimit)), gomock.Eq(int64(math.MaxInt32-1)*pagepkg.MaxLimit)).
					Times(1).
					Return(users, nil)
				repo.EXPECT().Count(gomock.Any()).Times(1).Return(int64(4), nil)
			},
			wantMeta: pagepkg.Meta{Total: 4, Page: math.MaxInt32, Limit: pagepkg.MaxLimit, TotalPages: 1},
		},
		{
			name:  "ListError",
			page:  1,
			limit: 5,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
				repo.EXPECT().Count(gomock.Any()).Times(0)
			},
			wantErr: errorspkg.ErrInternal,
		},
		{
			name:  "CountError",
			page:  1,
			limit: 5,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).Return(users, nil)
				repo.EXPECT().Count(gomock.Any()).Times(1).Return(int64(0), errorspkg.ErrInternal)
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

			got, meta, err := New(repo).List(context.Background(), tc.page, tc.limit)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.Equal(t, users, got)

			if diff := cmp.Diff(tc.wantMeta, meta); diff != "" {
				t.Errorf("s.List() meta mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	user := randomUser()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	arg := domain.UpdateUserParams{ID: user.ID, Name: user.Name, Email: user.Email}
	repo.EXPECT().Update(gomock.Any(), gomock.Eq(arg)).Times(1).Return(user, nil)

	got, err := New(repo).Update(context.Background(), user.ID, user.Name+" ", " "+user.Email)
	require.NoError(t, err)
	require.Equal(t, user, got)
}

func TestGetAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().Get(gomock.Any(), gomock.Eq(int32(7))).Times(1).Return(domain.User{}, domain.ErrUserNotFound)
	repo.EXPECT().Delete(gomock.Any(), gomock.Eq(int32(7))).Times(1).Return(domain.ErrUserNotFound)

	s := New(repo)

	_, err := s.Get(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	err = s.Delete(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
