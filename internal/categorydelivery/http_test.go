package categorydelivery

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/pagepkg"
	"github.com/go-petr/pet-finance/pkg/randompkg"
	"github.com/go-petr/pet-finance/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("category_type", ValidCategoryType); err != nil {
			log.Fatalf("v.RegisterValidation(category_type) returned error: %v", err)
		}
	}

	os.Exit(m.Run())
}

func randomCategory() domain.Category {
	return domain.Category{
		ID:        randompkg.IntBetween(1, 1000),
		Name:      randompkg.Name(),
		Type:      randompkg.CategoryType(),
		CreatedAt: time.Now().UTC(),
	}
}

func newServer(service Service) *gin.Engine {
	h := NewHandler(service)

	server := gin.New()
	server.POST("/categories", h.Create)
	server.GET("/categories", h.List)
	server.GET("/categories/:id", h.Get)
	server.PUT("/categories/:id", h.Update)
	server.DELETE("/categories/:id", h.Delete)

	return server
}

func serve(server *gin.Engine, method, url, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

type categoryData struct {
	Category domain.Category `json:"category"`
}

func TestCreate(t *testing.T) {
	category := randomCategory()

	testCases := []struct {
		name           string
		body           string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			body: fmt.Sprintf(`{"name":%q,"type":%q}`, category.Name, category.Type),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Eq(category.Name), gomock.Eq(category.Type)).
					Times(1).
					Return(category, nil)
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "InvalidType",
			body: fmt.Sprintf(`{"name":%q,"type":"TRANSFER"}`, category.Name),
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Type must be INCOME or EXPENSE",
		},
		{
			name: "MissingName",
			body: `{"type":"INCOME"}`,
			buildStubs: func(service *MockService) {
				service.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Name field is required",
		},
		{
			name: "InternalServerError",
			body: fmt.Sprintf(`{"name":%q,"type":%q}`, category.Name, category.Type),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Category{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			recorder := serve(newServer(service), http.MethodPost, "/categories", tc.body)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &categoryData{}}
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if res.Error != tc.wantError {
				t.Errorf(`resp.Error=%q, want %q`, res.Error, tc.wantError)
			}

			if tc.wantStatusCode != http.StatusCreated {
				return
			}

			got := res.Data.(*categoryData)

			compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
			if diff := cmp.Diff(category, got.Category, compareCreatedAt); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetAndList(t *testing.T) {
	category := randomCategory()
	meta := pagepkg.Meta{Total: 1, Page: 1, Limit: 20, TotalPages: 1}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockService(ctrl)
	service.EXPECT().Get(gomock.Any(), gomock.Eq(category.ID)).Times(1).Return(category, nil)
	service.EXPECT().Get(gomock.Any(), gomock.Eq(int32(999))).Times(1).Return(domain.Category{}, domain.ErrCategoryNotFound)
	service.EXPECT().
		List(gomock.Any(), gomock.Eq(int32(1)), gomock.Eq(int32(20))).
		Times(1).
		Return([]domain.Category{category}, meta, nil)

	server := newServer(service)

	recorder := serve(server, http.MethodGet, fmt.Sprintf("/categories/%d", category.ID), "")
	if got := recorder.Code; got != http.StatusOK {
		t.Errorf("Status code: got %v, want %v", got, http.StatusOK)
	}

	recorder = serve(server, http.MethodGet, "/categories/999", "")
	if got := recorder.Code; got != http.StatusNotFound {
		t.Errorf("Status code: got %v, want %v", got, http.StatusNotFound)
	}

	recorder = serve(server, http.MethodGet, "/categories?page=1&limit=20", "")
	if got := recorder.Code; got != http.StatusOK {
		t.Fatalf("Status code: got %v, want %v", got, http.StatusOK)
	}

	res := web.Response{Data: &[]domain.Category{}}
	if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	if diff := cmp.Diff(&meta, res.Meta); diff != "" {
		t.Errorf("res.Meta mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate(t *testing.T) {
	category := randomCategory()
	url := fmt.Sprintf("/categories/%d", category.ID)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockService(ctrl)
	service.EXPECT().
		Update(gomock.Any(), gomock.Eq(category.ID), gomock.Eq("food"), gomock.Eq(domain.CategoryExpense)).
		Times(1).
		Return(category, nil)

	server := newServer(service)

	if got := serve(server, http.MethodPut, url, `{"name":"food","type":"EXPENSE"}`).Code; got != http.StatusOK {
		t.Errorf("Status code: got %v, want %v", got, http.StatusOK)
	}

	if got := serve(server, http.MethodPut, url, `{"name":"food","type":"expense"}`).Code; got != http.StatusBadRequest {
		t.Errorf("Status code: got %v, want %v", got, http.StatusBadRequest)
	}
}

func TestDelete(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		wantStatusCode int
	}{
		{name: "OK", wantStatusCode: http.StatusNoContent},
		{name: "ErrCategoryNotFound", err: domain.ErrCategoryNotFound, wantStatusCode: http.StatusNotFound},
		{name: "ErrCategoryInUse", err: domain.ErrCategoryInUse, wantStatusCode: http.StatusConflict},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			service.EXPECT().Delete(gomock.Any(), gomock.Eq(int32(2))).Times(1).Return(tc.err)

			if got := serve(newServer(service), http.MethodDelete, "/categories/2", "").Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}
		})
	}
}
