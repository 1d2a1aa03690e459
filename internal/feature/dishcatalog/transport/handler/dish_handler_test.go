package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"dish_backend/internal/feature/dishcatalog/domain/entity"
	"dish_backend/internal/feature/dishcatalog/usecase"
)

// mockDishUsecase はDishUsecaseインターフェースのモック実装です。
type mockDishUsecase struct {
	ListDishesFunc func(ctx context.Context) ([]entity.Dish, error)
	GetDishFunc    func(ctx context.Context, code string) (*entity.Dish, error)
	CreateDishFunc func(ctx context.Context, code, description, imageRef string) (*entity.Dish, error)
	UpdateDishFunc func(ctx context.Context, code, description, imageRef string) (*entity.Dish, error)
	DeleteDishFunc func(ctx context.Context, code string) error
}

func (m *mockDishUsecase) ListDishes(ctx context.Context) ([]entity.Dish, error) {
	return m.ListDishesFunc(ctx)
}

func (m *mockDishUsecase) GetDish(ctx context.Context, code string) (*entity.Dish, error) {
	return m.GetDishFunc(ctx, code)
}

func (m *mockDishUsecase) CreateDish(ctx context.Context, code, description, imageRef string) (*entity.Dish, error) {
	return m.CreateDishFunc(ctx, code, description, imageRef)
}

func (m *mockDishUsecase) UpdateDish(ctx context.Context, code, description, imageRef string) (*entity.Dish, error) {
	return m.UpdateDishFunc(ctx, code, description, imageRef)
}

func (m *mockDishUsecase) DeleteDish(ctx context.Context, code string) error {
	return m.DeleteDishFunc(ctx, code)
}

func newTestRouter(h *DishHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/dish/dishes", h.List)
	r.GET("/api/dish/dish/:code", h.Get)
	r.POST("/api/dish/dish", h.Create)
	r.PUT("/api/dish/dish/:code", h.Update)
	r.DELETE("/api/dish/dish/:code", h.Delete)
	return r
}

func TestNewDishHandler(t *testing.T) {
	t.Parallel()

	h := NewDishHandler(&mockDishUsecase{})

	assert.NotNil(t, h, "handler should not be nil")
	assert.NotNil(t, h.uc, "usecase should not be nil")
}

func TestDishHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		listFunc       func(ctx context.Context) ([]entity.Dish, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: returns dishes without surrogate id",
			listFunc: func(ctx context.Context) ([]entity.Dish, error) {
				return []entity.Dish{
					{ID: 41, Code: "DISH_001", Description: "Red Apple", ImageReference: "images/apples.jpg"},
					{ID: 42, Code: "DISH_002", Description: "Banana"},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"code":"DISH_001","description":"Red Apple","image_reference":"images/apples.jpg"},{"code":"DISH_002","description":"Banana"}]`,
		},
		{
			name: "success: empty catalog",
			listFunc: func(ctx context.Context) ([]entity.Dish, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "failure: usecase returns error",
			listFunc: func(ctx context.Context) ([]entity.Dish, error) {
				return nil, errors.New("database connection failed")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"料理一覧の取得に失敗しました"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(NewDishHandler(&mockDishUsecase{ListDishesFunc: tt.listFunc}))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/dish/dishes", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestDishHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockUC := &mockDishUsecase{
		GetDishFunc: func(ctx context.Context, code string) (*entity.Dish, error) {
			if code == "DISH_001" {
				return &entity.Dish{Code: "DISH_001", Description: "Red Apple"}, nil
			}
			return nil, usecase.ErrDishNotFound
		},
	}
	router := newTestRouter(NewDishHandler(mockUC))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dish/dish/DISH_001", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":"DISH_001","description":"Red Apple"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dish/dish/DISH_404", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"料理が見つかりません"}`, w.Body.String())
}

func TestDishHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		createFunc     func(ctx context.Context, code, description, imageRef string) (*entity.Dish, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: dish created",
			body: `{"code":"DISH_099","description":"Mapo Tofu","image_reference":"images/tofu.jpg"}`,
			createFunc: func(ctx context.Context, code, description, imageRef string) (*entity.Dish, error) {
				return &entity.Dish{ID: 99, Code: code, Description: description, ImageReference: imageRef}, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"code":"DISH_099","description":"Mapo Tofu","image_reference":"images/tofu.jpg"}`,
		},
		{
			name:           "error: invalid json",
			body:           `invalid`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"code と description が必要です"}`,
		},
		{
			name: "error: duplicate code",
			body: `{"code":"DISH_001","description":"Red Apple"}`,
			createFunc: func(ctx context.Context, code, description, imageRef string) (*entity.Dish, error) {
				return nil, usecase.ErrDishCodeAlreadyExists
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"料理コードは既に使用されています"}`,
		},
		{
			name: "error: validation failure",
			body: `{"code":"","description":"Red Apple"}`,
			createFunc: func(ctx context.Context, code, description, imageRef string) (*entity.Dish, error) {
				return nil, fmt.Errorf("%w: code is required", usecase.ErrInvalidDish)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid dish: code is required"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			router := newTestRouter(NewDishHandler(&mockDishUsecase{CreateDishFunc: tt.createFunc}))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/dish/dish", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestDishHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotCode string
	mockUC := &mockDishUsecase{
		UpdateDishFunc: func(ctx context.Context, code, description, imageRef string) (*entity.Dish, error) {
			gotCode = code
			return &entity.Dish{Code: code, Description: description, ImageReference: imageRef}, nil
		},
	}
	router := newTestRouter(NewDishHandler(mockUC))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/dish/dish/DISH_002",
		strings.NewReader(`{"code":"IGNORED","description":"Ripe Banana"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DISH_002", gotCode, "path code must win over body code")
	assert.JSONEq(t, `{"code":"DISH_002","description":"Ripe Banana"}`, w.Body.String())
}

func TestDishHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		deleteErr      error
		expectedStatus int
	}{
		{"success: deleted", nil, http.StatusOK},
		{"error: not found", usecase.ErrDishNotFound, http.StatusNotFound},
		{"error: store failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockUC := &mockDishUsecase{
				DeleteDishFunc: func(ctx context.Context, code string) error { return tt.deleteErr },
			}
			router := newTestRouter(NewDishHandler(mockUC))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/dish/dish/DISH_001", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
