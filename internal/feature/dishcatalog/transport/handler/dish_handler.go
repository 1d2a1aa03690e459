// Package handler はdishcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"dish_backend/internal/api"
	"dish_backend/internal/feature/dishcatalog/domain/entity"
	"dish_backend/internal/feature/dishcatalog/usecase"
)

// DishUsecase は料理カタログのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DishUsecase interface {
	ListDishes(ctx context.Context) ([]entity.Dish, error)
	GetDish(ctx context.Context, code string) (*entity.Dish, error)
	CreateDish(ctx context.Context, code, description, imageRef string) (*entity.Dish, error)
	UpdateDish(ctx context.Context, code, description, imageRef string) (*entity.Dish, error)
	DeleteDish(ctx context.Context, code string) error
}

// DishHandler は料理カタログのHTTPリクエストを処理します。
type DishHandler struct {
	uc DishUsecase
}

// NewDishHandler は新しい DishHandler を作成します。
func NewDishHandler(uc DishUsecase) *DishHandler {
	return &DishHandler{uc: uc}
}

// List はすべての料理を返します。
//
// エンドポイント: GET /api/dish/dishes
func (h *DishHandler) List(c *gin.Context) {
	dishes, err := h.uc.ListDishes(c.Request.Context())
	if err != nil {
		slog.Error("料理一覧の取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "料理一覧の取得に失敗しました"})
		return
	}
	out := make([]api.DishResponse, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, toResponse(&d))
	}
	c.JSON(http.StatusOK, out)
}

// Get はコードで料理を1件返します。
//
// エンドポイント: GET /api/dish/dish/:code
func (h *DishHandler) Get(c *gin.Context) {
	d, err := h.uc.GetDish(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(d))
}

// Create は料理を登録します。
//
// エンドポイント: POST /api/dish/dish
func (h *DishHandler) Create(c *gin.Context) {
	var req api.DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("料理登録リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "code と description が必要です"})
		return
	}

	d, err := h.uc.CreateDish(c.Request.Context(), req.Code, req.Description, req.ImageReference)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(d))
}

// Update は料理の説明と参照画像を更新します。
//
// エンドポイント: PUT /api/dish/dish/:code
func (h *DishHandler) Update(c *gin.Context) {
	var req api.DishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("料理更新リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "description が必要です"})
		return
	}

	d, err := h.uc.UpdateDish(c.Request.Context(), c.Param("code"), req.Description, req.ImageReference)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(d))
}

// Delete はコードで料理を削除します。
//
// エンドポイント: DELETE /api/dish/dish/:code
func (h *DishHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteDish(c.Request.Context(), c.Param("code")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "料理を削除しました"})
}

// writeError はusecaseのエラーをHTTPステータスに変換します。
func (h *DishHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrDishNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "料理が見つかりません"})
	case errors.Is(err, usecase.ErrDishCodeAlreadyExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "料理コードは既に使用されています"})
	case errors.Is(err, usecase.ErrInvalidDish):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("料理カタログの操作に失敗", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "料理カタログの操作に失敗しました"})
	}
}

func toResponse(d *entity.Dish) api.DishResponse {
	return api.DishResponse{
		Code:           d.Code,
		Description:    d.Description,
		ImageReference: d.ImageReference,
	}
}
