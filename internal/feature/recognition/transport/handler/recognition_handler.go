// Package handler はrecognitionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"dish_backend/internal/api"
	"dish_backend/internal/feature/recognition/domain/entity"
	"dish_backend/internal/feature/recognition/usecase"
	"dish_backend/internal/platform/imaging"
)

// RecognitionUsecase は料理認識のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type RecognitionUsecase interface {
	Recognize(ctx context.Context, imageData []byte, filename string) (*entity.RecognitionResult, error)
}

// RecognitionHandler は料理認識のHTTPリクエストを処理します。
type RecognitionHandler struct {
	uc RecognitionUsecase
}

// NewRecognitionHandler はRecognitionHandlerの新しいインスタンスを生成します。
func NewRecognitionHandler(uc RecognitionUsecase) *RecognitionHandler {
	return &RecognitionHandler{uc: uc}
}

// Recognize は画像をアップロードして料理を認識します。
//
// エンドポイント: POST /api/dish/recognize
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *RecognitionHandler) Recognize(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像ファイルが必要です"})
		return
	}

	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像ファイルが空です"})
		return
	}
	if file.Size > usecase.MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "画像サイズは10MB以下にしてください"})
		return
	}
	if !isImageUpload(file.Filename, file.Header.Get("Content-Type")) {
		slog.Warn("画像以外のファイルを拒否", "filename", file.Filename, "content_type", file.Header.Get("Content-Type"))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像ファイルのみアップロードできます"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return
	}

	result, err := h.uc.Recognize(c.Request.Context(), imageData, file.Filename)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]api.DetectionResponse, 0, len(result.Detections))
	for _, d := range result.Detections {
		out = append(out, api.DetectionResponse{Code: d.Code, Description: d.Description})
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecognitionHandler) writeError(c *gin.Context, err error) {
	var stage usecase.Stage
	var recErr *usecase.RecognitionError
	if errors.As(err, &recErr) {
		stage = recErr.Stage
	}

	switch {
	case errors.Is(err, usecase.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "画像サイズは10MB以下にしてください"})
	case errors.Is(err, usecase.ErrImageDecode):
		slog.Warn("画像のデコードに失敗", "error", err, "stage", stage)
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "画像を読み取れませんでした"})
	case errors.Is(err, usecase.ErrCatalogUnavailable):
		slog.Error("料理カタログに接続できません", "error", err, "stage", stage)
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "料理カタログが利用できません"})
	default:
		slog.Error("料理認識に失敗", "error", err, "stage", stage)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "料理認識に失敗しました"})
	}
}

// isImageUpload は拡張子が対応形式であり、Content-Type が画像であるかを判定します。
// クライアントが application/octet-stream を送る場合は拡張子のみで判定します。
func isImageUpload(filename, contentType string) bool {
	if _, ok := imaging.SupportedExtensions[strings.ToLower(filepath.Ext(filename))]; !ok {
		return false
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	return ct == "" || ct == "application/octet-stream" || strings.HasPrefix(ct, "image/")
}
