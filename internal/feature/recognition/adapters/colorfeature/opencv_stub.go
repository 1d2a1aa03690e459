//go:build !gocv

package colorfeature

import (
	"context"
	"errors"

	"dish_backend/internal/feature/recognition/domain/entity"
)

// ErrOpenCVUnavailable is returned when the binary was built without the gocv tag.
var ErrOpenCVUnavailable = errors.New("gocv build tag is not enabled")

// OpenCVExtractor はgocvタグなしでビルドされた場合のスタブです。
type OpenCVExtractor struct{}

// NewOpenCVExtractor はgocvタグなしのビルドでは常にエラーを返します。
func NewOpenCVExtractor() (*OpenCVExtractor, error) {
	return nil, ErrOpenCVUnavailable
}

// Extract は常に ErrOpenCVUnavailable を返します。
func (e *OpenCVExtractor) Extract(ctx context.Context, path string) (entity.FeatureVector, error) {
	_ = ctx
	_ = path
	return entity.FeatureVector{}, ErrOpenCVUnavailable
}
