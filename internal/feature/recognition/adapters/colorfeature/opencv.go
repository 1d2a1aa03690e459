//go:build gocv

package colorfeature

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"dish_backend/internal/feature/recognition/domain/entity"
	"dish_backend/internal/feature/recognition/usecase"
)

// OpenCVExtractor はOpenCVでBGR画像をHSVに変換し、チャンネル平均を返します。
// OpenCVはHSVを8bit整数に丸めるため、MeanHSVExtractor とは小数点以下で差が出ることがあります。
type OpenCVExtractor struct{}

var _ usecase.FeatureExtractor = (*OpenCVExtractor)(nil)

// NewOpenCVExtractor は OpenCVExtractor を生成します。
func NewOpenCVExtractor() (*OpenCVExtractor, error) {
	return &OpenCVExtractor{}, nil
}

// Extract はファイルを読み込み、平均HSVを返します。
func (e *OpenCVExtractor) Extract(ctx context.Context, path string) (entity.FeatureVector, error) {
	if err := ctx.Err(); err != nil {
		return entity.FeatureVector{}, err
	}

	img := gocv.IMRead(path, gocv.IMReadColor)
	defer img.Close()
	if img.Empty() {
		return entity.FeatureVector{}, fmt.Errorf("%w: opencv could not read %s", usecase.ErrImageDecode, path)
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(img, &hsv, gocv.ColorBGRToHSV)

	m := hsv.Mean()
	return entity.FeatureVector{Hue: m.Val1, Saturation: m.Val2, Value: m.Val3}, nil
}
