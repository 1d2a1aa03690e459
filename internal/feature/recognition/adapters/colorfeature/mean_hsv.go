// Package colorfeature は画像から平均色の特徴ベクトルを抽出します。
package colorfeature

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/stat"

	"dish_backend/internal/feature/recognition/domain/entity"
	"dish_backend/internal/feature/recognition/usecase"
	"dish_backend/internal/platform/imaging"
)

// MeanHSVExtractor は全画素をHSVに変換し、チャンネルごとの算術平均を返します。
type MeanHSVExtractor struct {
	decoder imaging.Decoder
}

var _ usecase.FeatureExtractor = (*MeanHSVExtractor)(nil)

// NewMeanHSVExtractor は指定されたデコーダを使う MeanHSVExtractor を生成します。
func NewMeanHSVExtractor(d imaging.Decoder) *MeanHSVExtractor {
	return &MeanHSVExtractor{decoder: d}
}

// Extract はファイルをデコードして平均HSVを返します。
// デコードに失敗した場合や画素がない場合は usecase.ErrImageDecode をラップして返します。
func (e *MeanHSVExtractor) Extract(ctx context.Context, path string) (entity.FeatureVector, error) {
	if err := ctx.Err(); err != nil {
		return entity.FeatureVector{}, err
	}

	img, err := e.decoder.Decode(path)
	if err != nil {
		return entity.FeatureVector{}, fmt.Errorf("%w: %v", usecase.ErrImageDecode, err)
	}
	if img == nil || img.Bounds().Empty() {
		return entity.FeatureVector{}, fmt.Errorf("%w: image has no pixels", usecase.ErrImageDecode)
	}
	return MeanHSV(img), nil
}

// MeanHSV は画像の平均HSVを計算します。
// 行ごとに平均を取り、その平均を取ります。すべての行は同じ幅なので全画素の平均と一致します。
func MeanHSV(img image.Image) entity.FeatureVector {
	b := img.Bounds()
	w := float64(b.Dx())

	hRows := make([]float64, 0, b.Dy())
	sRows := make([]float64, 0, b.Dy())
	vRows := make([]float64, 0, b.Dy())

	for y := b.Min.Y; y < b.Max.Y; y++ {
		var hSum, sSum, vSum float64
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			h, s, v := RGBToHSV(float64(c.R), float64(c.G), float64(c.B))
			hSum += h
			sSum += s
			vSum += v
		}
		hRows = append(hRows, hSum/w)
		sRows = append(sRows, sSum/w)
		vRows = append(vRows, vSum/w)
	}

	return entity.FeatureVector{
		Hue:        stat.Mean(hRows, nil),
		Saturation: stat.Mean(sRows, nil),
		Value:      stat.Mean(vRows, nil),
	}
}

// RGBToHSV はRGB（0-255）をOpenCV規約のHSV（H 0-180, S 0-255, V 0-255）に変換します。
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0
	if maxC > 0 {
		s = diff / maxC * 255.0
	}

	switch {
	case diff == 0:
		h = 0
	case maxC == r:
		h = 60 * math.Mod((g-b)/diff, 6)
	case maxC == g:
		h = 60 * ((b-r)/diff + 2)
	default:
		h = 60 * ((r-g)/diff + 4)
	}
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h / 2, s, v
}
