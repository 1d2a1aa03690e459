package di

import (
	"fmt"

	"dish_backend/internal/feature/recognition/adapters/classifier"
	"dish_backend/internal/feature/recognition/adapters/colorfeature"
	"dish_backend/internal/feature/recognition/usecase"
	"dish_backend/internal/platform/imaging"
)

const (
	// ExtractorGo は純Goのデコーダで平均HSVを計算します（デフォルト）。
	ExtractorGo = "go"
	// ExtractorOpenCV は gocv ビルドタグ付きでビルドした場合のみ利用できます。
	ExtractorOpenCV = "opencv"
)

// NewFeatureExtractor は FEATURE_EXTRACTOR の値に応じた特徴抽出器を返します。
func NewFeatureExtractor(kind string) (usecase.FeatureExtractor, error) {
	switch kind {
	case "", ExtractorGo:
		return colorfeature.NewMeanHSVExtractor(imaging.NewFileDecoder()), nil
	case ExtractorOpenCV:
		e, err := colorfeature.NewOpenCVExtractor()
		if err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown FEATURE_EXTRACTOR %q", kind)
	}
}

// NewRecognitionUsecase wires the recognition pipeline around the given catalog and temp store.
func NewRecognitionUsecase(finder usecase.DishFinder, store usecase.BlobStore, extractorKind string) (*usecase.RecognitionUsecase, error) {
	extractor, err := NewFeatureExtractor(extractorKind)
	if err != nil {
		return nil, err
	}
	return usecase.NewRecognitionUsecase(
		store,
		extractor,
		classifier.NewHueRuleClassifier(),
		usecase.NewCatalogResolver(finder),
	), nil
}
