package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"dish_backend/internal/feature/recognition/domain/entity"
)

// MaxImageSize はアップロード画像の上限サイズ（10MB）です。
const MaxImageSize = 10 * 1024 * 1024

// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。

// FeatureExtractor は画像ファイルから特徴ベクトルを抽出します。
type FeatureExtractor interface {
	Extract(ctx context.Context, path string) (entity.FeatureVector, error)
}

// Classifier は特徴ベクトルをラベルに分類します。常に空でないラベルを返します。
type Classifier interface {
	Classify(fv entity.FeatureVector) string
}

// BlobStore はアップロード画像の一時保存先です。
// Delete は存在しないパスに対してもエラーを返しません。
type BlobStore interface {
	Write(ctx context.Context, data []byte, name string) (string, error)
	Delete(ctx context.Context, path string) error
}

// Resolver はラベルを Detection に変換します。
type Resolver interface {
	Resolve(ctx context.Context, label string) (entity.Detection, error)
}

// RecognitionUsecase は一時保存、特徴抽出、分類、カタログ解決を順に実行します。
type RecognitionUsecase struct {
	store      BlobStore
	extractor  FeatureExtractor
	classifier Classifier
	resolver   Resolver
}

// NewRecognitionUsecase は RecognitionUsecase を生成します。
func NewRecognitionUsecase(store BlobStore, extractor FeatureExtractor, classifier Classifier, resolver Resolver) *RecognitionUsecase {
	return &RecognitionUsecase{
		store:      store,
		extractor:  extractor,
		classifier: classifier,
		resolver:   resolver,
	}
}

// Recognize は画像データから料理を認識します。
//
// 一時ファイルは成功・失敗にかかわらず必ず削除されます。削除の失敗はログに記録するだけで
// 呼び出し元には返しません。失敗時は *RecognitionError を返します。
func (u *RecognitionUsecase) Recognize(ctx context.Context, imageData []byte, filename string) (*entity.RecognitionResult, error) {
	if len(imageData) == 0 {
		return nil, &RecognitionError{Stage: StageReceived, Err: fmt.Errorf("%w: %w", ErrImageDecode, ErrEmptyImage)}
	}
	if len(imageData) > MaxImageSize {
		return nil, &RecognitionError{Stage: StageReceived, Err: ErrImageTooLarge}
	}

	path, err := u.store.Write(ctx, imageData, filename)
	if err != nil {
		return nil, &RecognitionError{Stage: StageReceived, Err: fmt.Errorf("%w: %v", ErrTempStorage, err)}
	}
	defer u.cleanup(path)

	fv, err := u.extractor.Extract(ctx, path)
	if err != nil {
		return nil, &RecognitionError{Stage: StageStored, Err: err}
	}

	label := u.classifier.Classify(fv)
	slog.Debug("画像を分類しました", "label", label, "hue", fv.Hue, "saturation", fv.Saturation, "value", fv.Value)

	det, err := u.resolver.Resolve(ctx, label)
	if err != nil {
		return nil, &RecognitionError{Stage: StageClassified, Err: err}
	}

	return &entity.RecognitionResult{Detections: []entity.Detection{det}}, nil
}

// cleanup は一時ファイルを削除します。リクエストがキャンセルされていても削除は行います。
func (u *RecognitionUsecase) cleanup(path string) {
	if err := u.store.Delete(context.Background(), path); err != nil {
		slog.Warn("一時ファイルの削除に失敗", "path", path, "error", err)
	}
}
