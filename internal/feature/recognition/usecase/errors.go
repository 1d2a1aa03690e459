// Package usecase はrecognitionフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyImage is returned when the uploaded image has no bytes.
	ErrEmptyImage = errors.New("image data is empty")

	// ErrImageTooLarge is returned when the uploaded image exceeds MaxImageSize.
	ErrImageTooLarge = errors.New("image size exceeds maximum")

	// ErrImageDecode is returned when the image cannot be decoded or has no pixels.
	ErrImageDecode = errors.New("image could not be decoded")

	// ErrTempStorage is returned when the upload cannot be written to temporary storage.
	ErrTempStorage = errors.New("temporary storage failed")

	// ErrCatalogUnavailable is returned when the dish catalog cannot be queried.
	// A catalog miss is not an error; see CatalogResolver.
	ErrCatalogUnavailable = errors.New("dish catalog unavailable")
)

// Stage はパイプラインのどの段階で処理が止まったかを表します。
type Stage string

const (
	StageReceived         Stage = "received"
	StageStored           Stage = "stored"
	StageFeatureExtracted Stage = "feature_extracted"
	StageClassified       Stage = "classified"
	StageResolved         Stage = "resolved"
)

// RecognitionError は認識処理の失敗を表し、原因となったエラーをラップします。
// Stage は失敗直前に到達していた状態です。
type RecognitionError struct {
	Stage Stage
	Err   error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognition failed at %s: %v", e.Stage, e.Err)
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}
