// Package imaging はアップロード画像のデコードを提供します。
package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is returned when the decoded image has no pixels.
var ErrEmptyImage = errors.New("decoded image has no pixels")

// Decoder はファイルパスから画像をデコードします。
type Decoder interface {
	Decode(path string) (image.Image, error)
}

// FileDecoder は標準の image パッケージに登録されたフォーマット
// （JPEG, PNG, GIF, BMP, TIFF, WebP）をデコードします。
type FileDecoder struct{}

var _ Decoder = FileDecoder{}

// NewFileDecoder は FileDecoder を生成します。
func NewFileDecoder() FileDecoder {
	return FileDecoder{}
}

// Decode はファイルを開いて画像をデコードします。
// 画素が1つもない画像は ErrEmptyImage を返します。
func (FileDecoder) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return img, nil
}

// SupportedExtensions はデコード可能なファイル拡張子です。
var SupportedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}
