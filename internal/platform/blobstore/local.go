// Package blobstore はアップロード画像の一時保存を提供します。
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// EnvKeyUploadDir は一時保存ディレクトリの環境変数名です。
	EnvKeyUploadDir = "UPLOAD_DIR"

	maxNameLength = 100
)

// Config は一時保存の設定です。
type Config struct {
	Dir string
}

// LoadConfig は環境変数から設定を読み込みます。未設定の場合はOSの一時ディレクトリ配下を使います。
func LoadConfig() Config {
	dir := os.Getenv(EnvKeyUploadDir)
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "dish-uploads")
	}
	return Config{Dir: dir}
}

// LocalStore はローカルディスクに一時ファイルを書き込みます。
type LocalStore struct {
	dir string
	now func() time.Time
}

// NewLocalStore はディレクトリを作成して LocalStore を返します。
func NewLocalStore(cfg Config) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: cfg.Dir, now: time.Now}, nil
}

// Write はデータを一意な名前のファイルに書き込み、そのパスを返します。
// ファイル名は <ナノ秒時刻>_<UUID>_<元のファイル名> で、同時呼び出しでも衝突しません。
func (s *LocalStore) Write(ctx context.Context, data []byte, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, s.uniqueName(name))
	// O_EXCL で既存ファイルの上書きを防ぐ
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// Delete はファイルを削除します。存在しないパスはエラーにしません。
func (s *LocalStore) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStore) uniqueName(name string) string {
	return strconv.FormatInt(s.now().UnixNano(), 10) + "_" + uuid.NewString() + "_" + sanitize(name)
}

// sanitize はパス要素を取り除き、ファイル名に安全な文字だけを残します。
func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		name = ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if len(out) > maxNameLength {
		out = out[len(out)-maxNameLength:]
	}
	if out == "" {
		out = "upload"
	}
	return out
}
