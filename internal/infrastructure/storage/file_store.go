package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"geminiimage/internal/domain"

	"github.com/rs/zerolog"
)

// maxSequence は、同じタイムスタンプで試す連番の上限です
const maxSequence = 1000

// FileArtifactStore は、画像をローカルファイルシステムに保存するストアです
type FileArtifactStore struct {
	now    func() time.Time
	logger zerolog.Logger
}

// Option は、FileArtifactStoreの任意設定です
type Option func(*FileArtifactStore)

// WithClock は、ファイル名に使う時刻の取得方法を差し替えます
func WithClock(now func() time.Time) Option {
	return func(s *FileArtifactStore) {
		s.now = now
	}
}

// WithLogger は、ロガーを設定します
func WithLogger(l zerolog.Logger) Option {
	return func(s *FileArtifactStore) {
		s.logger = l
	}
}

// NewFileArtifactStore は新しいFileArtifactStoreインスタンスを作成します
func NewFileArtifactStore(opts ...Option) *FileArtifactStore {
	s := &FileArtifactStore{
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save は、画像を `<prefix>_<timestamp>[_NNN].<ext>` としてdirに保存します。
// 既存のファイルは上書きせず、失敗した場合はファイルを残しません
func (s *FileArtifactStore) Save(ctx context.Context, dir, prefix string, image domain.GeneratedImage) (domain.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return domain.Artifact{}, err
	}
	if len(image.Data) == 0 {
		return domain.Artifact{}, domain.ErrNoImageData
	}
	if err := domain.ValidatePrefix(prefix); err != nil {
		return domain.Artifact{}, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.Artifact{}, fmt.Errorf("出力ディレクトリの作成に失敗 %s: %w", dir, err)
	}

	mimeType := image.MimeType
	if mimeType == "" {
		mimeType = http.DetectContentType(image.Data)
	}
	ext := domain.ExtensionForMIME(mimeType)

	tmpPath, err := writeTemp(dir, prefix, image.Data)
	if err != nil {
		return domain.Artifact{}, err
	}
	defer os.Remove(tmpPath)

	finalPath, err := s.reserve(dir, prefix, ext)
	if err != nil {
		return domain.Artifact{}, err
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(finalPath)
		return domain.Artifact{}, fmt.Errorf("画像ファイルの確定に失敗: %w", err)
	}

	sum := sha256.Sum256(image.Data)
	s.logger.Debug().Str("path", finalPath).Int("bytes", len(image.Data)).Msg("画像ファイルを書き込みました")

	return domain.Artifact{
		Path:     finalPath,
		Bytes:    int64(len(image.Data)),
		SHA256:   hex.EncodeToString(sum[:]),
		MimeType: mimeType,
	}, nil
}

// reserve は、まだ存在しないファイル名を排他的に作成して確保します
func (s *FileArtifactStore) reserve(dir, prefix, ext string) (string, error) {
	at := s.now()
	for seq := 0; seq < maxSequence; seq++ {
		path := filepath.Join(dir, domain.ArtifactFilename(prefix, at, seq, ext))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			if err := f.Close(); err != nil {
				_ = os.Remove(path)
				return "", fmt.Errorf("画像ファイルの作成に失敗: %w", err)
			}
			return path, nil
		}
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return "", fmt.Errorf("画像ファイルの作成に失敗: %w", err)
	}
	return "", fmt.Errorf("ファイル名の連番が上限 (%d) に達しました: %s", maxSequence, dir)
}

// writeTemp は、同じディレクトリの一時ファイルにデータを書き込んでパスを返します
func writeTemp(dir, prefix string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, ".tmp-"+prefix+"-*")
	if err != nil {
		return "", fmt.Errorf("一時ファイルの作成に失敗: %w", err)
	}
	name := tmp.Name()

	cleanup := func(cause error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", cause
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("一時ファイルへの書き込みに失敗: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("一時ファイルの同期に失敗: %w", err))
	}
	if err := tmp.Chmod(0o644); err != nil {
		return cleanup(fmt.Errorf("一時ファイルの権限設定に失敗: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("一時ファイルのクローズに失敗: %w", err)
	}
	return name, nil
}
