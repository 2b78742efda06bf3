package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxPromptLength は、プロンプトの最大文字数です
const MaxPromptLength = 20000

// ImagePrompt は、画像生成用のプロンプトを表す値オブジェクトです
type ImagePrompt struct {
	content string
}

// NewImagePrompt は、前後の空白を取り除いたプロンプトを検証して作成します
func NewImagePrompt(content string) (ImagePrompt, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ImagePrompt{}, fmt.Errorf("%w: プロンプトが空です", ErrInvalidPrompt)
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxPromptLength {
		return ImagePrompt{}, fmt.Errorf("%w: プロンプトが長すぎます (%d文字, 最大%d文字)", ErrInvalidPrompt, n, MaxPromptLength)
	}
	return ImagePrompt{content: trimmed}, nil
}

// Content はプロンプトの本文を返します
func (p ImagePrompt) Content() string {
	return p.content
}

// ReferenceImage は、スタイル参照や編集の元になる画像です
type ReferenceImage struct {
	Path     string
	Data     []byte
	MimeType string
}

var mimeTypesByExtension = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// MIMETypeForPath は、拡張子からMIMEタイプを判定します。不明な場合はimage/pngです
func MIMETypeForPath(path string) string {
	if mt, ok := mimeTypesByExtension[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return "image/png"
}

// LoadReferenceImage は、ファイルから参照画像を読み込みます
func LoadReferenceImage(path string) (*ReferenceImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("参照画像の読み込みに失敗: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("参照画像が空です: %s", path)
	}
	return &ReferenceImage{
		Path:     path,
		Data:     data,
		MimeType: MIMETypeForPath(path),
	}, nil
}
