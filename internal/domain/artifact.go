package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout はファイル名に埋め込むタイムスタンプの形式です
const TimestampLayout = "20060102_150405"

var extensionsByMIME = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ExtensionForMIME は、MIMEタイプに対応するファイル拡張子を返します。不明な場合はpngです
func ExtensionForMIME(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if ext, ok := extensionsByMIME[mt]; ok {
		return ext
	}
	return "png"
}

// ArtifactFilename は `<prefix>_<timestamp>[_<seq>].<ext>` 形式のファイル名を返します。
// seqが0の場合は連番を付けません
func ArtifactFilename(prefix string, at time.Time, seq int, ext string) string {
	if prefix == "" {
		prefix = "generated"
	}
	name := fmt.Sprintf("%s_%s", prefix, at.Format(TimestampLayout))
	if seq > 0 {
		name = fmt.Sprintf("%s_%03d", name, seq)
	}
	return name + "." + ext
}

// ValidatePrefix は、ファイル名プレフィックスにパス区切り文字が含まれていないかを検証します
func ValidatePrefix(prefix string) error {
	if strings.ContainsAny(prefix, `/\`) || prefix == "." || prefix == ".." {
		return fmt.Errorf("ファイル名プレフィックスにパス区切り文字は使用できません: %q", prefix)
	}
	return nil
}
