package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ModelID は画像生成に使用するモデルの識別子です
type ModelID string

const (
	ModelGeminiFlashImage ModelID = "gemini-2.5-flash-image"
	ModelGeminiProImage   ModelID = "gemini-3-pro-image-preview"
	ModelGeminiFlashExp   ModelID = "gemini-2.0-flash-exp"
	ModelImagen4          ModelID = "imagen-4.0-generate-001"
)

// DefaultModelID は、モデルが指定されていない場合に使用されるモデルです
const DefaultModelID = ModelGeminiFlashImage

// Backend は、モデルを呼び出すAPIの種類です
type Backend int

const (
	// BackendContent は generateContent API を使うモデルです
	BackendContent Backend = iota
	// BackendImagen は generateImages API を使うモデルです
	BackendImagen
)

// ModelInfo はモデルカタログの1エントリです
type ModelInfo struct {
	ID          ModelID
	DisplayName string
	Backend     Backend
}

// modelCatalog はサポートされているモデルの一覧です（メニューの表示順）
var modelCatalog = []ModelInfo{
	{ModelGeminiFlashImage, "Nano Banana", BackendContent},
	{ModelGeminiProImage, "Nano Banana Pro", BackendContent},
	{ModelImagen4, "Imagen 4", BackendImagen},
	{ModelGeminiFlashExp, "Gemini 2.0 Flash Experimental", BackendContent},
}

// AllModels はすべてのモデルをメニュー順に返します
func AllModels() []ModelInfo {
	out := make([]ModelInfo, len(modelCatalog))
	copy(out, modelCatalog)
	return out
}

// ParseModelID は、モデルIDまたはメニュー番号（1始まり）を検証してModelIDに変換します
func ParseModelID(value string) (ModelID, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return DefaultModelID, nil
	}

	if n, err := strconv.Atoi(v); err == nil {
		if n >= 1 && n <= len(modelCatalog) {
			return modelCatalog[n-1].ID, nil
		}
		return "", fmt.Errorf("%w: メニュー番号 %d は範囲外です (1-%d)", ErrUnsupportedModel, n, len(modelCatalog))
	}

	for _, m := range modelCatalog {
		if string(m.ID) == v {
			return m.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q (利用可能: %s)", ErrUnsupportedModel, v, strings.Join(modelNames(), ", "))
}

// Info はモデルのカタログ情報を返します
func (m ModelID) Info() (ModelInfo, bool) {
	for _, info := range modelCatalog {
		if info.ID == m {
			return info, true
		}
	}
	return ModelInfo{}, false
}

// Validate は、モデルがカタログに含まれているかを検証します
func (m ModelID) Validate() error {
	if _, ok := m.Info(); !ok {
		return fmt.Errorf("%w: %q (利用可能: %s)", ErrUnsupportedModel, string(m), strings.Join(modelNames(), ", "))
	}
	return nil
}

// SupportsReferenceImages は、参照画像を入力として受け付けるかを返します
func (m ModelID) SupportsReferenceImages() bool {
	info, ok := m.Info()
	return ok && info.Backend == BackendContent
}

func (m ModelID) String() string {
	return string(m)
}

func modelNames() []string {
	names := make([]string, len(modelCatalog))
	for i, m := range modelCatalog {
		names[i] = string(m.ID)
	}
	return names
}
