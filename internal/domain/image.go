package domain

import "time"

// GenerationMode は、画像生成のモードを表します
type GenerationMode string

const (
	// ModeGenerate はテキストのみから画像を生成します
	ModeGenerate GenerationMode = "generate"
	// ModeStyle は参照画像の画風に合わせて新しい画像を生成します
	ModeStyle GenerationMode = "style"
	// ModeEdit は既存の画像に小さな修正を加えます
	ModeEdit GenerationMode = "edit"
	// ModeVariation は既存の画像に近いバリエーションを生成します
	ModeVariation GenerationMode = "variation"
)

// RequiresReference は、このモードが参照画像を必要とするかを返します
func (m GenerationMode) RequiresReference() bool {
	return m == ModeStyle || m == ModeEdit || m == ModeVariation
}

// DefaultPrefix は、モードごとのファイル名プレフィックスの既定値です
func (m GenerationMode) DefaultPrefix() string {
	switch m {
	case ModeStyle:
		return "styled"
	case ModeEdit:
		return "edited"
	case ModeVariation:
		return "variation"
	default:
		return "generated"
	}
}

// ImageGenerationRequest は、アプリケーション層が受け取る画像生成要求です
type ImageGenerationRequest struct {
	Prompt      string
	Model       ModelID
	Mode        GenerationMode
	Style       string // スタイルテンプレート名（任意）
	Reference   *ReferenceImage
	// StyleDescription は参照画像の画風の説明です（スタイル参照モードのみ）
	StyleDescription string
	OutputDir   string
	Prefix      string
	AspectRatio string // Imagenのみ
}

// ImageRequest は、画像生成APIに送信される最終的なリクエストです
type ImageRequest struct {
	Prompt      string
	Model       ModelID
	Reference   *ReferenceImage
	AspectRatio string
}

// GeneratedImage は、APIから返された画像データです
type GeneratedImage struct {
	Data        []byte
	MimeType    string
	Size        int64
	GeneratedAt time.Time
}

// ImageGenerationResponse は、画像生成APIの応答です
type ImageGenerationResponse struct {
	Images      []GeneratedImage
	Notes       []string // モデルが画像と一緒に返したテキスト
	Prompt      string
	Model       ModelID
	GeneratedAt time.Time
}

// Artifact は、ディスクに保存された画像ファイルです
type Artifact struct {
	Path     string
	Bytes    int64
	SHA256   string
	MimeType string
}

// ImageGenerationResult は、画像生成の結果を表すドメインオブジェクトです
type ImageGenerationResult struct {
	RequestID   string
	Artifact    Artifact
	Prompt      string
	Model       ModelID
	Mode        GenerationMode
	Notes       []string
	GeneratedAt time.Time
}
