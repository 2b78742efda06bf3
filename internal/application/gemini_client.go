package application

import (
	"context"

	"geminiimage/internal/domain"
)

// ImageGenerator は、画像生成APIとの通信を行うクライアントのインターフェースです
type ImageGenerator interface {
	// GenerateImage は、リクエストを受け取って画像生成APIから画像を生成します
	GenerateImage(ctx context.Context, request domain.ImageRequest) (*domain.ImageGenerationResponse, error)
}

// ArtifactStore は、生成された画像を永続化するインターフェースです
type ArtifactStore interface {
	// Save は、画像を既存ファイルと衝突しない名前でdirに保存します
	Save(ctx context.Context, dir, prefix string, image domain.GeneratedImage) (domain.Artifact, error)
}

// ArtifactPublisher は、保存済みの画像を外部に共有するインターフェースです
type ArtifactPublisher interface {
	Publish(ctx context.Context, result domain.ImageGenerationResult) error
}

// HistoryRecorder は、生成履歴を記録するインターフェースです
type HistoryRecorder interface {
	Record(ctx context.Context, result domain.ImageGenerationResult) error
}
