package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"geminiimage/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ImageGenerationService は、画像生成に関するビジネスロジックを担当するサービスです
type ImageGenerationService struct {
	generator  ImageGenerator
	store      ArtifactStore
	publishers []ArtifactPublisher
	history    HistoryRecorder
	logger     zerolog.Logger
	newID      func() string
	now        func() time.Time
}

// Option は、ImageGenerationServiceの任意設定です
type Option func(*ImageGenerationService)

// WithPublisher は、保存後に画像を共有する先を追加します
func WithPublisher(p ArtifactPublisher) Option {
	return func(s *ImageGenerationService) {
		if p != nil {
			s.publishers = append(s.publishers, p)
		}
	}
}

// WithHistory は、生成履歴の記録先を設定します
func WithHistory(h HistoryRecorder) Option {
	return func(s *ImageGenerationService) {
		s.history = h
	}
}

// WithLogger は、ロガーを設定します
func WithLogger(l zerolog.Logger) Option {
	return func(s *ImageGenerationService) {
		s.logger = l
	}
}

// NewImageGenerationService は新しいImageGenerationServiceインスタンスを作成します
func NewImageGenerationService(generator ImageGenerator, store ArtifactStore, opts ...Option) *ImageGenerationService {
	s := &ImageGenerationService{
		generator: generator,
		store:     store,
		logger:    zerolog.Nop(),
		newID:     uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateImage は、プロンプトから画像を生成して1つのファイルとして保存します。
// プロンプト・モデル・参照画像の検証はAPI呼び出しの前に行われます
func (s *ImageGenerationService) GenerateImage(ctx context.Context, request domain.ImageGenerationRequest) (*domain.ImageGenerationResult, error) {
	requestID := s.newID()
	log := s.logger.With().Str("request_id", requestID).Logger()

	apiRequest, mode, prefix, err := s.prepare(request)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("model", apiRequest.Model.String()).
		Str("mode", string(mode)).
		Int("prompt_chars", len(apiRequest.Prompt)).
		Msg("画像生成をリクエスト中")

	response, err := s.generator.GenerateImage(ctx, apiRequest)
	if err != nil {
		return nil, fmt.Errorf("画像生成に失敗: %w", err)
	}
	if response == nil || len(response.Images) == 0 {
		return nil, fmt.Errorf("画像生成に失敗: %w", domain.ErrNoImageData)
	}

	for _, note := range response.Notes {
		log.Info().Str("note", note).Msg("モデルからのコメント")
	}
	if len(response.Images) > 1 {
		log.Warn().Int("images", len(response.Images)).Msg("複数の画像が返されました。最初の1枚のみ保存します")
	}

	image := response.Images[0]
	if len(image.Data) == 0 {
		return nil, fmt.Errorf("画像生成に失敗: %w", domain.ErrNoImageData)
	}

	artifact, err := s.store.Save(ctx, request.OutputDir, prefix, image)
	if err != nil {
		return nil, fmt.Errorf("画像の保存に失敗: %w", err)
	}

	generatedAt := response.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = s.now()
	}

	result := domain.ImageGenerationResult{
		RequestID:   requestID,
		Artifact:    artifact,
		Prompt:      request.Prompt,
		Model:       apiRequest.Model,
		Mode:        mode,
		Notes:       response.Notes,
		GeneratedAt: generatedAt,
	}

	log.Info().
		Str("path", artifact.Path).
		Int64("bytes", artifact.Bytes).
		Msg("画像を保存しました")

	s.afterSave(ctx, log, result)
	return &result, nil
}

// prepare は、リクエストを検証してAPIに送る内容を組み立てます
func (s *ImageGenerationService) prepare(request domain.ImageGenerationRequest) (domain.ImageRequest, domain.GenerationMode, string, error) {
	prompt, err := domain.NewImagePrompt(request.Prompt)
	if err != nil {
		return domain.ImageRequest{}, "", "", fmt.Errorf("プロンプトの検証に失敗: %w", err)
	}

	model := request.Model
	if model == "" {
		model = domain.DefaultModelID
	}
	if err := model.Validate(); err != nil {
		return domain.ImageRequest{}, "", "", err
	}

	mode := request.Mode
	if mode == "" {
		mode = domain.ModeGenerate
	}
	if request.Reference != nil && mode == domain.ModeGenerate {
		mode = domain.ModeStyle
	}
	if mode.RequiresReference() && request.Reference == nil {
		return domain.ImageRequest{}, "", "", fmt.Errorf("%w: mode=%s", domain.ErrReferenceRequired, mode)
	}
	if request.Reference != nil && !model.SupportsReferenceImages() {
		return domain.ImageRequest{}, "", "", fmt.Errorf("%w: %s", domain.ErrReferenceUnsupported, model)
	}

	if request.OutputDir == "" {
		return domain.ImageRequest{}, "", "", errors.New("出力先ディレクトリが指定されていません")
	}
	prefix := request.Prefix
	if prefix == "" {
		prefix = mode.DefaultPrefix()
	}
	if err := domain.ValidatePrefix(prefix); err != nil {
		return domain.ImageRequest{}, "", "", err
	}

	text := prompt.Content()
	if request.Style != "" {
		style, err := domain.FindStyle(request.Style)
		if err != nil {
			return domain.ImageRequest{}, "", "", err
		}
		text = domain.ApplyStyle(text, style)
	}
	text = domain.BuildModePrompt(mode, text)
	if mode == domain.ModeStyle {
		text += "\n\n" + domain.StyleMatchInstruction(request.StyleDescription)
	}

	return domain.ImageRequest{
		Prompt:      text,
		Model:       model,
		Reference:   request.Reference,
		AspectRatio: request.AspectRatio,
	}, mode, prefix, nil
}

// afterSave は、保存済みの画像を共有・記録します。ここでの失敗は生成結果に影響しません
func (s *ImageGenerationService) afterSave(ctx context.Context, log zerolog.Logger, result domain.ImageGenerationResult) {
	for _, p := range s.publishers {
		if err := p.Publish(ctx, result); err != nil {
			log.Warn().Err(err).Msg("画像の共有に失敗しました")
		}
	}
	if s.history != nil {
		if err := s.history.Record(ctx, result); err != nil {
			log.Warn().Err(err).Msg("生成履歴の記録に失敗しました")
		}
	}
}

// GetSupportedModels は、サポートされているモデルのリストを返します
func (s *ImageGenerationService) GetSupportedModels() []domain.ModelInfo {
	return domain.AllModels()
}

// GetSupportedStyles は、サポートされているスタイルのリストを返します
func (s *ImageGenerationService) GetSupportedStyles() []domain.Style {
	return domain.AllStyles()
}
