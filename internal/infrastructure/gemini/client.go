package gemini

import (
	"context"
	"fmt"

	"geminiimage/internal/domain"
	"geminiimage/internal/infrastructure/config"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// GeminiAPIClient は、Gemini APIとの通信を行うクライアントです
type GeminiAPIClient struct {
	client *genai.Client
	config *config.GeminiConfig
	logger zerolog.Logger
}

// ClientOption は、GeminiAPIClientの任意設定です
type ClientOption func(*GeminiAPIClient)

// WithLogger は、クライアントのロガーを設定します
func WithLogger(l zerolog.Logger) ClientOption {
	return func(g *GeminiAPIClient) {
		g.logger = l
	}
}

// NewGeminiAPIClient は新しいGeminiAPIClientインスタンスを作成します
func NewGeminiAPIClient(apiKey string, geminiConfig *config.GeminiConfig, opts ...ClientOption) (*GeminiAPIClient, error) {
	if apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}
	if geminiConfig == nil {
		geminiConfig = config.DefaultGeminiConfig()
	}

	ctx := context.Background()
	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if geminiConfig.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: geminiConfig.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("Gemini APIクライアントの作成に失敗: %w", err)
	}

	g := &GeminiAPIClient{
		client: client,
		config: geminiConfig,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// GenerateImage は、モデルの種類に応じたAPIで画像を1枚生成します
func (g *GeminiAPIClient) GenerateImage(ctx context.Context, request domain.ImageRequest) (*domain.ImageGenerationResponse, error) {
	model := request.Model
	if model == "" {
		model = domain.ModelID(g.config.ModelName)
	}
	info, ok := model.Info()
	if !ok {
		return nil, model.Validate()
	}

	if request.AspectRatio != "" && info.Backend != domain.BackendImagen {
		g.logger.Warn().Str("aspect_ratio", request.AspectRatio).Msg("アスペクト比の指定はImagenモデルでのみ有効です")
	}

	g.logger.Debug().
		Str("model", model.String()).
		Bool("reference", request.Reference != nil).
		Int("prompt_chars", len(request.Prompt)).
		Msg("Gemini APIに画像生成をリクエスト中")

	return g.retryWithBackoffForImage(ctx, func() (*domain.ImageGenerationResponse, error) {
		if info.Backend == domain.BackendImagen {
			return g.generateWithImagen(ctx, model, request)
		}
		return g.generateWithContent(ctx, model, request)
	})
}

// generateWithContent は、generateContent APIで画像を生成します
func (g *GeminiAPIClient) generateWithContent(ctx context.Context, model domain.ModelID, request domain.ImageRequest) (*domain.ImageGenerationResponse, error) {
	var contents []*genai.Content
	if ref := request.Reference; ref != nil {
		parts := []*genai.Part{
			genai.NewPartFromBytes(ref.Data, ref.MimeType),
			genai.NewPartFromText(request.Prompt),
		}
		contents = []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	} else {
		contents = genai.Text(request.Prompt)
	}

	resp, err := g.client.Models.GenerateContent(ctx, string(model), contents, g.createImageConfig())
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("Gemini APIへのリクエストがタイムアウトしました: %w", err)
		}
		return nil, fmt.Errorf("Gemini APIからの応答取得に失敗: %w", err)
	}

	return g.processImageResponse(resp, request.Prompt, model)
}

// generateWithImagen は、generateImages APIで画像を生成します
func (g *GeminiAPIClient) generateWithImagen(ctx context.Context, model domain.ModelID, request domain.ImageRequest) (*domain.ImageGenerationResponse, error) {
	imageConfig := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    request.AspectRatio,
	}

	resp, err := g.client.Models.GenerateImages(ctx, string(model), request.Prompt, imageConfig)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("Imagen APIへのリクエストがタイムアウトしました: %w", err)
		}
		return nil, fmt.Errorf("Imagen APIからの応答取得に失敗: %w", err)
	}

	return g.processImagenResponse(resp, request.Prompt, model)
}

// Close は、Gemini APIクライアントを閉じます
func (g *GeminiAPIClient) Close() error {
	// genai.ClientにはCloseメソッドがないため、何もしない
	return nil
}
