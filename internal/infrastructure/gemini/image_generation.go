package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"geminiimage/internal/domain"

	"google.golang.org/genai"
)

// retryWithBackoffForImage は、画像生成用の指数バックオフでリトライを実行します
func (g *GeminiAPIClient) retryWithBackoffForImage(ctx context.Context, operation func() (*domain.ImageGenerationResponse, error)) (*domain.ImageGenerationResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			// 指数バックオフ: backoff, backoff*2, backoff*4...
			backoffDuration := g.config.RetryBackoff * time.Duration(1<<uint(attempt-1))
			g.logger.Warn().
				Int("attempt", attempt).
				Int("max_retries", g.config.MaxRetries).
				Dur("backoff", backoffDuration).
				Msg("画像生成をリトライします")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoffDuration):
			}
		}

		result, err := operation()
		if err == nil {
			if attempt > 0 {
				g.logger.Info().Int("attempt", attempt+1).Msg("画像生成リトライ成功")
			}
			return result, nil
		}

		lastErr = err

		// リトライ可能なエラーかチェック
		if !isRetryable(ctx, err) {
			return nil, err
		}

		if attempt < g.config.MaxRetries {
			g.logger.Warn().Err(err).Msg("画像生成でリトライ可能なエラーが発生")
		}
	}

	return nil, fmt.Errorf("画像生成で最大リトライ回数 (%d) に達しました。最後のエラー: %w", g.config.MaxRetries, lastErr)
}

// isRetryable は、一時的なエラーかどうかを判定します。
// レート制限・サーバーエラー・通信エラーのみリトライします
func isRetryable(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if code, ok := apiErrorCode(err); ok {
		return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
	}

	// 接続エラー・応答の途中切断（*url.Error も net.Error を満たす）
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}

// apiErrorCode は、genai.APIErrorのHTTPステータスコードを取り出します
func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}

// createImageConfig は、画像生成設定を作成します
func (g *GeminiAPIClient) createImageConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
		SafetySettings:     createSafetySettings(),
	}
}

// createSafetySettings は、安全フィルター設定を作成します
func createSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		},
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		},
		{
			Category:  genai.HarmCategorySexuallyExplicit,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		},
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockThresholdBlockMediumAndAbove,
		},
	}
}

// processImageResponse は、画像生成レスポンスを処理します
func (g *GeminiAPIClient) processImageResponse(resp *genai.GenerateContentResponse, prompt string, model domain.ModelID) (*domain.ImageGenerationResponse, error) {
	if resp == nil {
		return nil, domain.ErrEmptyResponse
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: プロンプトが拒否されました (%s)", domain.ErrBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return nil, domain.ErrEmptyResponse
	}

	candidate := resp.Candidates[0]

	// FinishReasonをチェックして安全フィルターによるブロックを検出
	switch candidate.FinishReason {
	case "SAFETY", "IMAGE_SAFETY", "PROHIBITED_CONTENT":
		safetyDetails := formatSafetyRatings(candidate.SafetyRatings)
		return nil, fmt.Errorf("%w: 安全フィルターによってブロックされました (%s)。詳細: %s", domain.ErrBlocked, candidate.FinishReason, safetyDetails)
	case "RECITATION":
		return nil, fmt.Errorf("%w: 著作権で保護されたコンテンツが含まれている可能性があります", domain.ErrBlocked)
	case "MAX_TOKENS":
		return nil, fmt.Errorf("%w: より短いプロンプトを試してください", domain.ErrMaxTokens)
	}

	// Contentがnilの場合のチェック
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: FinishReason: %s", domain.ErrNoImageData, candidate.FinishReason)
	}

	now := time.Now()
	var (
		images []domain.GeneratedImage
		notes  []string
	)
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			images = append(images, domain.GeneratedImage{
				Data:        part.InlineData.Data,
				MimeType:    part.InlineData.MIMEType,
				Size:        int64(len(part.InlineData.Data)),
				GeneratedAt: now,
			})
			continue
		}
		if t := strings.TrimSpace(part.Text); t != "" && !part.Thought {
			notes = append(notes, t)
		}
	}

	if len(images) == 0 {
		if len(notes) > 0 {
			return nil, fmt.Errorf("%w: モデルの応答: %s", domain.ErrNoImageData, strings.Join(notes, " "))
		}
		return nil, domain.ErrNoImageData
	}

	g.logger.Debug().Int("images", len(images)).Int("notes", len(notes)).Msg("Gemini APIから画像を取得")

	return &domain.ImageGenerationResponse{
		Images:      images,
		Notes:       notes,
		Prompt:      prompt,
		Model:       model,
		GeneratedAt: now,
	}, nil
}

// processImagenResponse は、Imagenのレスポンスを処理します
func (g *GeminiAPIClient) processImagenResponse(resp *genai.GenerateImagesResponse, prompt string, model domain.ModelID) (*domain.ImageGenerationResponse, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, domain.ErrEmptyResponse
	}

	now := time.Now()
	var (
		images   []domain.GeneratedImage
		filtered []string
	)
	for _, generated := range resp.GeneratedImages {
		if generated == nil {
			continue
		}
		if generated.RAIFilteredReason != "" {
			filtered = append(filtered, generated.RAIFilteredReason)
		}
		if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
			continue
		}
		images = append(images, domain.GeneratedImage{
			Data:        generated.Image.ImageBytes,
			MimeType:    generated.Image.MIMEType,
			Size:        int64(len(generated.Image.ImageBytes)),
			GeneratedAt: now,
		})
	}

	if len(images) == 0 {
		if len(filtered) > 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrBlocked, strings.Join(filtered, "; "))
		}
		return nil, domain.ErrNoImageData
	}

	return &domain.ImageGenerationResponse{
		Images:      images,
		Prompt:      prompt,
		Model:       model,
		GeneratedAt: now,
	}, nil
}

// formatSafetyRatings は、SafetyRatingsの詳細情報をフォーマットします
func formatSafetyRatings(ratings []*genai.SafetyRating) string {
	var details []string
	for _, rating := range ratings {
		if rating != nil {
			details = append(details, fmt.Sprintf("%s: %s", translateSafetyCategory(rating.Category), translateSafetyProbability(rating.Probability)))
		}
	}
	if len(details) == 0 {
		return "詳細情報なし"
	}
	return strings.Join(details, ", ")
}

// translateSafetyCategory は、SafetyCategoryを日本語に翻訳します
func translateSafetyCategory(category genai.HarmCategory) string {
	switch category {
	case genai.HarmCategoryHarassment:
		return "ハラスメント"
	case genai.HarmCategoryHateSpeech:
		return "ヘイトスピーチ"
	case genai.HarmCategorySexuallyExplicit:
		return "性的表現"
	case genai.HarmCategoryDangerousContent:
		return "危険なコンテンツ"
	default:
		return string(category)
	}
}

// translateSafetyProbability は、SafetyProbabilityを日本語に翻訳します
func translateSafetyProbability(probability genai.HarmProbability) string {
	switch probability {
	case genai.HarmProbabilityNegligible:
		return "無視できるレベル"
	case genai.HarmProbabilityLow:
		return "低レベル"
	case genai.HarmProbabilityMedium:
		return "中レベル"
	case genai.HarmProbabilityHigh:
		return "高レベル"
	default:
		return string(probability)
	}
}
