package discord

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"geminiimage/internal/domain"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// maxPromptPreview は、投稿メッセージに含めるプロンプトの最大文字数です
const maxPromptPreview = 300

// sendFunc は、チャンネルにファイル付きメッセージを送信する関数です
type sendFunc func(channelID, content, name string, r io.Reader) error

// ArtifactPublisher は、保存済みの画像をDiscordのチャンネルに投稿します
type ArtifactPublisher struct {
	channelID string
	send      sendFunc
	logger    zerolog.Logger
}

// NewArtifactPublisher は、Botトークンから新しいArtifactPublisherを作成します。
// Gatewayには接続せず、REST APIのみを使用します
func NewArtifactPublisher(botToken, channelID string, logger zerolog.Logger) (*ArtifactPublisher, error) {
	if botToken == "" || channelID == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN と DISCORD_CHANNEL_ID の両方が必要です")
	}

	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("Discordセッションの作成に失敗: %w", err)
	}

	send := func(channelID, content, name string, r io.Reader) error {
		_, err := session.ChannelFileSendWithMessage(channelID, content, name, r)
		return err
	}
	return newArtifactPublisher(channelID, send, logger), nil
}

func newArtifactPublisher(channelID string, send sendFunc, logger zerolog.Logger) *ArtifactPublisher {
	return &ArtifactPublisher{
		channelID: channelID,
		send:      send,
		logger:    logger,
	}
}

// Publish は、画像ファイルとプロンプトの要約をチャンネルに投稿します
func (p *ArtifactPublisher) Publish(ctx context.Context, result domain.ImageGenerationResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(result.Artifact.Path)
	if err != nil {
		return fmt.Errorf("画像ファイルを開けません: %w", err)
	}
	defer f.Close()

	name := filepath.Base(result.Artifact.Path)
	if err := p.send(p.channelID, formatMessage(result), name, f); err != nil {
		return fmt.Errorf("Discordへの投稿に失敗: %w", err)
	}

	p.logger.Info().
		Str("channel_id", p.channelID).
		Str("file", name).
		Msg("Discordに画像を投稿しました")
	return nil
}

// formatMessage は、投稿に添えるメッセージを作成します
func formatMessage(result domain.ImageGenerationResult) string {
	var b strings.Builder
	b.WriteString("🖼️ 画像を生成しました\n")
	fmt.Fprintf(&b, "モデル: `%s`\n", result.Model)
	if result.Mode != "" && result.Mode != domain.ModeGenerate {
		fmt.Fprintf(&b, "モード: `%s`\n", result.Mode)
	}
	fmt.Fprintf(&b, "プロンプト: %s", truncate(strings.TrimSpace(result.Prompt), maxPromptPreview))
	return b.String()
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "…"
}
