package config

import "time"

// GeminiConfig は、Gemini API関連の設定を定義します
type GeminiConfig struct {
	APIKey       string
	ModelName    string        // 既定の画像生成モデル
	BaseURL      string        // APIエンドポイントの上書き（空の場合は既定）
	MaxRetries   int           // 最大リトライ回数
	RetryBackoff time.Duration // リトライ間隔の初期値（指数的に増加）
}

// MaxRetriesLimit は、GEMINI_MAX_RETRIES に指定できる上限です
const MaxRetriesLimit = 10

// DefaultGeminiConfig は、デフォルトのGemini設定を返します
func DefaultGeminiConfig() *GeminiConfig {
	return &GeminiConfig{
		ModelName:    "gemini-2.5-flash-image",
		MaxRetries:   2,
		RetryBackoff: time.Second,
	}
}

// OutputConfig は、画像の保存先に関する設定を定義します
type OutputConfig struct {
	Dir         string
	Prefix      string
	ProjectsDir string
}

// AppConfig は、CLIの実行に関する設定を定義します
type AppConfig struct {
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string // "console" または "json"
}

// DiscordConfig は、生成画像をDiscordに投稿するための設定を定義します
type DiscordConfig struct {
	BotToken  string
	ChannelID string
}

// Enabled は、Discordへの投稿が有効かを返します
func (c DiscordConfig) Enabled() bool {
	return c.BotToken != "" && c.ChannelID != ""
}

// HistoryConfig は、生成履歴の記録先を定義します
type HistoryConfig struct {
	DatabaseURL string
}

// Enabled は、履歴の記録が有効かを返します
func (c HistoryConfig) Enabled() bool {
	return c.DatabaseURL != ""
}
