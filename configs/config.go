package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"geminiimage/internal/domain"
	"geminiimage/internal/infrastructure/config"

	"github.com/joho/godotenv"
)

// Config は、アプリケーション全体の設定を定義します
type Config struct {
	Gemini  config.GeminiConfig
	Output  config.OutputConfig
	App     config.AppConfig
	Discord config.DiscordConfig
	History config.HistoryConfig
}

// Load は、.envファイルと環境変数から設定を読み込みます（検証は行いません）。
// envFilesが空の場合はカレントディレクトリの.envを読み込みます
func Load(envFiles ...string) (*Config, error) {
	// 既に設定されている環境変数は上書きされない
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf(".envファイルの読み込みに失敗しました: %w", err)
		}
	}

	defaults := config.DefaultGeminiConfig()

	return &Config{
		Gemini: config.GeminiConfig{
			APIKey:       strings.TrimSpace(getEnvOrDefault("GEMINI_API_KEY", "")),
			ModelName:    getEnvOrDefault("GEMINI_IMAGE_MODEL", defaults.ModelName),
			BaseURL:      getEnvOrDefault("GEMINI_BASE_URL", ""),
			MaxRetries:   getEnvAsIntOrDefault("GEMINI_MAX_RETRIES", defaults.MaxRetries),
			RetryBackoff: getEnvAsDurationOrDefault("GEMINI_RETRY_BACKOFF", defaults.RetryBackoff),
		},
		Output: config.OutputConfig{
			Dir:         getEnvOrDefault("OUTPUT_DIR", "output"),
			Prefix:      getEnvOrDefault("OUTPUT_PREFIX", "generated"),
			ProjectsDir: getEnvOrDefault("PROJECTS_DIR", "projects"),
		},
		App: config.AppConfig{
			RequestTimeout: getEnvAsDurationOrDefault("REQUEST_TIMEOUT", 2*time.Minute),
			LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
			LogFormat:      getEnvOrDefault("LOG_FORMAT", "console"),
		},
		Discord: config.DiscordConfig{
			BotToken:  getEnvOrDefault("DISCORD_BOT_TOKEN", ""),
			ChannelID: getEnvOrDefault("DISCORD_CHANNEL_ID", ""),
		},
		History: config.HistoryConfig{
			DatabaseURL: getEnvOrDefault("HISTORY_DATABASE_URL", ""),
		},
	}, nil
}

// Validate は、設定の妥当性を検証します
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return domain.ErrMissingAPIKey
	}

	if _, err := domain.ParseModelID(c.Gemini.ModelName); err != nil {
		return fmt.Errorf("GEMINI_IMAGE_MODEL が不正です: %w", err)
	}

	if c.Gemini.MaxRetries < 0 || c.Gemini.MaxRetries > config.MaxRetriesLimit {
		return fmt.Errorf("GEMINI_MAX_RETRIES は0から%dまでの整数である必要があります", config.MaxRetriesLimit)
	}

	if c.Gemini.RetryBackoff <= 0 {
		return fmt.Errorf("GEMINI_RETRY_BACKOFF は正の値である必要があります")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("OUTPUT_DIR が設定されていません")
	}

	if err := domain.ValidatePrefix(c.Output.Prefix); err != nil {
		return fmt.Errorf("OUTPUT_PREFIX が不正です: %w", err)
	}

	if c.App.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT は正の値である必要があります")
	}

	if c.App.LogFormat != "console" && c.App.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT は console または json である必要があります")
	}

	if (c.Discord.BotToken == "") != (c.Discord.ChannelID == "") {
		return fmt.Errorf("DISCORD_BOT_TOKEN と DISCORD_CHANNEL_ID は両方設定する必要があります")
	}

	return nil
}

// getEnvOrDefault は、環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は、環境変数を整数として取得し、存在しない場合はデフォルト値を返します
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault は、環境変数を時間として取得し、存在しない場合はデフォルト値を返します
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
