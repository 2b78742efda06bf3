package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"geminiimage/internal/domain"
	"geminiimage/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Gemini: config.GeminiConfig{
			APIKey:       "test-api-key",
			ModelName:    "gemini-2.5-flash-image",
			MaxRetries:   2,
			RetryBackoff: time.Second,
		},
		Output: config.OutputConfig{
			Dir:         "output",
			Prefix:      "generated",
			ProjectsDir: "projects",
		},
		App: config.AppConfig{
			RequestTimeout: 2 * time.Minute,
			LogLevel:       "info",
			LogFormat:      "console",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "有効な設定",
			mutate: func(c *Config) {},
		},
		{
			name:    "Gemini APIKeyが空",
			mutate:  func(c *Config) { c.Gemini.APIKey = "" },
			wantErr: true,
			errMsg:  "GEMINI_API_KEY が設定されていません",
		},
		{
			name:    "未知のモデル",
			mutate:  func(c *Config) { c.Gemini.ModelName = "dall-e-3" },
			wantErr: true,
		},
		{
			name:    "MaxRetriesが負の値",
			mutate:  func(c *Config) { c.Gemini.MaxRetries = -1 },
			wantErr: true,
			errMsg:  "GEMINI_MAX_RETRIES は0から10までの整数である必要があります",
		},
		{
			name:    "MaxRetriesが上限超過",
			mutate:  func(c *Config) { c.Gemini.MaxRetries = 64 },
			wantErr: true,
			errMsg:  "GEMINI_MAX_RETRIES は0から10までの整数である必要があります",
		},
		{
			name:   "MaxRetriesが上限ちょうど",
			mutate: func(c *Config) { c.Gemini.MaxRetries = config.MaxRetriesLimit },
		},
		{
			name:    "RetryBackoffが0",
			mutate:  func(c *Config) { c.Gemini.RetryBackoff = 0 },
			wantErr: true,
			errMsg:  "GEMINI_RETRY_BACKOFF は正の値である必要があります",
		},
		{
			name:    "OutputDirが空",
			mutate:  func(c *Config) { c.Output.Dir = "" },
			wantErr: true,
			errMsg:  "OUTPUT_DIR が設定されていません",
		},
		{
			name:    "Prefixにパス区切り",
			mutate:  func(c *Config) { c.Output.Prefix = "../x" },
			wantErr: true,
		},
		{
			name:    "RequestTimeoutが0以下",
			mutate:  func(c *Config) { c.App.RequestTimeout = 0 },
			wantErr: true,
			errMsg:  "REQUEST_TIMEOUT は正の値である必要があります",
		},
		{
			name:    "LogFormatが不正",
			mutate:  func(c *Config) { c.App.LogFormat = "xml" },
			wantErr: true,
		},
		{
			name:    "Discord設定が片方のみ",
			mutate:  func(c *Config) { c.Discord.BotToken = "token" },
			wantErr: true,
			errMsg:  "DISCORD_BOT_TOKEN と DISCORD_CHANNEL_ID は両方設定する必要があります",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, err.Error())
			}
		})
	}
}

func TestConfig_Validate_MissingAPIKeyIsSentinel(t *testing.T) {
	c := validConfig()
	c.Gemini.APIKey = ""

	assert.ErrorIs(t, c.Validate(), domain.ErrMissingAPIKey)
}

// unsetEnv は、テスト終了時に元の値へ戻るように環境変数を未設定にします
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_FromEnvFile(t *testing.T) {
	unsetEnv(t, "GEMINI_API_KEY", "GEMINI_IMAGE_MODEL", "GEMINI_MAX_RETRIES", "OUTPUT_DIR", "REQUEST_TIMEOUT")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "GEMINI_API_KEY=from-file\nGEMINI_IMAGE_MODEL=imagen-4.0-generate-001\nGEMINI_MAX_RETRIES=5\nREQUEST_TIMEOUT=45s\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	c, err := Load(envFile)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, "from-file", c.Gemini.APIKey)
	assert.Equal(t, "imagen-4.0-generate-001", c.Gemini.ModelName)
	assert.Equal(t, 5, c.Gemini.MaxRetries)
	assert.Equal(t, 45*time.Second, c.App.RequestTimeout)
	assert.Equal(t, "output", c.Output.Dir)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Gemini.APIKey)
}

func TestLoad_MissingAPIKeyFailsValidation(t *testing.T) {
	unsetEnv(t, "GEMINI_API_KEY")

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.ErrorIs(t, c.Validate(), domain.ErrMissingAPIKey)
}

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_ENV_VAR", "")

	// デフォルト値のテスト
	assert.Equal(t, "default", getEnvOrDefault("TEST_ENV_VAR", "default"))

	// 環境変数が設定されている場合のテスト
	t.Setenv("TEST_ENV_VAR", "test-value")
	assert.Equal(t, "test-value", getEnvOrDefault("TEST_ENV_VAR", "default"))
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	t.Setenv("TEST_INT_VAR", "")
	assert.Equal(t, 42, getEnvAsIntOrDefault("TEST_INT_VAR", 42))

	t.Setenv("TEST_INT_VAR", "123")
	assert.Equal(t, 123, getEnvAsIntOrDefault("TEST_INT_VAR", 42))

	// 無効な値の場合はデフォルト値
	t.Setenv("TEST_INT_VAR", "invalid")
	assert.Equal(t, 42, getEnvAsIntOrDefault("TEST_INT_VAR", 42))
}

func TestGetEnvAsDurationOrDefault(t *testing.T) {
	defaultDuration := 30 * time.Second

	t.Setenv("TEST_DURATION_VAR", "")
	assert.Equal(t, defaultDuration, getEnvAsDurationOrDefault("TEST_DURATION_VAR", defaultDuration))

	t.Setenv("TEST_DURATION_VAR", "60s")
	assert.Equal(t, 60*time.Second, getEnvAsDurationOrDefault("TEST_DURATION_VAR", defaultDuration))

	t.Setenv("TEST_DURATION_VAR", "invalid")
	assert.Equal(t, defaultDuration, getEnvAsDurationOrDefault("TEST_DURATION_VAR", defaultDuration))
}
