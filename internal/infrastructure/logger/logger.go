package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New は、CLI用のzerolog.Loggerを作成します。
// formatが"json"以外の場合は人が読みやすいコンソール形式で出力します
func New(out io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
