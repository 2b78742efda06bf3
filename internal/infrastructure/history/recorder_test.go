package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"geminiimage/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execCall struct {
	sql  string
	args []any
}

type stubDB struct {
	calls []execCall
	err   error
}

func (s *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, execCall{sql: sql, args: args})
	if s.err != nil {
		return pgconn.CommandTag{}, s.err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestRecorder_EnsureSchema(t *testing.T) {
	db := &stubDB{}
	r := &Recorder{db: db}

	require.NoError(t, r.EnsureSchema(context.Background()))
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].sql, "CREATE TABLE IF NOT EXISTS image_generations")
}

func TestRecorder_Record(t *testing.T) {
	db := &stubDB{}
	r := &Recorder{db: db}
	at := time.Date(2026, 10, 17, 17, 0, 0, 0, time.FixedZone("JST", 9*60*60))

	err := r.Record(context.Background(), domain.ImageGenerationResult{
		RequestID: "req-1",
		Artifact: domain.Artifact{
			Path:     "output/generated_20261017_170000.png",
			Bytes:    42,
			SHA256:   "abc",
			MimeType: "image/png",
		},
		Prompt:      "a red circle",
		Model:       domain.ModelGeminiFlashImage,
		Mode:        domain.ModeGenerate,
		GeneratedAt: at,
	})
	require.NoError(t, err)

	require.Len(t, db.calls, 1)
	call := db.calls[0]
	assert.True(t, strings.Contains(call.sql, "INSERT INTO image_generations"))
	require.Len(t, call.args, 9)
	assert.Equal(t, "req-1", call.args[0])
	assert.Equal(t, "gemini-2.5-flash-image", call.args[1])
	assert.Equal(t, "generate", call.args[2])
	assert.Equal(t, int64(42), call.args[5])
	assert.Equal(t, at.UTC(), call.args[8])
}

func TestRecorder_RecordError(t *testing.T) {
	r := &Recorder{db: &stubDB{err: errors.New("connection reset")}}

	err := r.Record(context.Background(), domain.ImageGenerationResult{RequestID: "req-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestOpen_InvalidURL(t *testing.T) {
	_, err := Open(context.Background(), "://not a url")
	assert.Error(t, err)
}
