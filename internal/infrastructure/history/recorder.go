package history

import (
	"context"
	"fmt"
	"time"

	"geminiimage/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS image_generations (
	request_id  TEXT PRIMARY KEY,
	model       TEXT NOT NULL,
	mode        TEXT NOT NULL,
	prompt      TEXT NOT NULL,
	path        TEXT NOT NULL,
	bytes       BIGINT NOT NULL,
	sha256      TEXT NOT NULL,
	mime_type   TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
`

const insertSQL = `
INSERT INTO image_generations (request_id, model, mode, prompt, path, bytes, sha256, mime_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (request_id) DO NOTHING;
`

// execer は、履歴の書き込みに必要なDB操作です
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Recorder は、生成履歴をPostgreSQLに記録します
type Recorder struct {
	db   execer
	pool *pgxpool.Pool
}

// Open は、データベースに接続してスキーマを作成したRecorderを返します
func Open(ctx context.Context, databaseURL string) (*Recorder, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("データベースURLの解析に失敗: %w", err)
	}
	poolCfg.MaxConns = 2
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("データベースへの接続に失敗: %w", err)
	}

	r := &Recorder{db: pool, pool: pool}
	if err := r.EnsureSchema(connectCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return r, nil
}

// EnsureSchema は、履歴テーブルが無ければ作成します
func (r *Recorder) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("履歴テーブルの作成に失敗: %w", err)
	}
	return nil
}

// Record は、1回分の生成結果を記録します
func (r *Recorder) Record(ctx context.Context, result domain.ImageGenerationResult) error {
	createdAt := result.GeneratedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.Exec(ctx, insertSQL,
		result.RequestID,
		result.Model.String(),
		string(result.Mode),
		result.Prompt,
		result.Artifact.Path,
		result.Artifact.Bytes,
		result.Artifact.SHA256,
		result.Artifact.MimeType,
		createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("生成履歴の記録に失敗: %w", err)
	}
	return nil
}

// Close は、コネクションプールを閉じます
func (r *Recorder) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
