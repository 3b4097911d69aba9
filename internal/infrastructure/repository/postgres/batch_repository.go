package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/flashnarrative/brandpulse/internal/core/domain"
)

type BatchRepository struct {
	db *sql.DB
}

func NewBatchRepository(db *sql.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *BatchRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082601)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS mention_batches (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	mention_count INTEGER NOT NULL DEFAULT 0,
	skipped_count INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS mentions (
	batch_id TEXT NOT NULL REFERENCES mention_batches(id) ON DELETE CASCADE,
	id TEXT NOT NULL,
	text TEXT NOT NULL,
	source TEXT NOT NULL DEFAULT '',
	published_at TIMESTAMPTZ NOT NULL,
	reach BIGINT NOT NULL DEFAULT 0,
	engagement BIGINT NOT NULL DEFAULT 0,
	sentiment TEXT NOT NULL DEFAULT '',
	theme TEXT NOT NULL DEFAULT '',
	brands JSONB NOT NULL DEFAULT '[]'::jsonb,
	PRIMARY KEY (batch_id, id)
);

CREATE TABLE IF NOT EXISTS analysis_results (
	batch_id TEXT PRIMARY KEY REFERENCES mention_batches(id) ON DELETE CASCADE,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mention_batches_status ON mention_batches(status);
CREATE INDEX IF NOT EXISTS idx_mention_batches_created_at ON mention_batches(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// CreateBatch inserts the batch row and its mentions in one transaction so
// a batch is never visible without its mentions.
func (r *BatchRepository) CreateBatch(ctx context.Context, batch *domain.MentionBatch, mentions []domain.Mention) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO mention_batches (id, status, error_message, mention_count, skipped_count, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`, batch.ID, string(batch.Status), batch.Error, batch.MentionCount, batch.SkippedCount, batch.CreatedAt, batch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for _, m := range mentions {
		brandsJSON, err := json.Marshal(brandsOrEmpty(m.Brands))
		if err != nil {
			return fmt.Errorf("marshal brands: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
INSERT INTO mentions (batch_id, id, text, source, published_at, reach, engagement, sentiment, theme, brands)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`, batch.ID, m.ID, m.Text, m.Source, m.PublishedAt, m.Reach, m.Engagement, string(m.Sentiment), string(m.Theme), brandsJSON)
		if err != nil {
			return fmt.Errorf("insert mention %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch tx: %w", err)
	}
	return nil
}

func (r *BatchRepository) GetBatch(ctx context.Context, id string) (*domain.MentionBatch, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, status, error_message, mention_count, skipped_count, created_at, updated_at
FROM mention_batches
WHERE id = $1
`, id)

	var batch domain.MentionBatch
	var status string
	err := row.Scan(&batch.ID, &status, &batch.Error, &batch.MentionCount, &batch.SkippedCount, &batch.CreatedAt, &batch.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrBatchNotFound, "get batch", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan batch: %w", err)
	}
	batch.Status = domain.BatchStatus(status)
	return &batch, nil
}

func (r *BatchRepository) ListMentions(ctx context.Context, batchID string) ([]domain.Mention, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, text, source, published_at, reach, engagement, sentiment, theme, brands
FROM mentions
WHERE batch_id = $1
ORDER BY id
`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list mentions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Mention, 0)
	for rows.Next() {
		var m domain.Mention
		var sentiment, theme string
		var brandsRaw []byte
		err := rows.Scan(&m.ID, &m.Text, &m.Source, &m.PublishedAt, &m.Reach, &m.Engagement, &sentiment, &theme, &brandsRaw)
		if err != nil {
			return nil, fmt.Errorf("scan mention: %w", err)
		}
		if err := json.Unmarshal(brandsRaw, &m.Brands); err != nil {
			return nil, fmt.Errorf("unmarshal brands: %w", err)
		}
		if len(m.Brands) == 0 {
			m.Brands = nil
		}
		m.Sentiment = domain.SentimentCategory(sentiment)
		m.Theme = domain.ThemeCategory(theme)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mentions: %w", err)
	}
	return out, nil
}

func (r *BatchRepository) UpdateBatchStatus(ctx context.Context, id string, status domain.BatchStatus, errMessage string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE mention_batches
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update batch status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update batch status rows affected: %w", err)
	}
	if rows == 0 {
		return domain.WrapError(domain.ErrBatchNotFound, "update batch status", fmt.Errorf("id=%s", id))
	}
	return nil
}

// SaveAnalysis writes the derived labels back onto the mention rows,
// stores the full result document and records the skipped count, all in
// one transaction.
func (r *BatchRepository) SaveAnalysis(ctx context.Context, batchID string, result *domain.AnalysisResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin analysis tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range result.Mentions {
		brandsJSON, err := json.Marshal(brandsOrEmpty(m.Brands))
		if err != nil {
			return fmt.Errorf("marshal brands: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
UPDATE mentions
SET sentiment = $3, theme = $4, brands = $5
WHERE batch_id = $1 AND id = $2
`, batchID, m.ID, string(m.Sentiment), string(m.Theme), brandsJSON)
		if err != nil {
			return fmt.Errorf("update mention %s labels: %w", m.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO analysis_results (batch_id, result, created_at)
VALUES ($1,$2,$3)
ON CONFLICT (batch_id) DO UPDATE SET result = EXCLUDED.result, created_at = EXCLUDED.created_at
`, batchID, resultJSON, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert analysis result: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
UPDATE mention_batches
SET skipped_count = $2, updated_at = $3
WHERE id = $1
`, batchID, len(result.Skipped), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update batch skipped count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit analysis tx: %w", err)
	}
	return nil
}

func (r *BatchRepository) GetAnalysis(ctx context.Context, batchID string) (*domain.AnalysisResult, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT result
FROM analysis_results
WHERE batch_id = $1
`, batchID)

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrBatchNotFound, "get analysis", fmt.Errorf("batch=%s", batchID))
		}
		return nil, fmt.Errorf("scan analysis result: %w", err)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("unmarshal analysis result: %w", err)
	}
	return &result, nil
}

func brandsOrEmpty(brands []string) []string {
	if brands == nil {
		return []string{}
	}
	return brands
}
