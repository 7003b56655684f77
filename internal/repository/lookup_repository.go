package repository

import (
	"context"
	"fmt"
	"time"

	"hiper-bot/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const lookupTable = "keyword_lookups"

const lookupSchema = `CREATE TABLE IF NOT EXISTS keyword_lookups (
	keyword      TEXT        NOT NULL,
	outcome      TEXT        NOT NULL,
	count        BIGINT      NOT NULL DEFAULT 0,
	last_seen_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (keyword, outcome)
)`

// LookupRepository keeps per-keyword resolution counts.
type LookupRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewLookupRepository(db *pgxpool.Pool, logger *zap.Logger) *LookupRepository {
	return &LookupRepository{
		db:     db,
		logger: logger,
	}
}

func (r *LookupRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, lookupSchema); err != nil {
		return fmt.Errorf("failed to create %s: %w", lookupTable, err)
	}
	return nil
}

// Record bumps the counter of every keyword for outcome. An empty keyword list
// is counted under models.NoKeyword.
func (r *LookupRepository) Record(ctx context.Context, keywords []string, outcome models.LookupOutcome, at time.Time) error {
	sql, args, err := buildRecordQuery(keywords, outcome, at)
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to record keyword lookup: %w", err)
	}

	r.logger.Debug("Keyword lookup recorded",
		zap.Strings("keywords", keywords),
		zap.String("outcome", string(outcome)),
	)
	return nil
}

func (r *LookupRepository) List(ctx context.Context, limit int) ([]models.KeywordLookup, error) {
	sql, args, err := buildListQuery(limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list keyword lookups: %w", err)
	}
	defer rows.Close()

	var results []models.KeywordLookup
	for rows.Next() {
		var lookup models.KeywordLookup
		var outcome string
		if err := rows.Scan(&lookup.Keyword, &outcome, &lookup.Count, &lookup.LastSeenAt); err != nil {
			return nil, err
		}
		lookup.Outcome = models.LookupOutcome(outcome)
		results = append(results, lookup)
	}

	return results, rows.Err()
}

func buildRecordQuery(keywords []string, outcome models.LookupOutcome, at time.Time) (string, []interface{}, error) {
	if len(keywords) == 0 {
		keywords = []string{models.NoKeyword}
	}

	query := squirrel.Insert(lookupTable).
		Columns("keyword", "outcome", "count", "last_seen_at").
		PlaceholderFormat(squirrel.Dollar)

	seen := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		if _, dup := seen[keyword]; dup {
			continue
		}
		seen[keyword] = struct{}{}
		query = query.Values(keyword, string(outcome), 1, at)
	}

	query = query.Suffix("ON CONFLICT (keyword, outcome) DO UPDATE SET " +
		"count = " + lookupTable + ".count + 1, last_seen_at = EXCLUDED.last_seen_at")

	return query.ToSql()
}

func buildListQuery(limit int) (string, []interface{}, error) {
	if limit <= 0 {
		limit = 50
	}

	return squirrel.Select("keyword", "outcome", "count", "last_seen_at").
		From(lookupTable).
		OrderBy("count DESC", "keyword ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
