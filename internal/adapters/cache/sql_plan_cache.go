package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"solar-cleaning-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLPlanCache is a Postgres-backed PlanCache for deployments without Redis.
// Expired rows are ignored on read and overwritten on the next Put.
type SQLPlanCache struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewSQLPlanCache(db *sql.DB) *SQLPlanCache {
	return &SQLPlanCache{DB: db, Now: time.Now}
}

func (s *SQLPlanCache) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Fetch a cached payload that has not yet expired.
func (s *SQLPlanCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("plan cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	q := `
	SELECT payload
	FROM plan_cache
	WHERE cache_key = $1
		AND expires_at > $2;
	`

	var payload []byte
	err = s.DB.QueryRowContext(ctx, q, key, s.now()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache: query plan_cache table: %w", err)
	}

	return payload, true, nil
}

// Store a payload for ttl, replacing any previous entry for key.
func (s *SQLPlanCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "plan.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("plan cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert plan cache: key must not be empty")
	}
	if ttl <= 0 {
		return nil
	}

	q := `
	INSERT INTO plan_cache (cache_key, payload, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		expires_at = EXCLUDED.expires_at;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, payload, s.now().Add(ttl)); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}

	return nil
}

// Purge deletes expired entries and reports how many were removed.
func (s *SQLPlanCache) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("plan cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM plan_cache WHERE expires_at <= $1;`, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge plan cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge plan cache: rows affected: %w", err)
	}
	return n, nil
}
