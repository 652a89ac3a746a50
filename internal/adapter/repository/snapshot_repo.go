package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const snapshotsTable = "resume_snapshots"

// Querier is the subset of *pgxpool.Pool the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresStore keeps one snapshot row per key.
type PostgresStore struct {
	q   Querier
	now func() time.Time
}

func NewPostgresStore(q Querier) *PostgresStore {
	return &PostgresStore{q: q, now: time.Now}
}

// Get returns the stored row for key.
func (r *PostgresStore) Get(ctx context.Context, key string) (*domain.SavedSnapshot, error) {
	query, args, err := psql.
		Select("id", "key", "payload", "created_at", "updated_at").
		From(snapshotsTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var s domain.SavedSnapshot
	err = r.q.QueryRow(ctx, query, args...).Scan(&s.ID, &s.Key, &s.Payload, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", key, err)
	}
	return &s, nil
}

func (r *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	s, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.Payload, nil
}

// Save upserts the payload under key. created_at and id survive updates.
func (r *PostgresStore) Save(ctx context.Context, key string, payload []byte) error {
	now := r.now().UTC()
	query, args, err := psql.
		Insert(snapshotsTable).
		Columns("key", "id", "payload", "created_at", "updated_at").
		Values(key, uuid.New(), payload, now, now).
		Suffix("ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error.
func (r *PostgresStore) Delete(ctx context.Context, key string) error {
	query, args, err := psql.Delete(snapshotsTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, query, args...)
	return err
}
