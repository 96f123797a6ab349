package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const kvStateTable = "kv_state"

// SQLiteStore is a [KeyValueStore] over the kv_state table of the local
// SQLite database. The connection is owned by the caller; Close only detaches
// the store.
type SQLiteStore struct {
	db     *DB
	closed atomic.Bool
	now    func() time.Time
}

// NewSQLiteStore returns a store over an already migrated database.
func NewSQLiteStore(db *DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if s.closed.Load() {
		return nil, ErrStorageClosed
	}

	query, args, err := sq.Select("state_value").
		From(kvStateTable).
		Where(sq.Eq{"state_key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	if err = s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.db.logger.Err(err).
			Str("func", "SQLiteStore.Get").
			Str("key", key).
			Msg("failed to read state value")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if s.closed.Load() {
		return ErrStorageClosed
	}

	query, args, err := sq.Insert(kvStateTable).
		Columns("state_key", "state_value", "updated_at").
		Values(key, value, s.now().UTC()).
		Suffix("ON CONFLICT (state_key) DO UPDATE SET state_value = excluded.state_value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.db.logger.Err(err).
			Str("func", "SQLiteStore.Set").
			Str("key", key).
			Msg("failed to upsert state value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if s.closed.Load() {
		return ErrStorageClosed
	}

	query, args, err := sq.Delete(kvStateTable).
		Where(sq.Eq{"state_key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.db.logger.Err(err).
			Str("func", "SQLiteStore.Delete").
			Str("key", key).
			Msg("failed to delete state value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *SQLiteStore) List(ctx context.Context, prefix string) ([]KeyValue, error) {
	if s.closed.Load() {
		return nil, ErrStorageClosed
	}

	query, args, err := sq.Select("state_key", "state_value").
		From(kvStateTable).
		Where(sq.Expr(`state_key LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%")).
		OrderBy("state_key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.db.logger.Err(err).
			Str("func", "SQLiteStore.List").
			Str("prefix", prefix).
			Msg("failed to query state values")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var out []KeyValue
	for rows.Next() {
		var kv KeyValue
		if err = rows.Scan(&kv.Key, &kv.Value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		out = append(out, kv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return out, nil
}

// Close detaches the store; the shared connection stays open.
func (s *SQLiteStore) Close() error {
	s.closed.Store(true)
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
