package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

const entitiesTable = "entities"

type sqliteEntityStore struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLiteEntityStore returns the [LocalEntityStore] over the entities table.
func NewSQLiteEntityStore(db *DB, log *logger.Logger) LocalEntityStore {
	return &sqliteEntityStore{
		DB:     db,
		logger: log,
		now:    time.Now,
	}
}

func (e *sqliteEntityStore) Get(ctx context.Context, entityType, entityID string) (models.Record, error) {
	query, args, err := sq.Select("data").
		From(entitiesTable).
		Where(sq.Eq{"entity_type": entityType, "entity_id": entityID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var data []byte
	if err = e.DB.QueryRowContext(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		e.logger.Err(err).
			Str("func", "sqliteEntityStore.Get").
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("failed to read entity")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var record models.Record
	if err = decodeJSON(data, &record); err != nil {
		e.logger.Err(err).
			Str("func", "sqliteEntityStore.Get").
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("stored entity is not valid JSON")
		return nil, err
	}

	return record, nil
}

func (e *sqliteEntityStore) Upsert(ctx context.Context, entityType, entityID string, record models.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	query, args, err := sq.Insert(entitiesTable).
		Columns("entity_type", "entity_id", "data", "updated_at").
		Values(entityType, entityID, data, e.now().UTC()).
		Suffix("ON CONFLICT (entity_type, entity_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = e.DB.ExecContext(ctx, query, args...); err != nil {
		e.logger.Err(err).
			Str("func", "sqliteEntityStore.Upsert").
			Str("entity_type", entityType).
			Str("entity_id", entityID).
			Msg("failed to upsert entity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// decodeJSON keeps numbers as json.Number so large integers survive a round
// trip through the store.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	return nil
}
