package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"

	apperrors "ordertrack/internal/errors"
)

// Store is a whole-value JSON blob store keyed by string paths. Get
// reports absence through its second return value; Set overwrites the
// entire value.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
}

// MySQLStore keeps one row per logical key in a KeyValue table.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *MySQLStore) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS KeyValue (
		path VARCHAR(191) NOT NULL PRIMARY KEY,
		value JSON NOT NULL,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return apperrors.NewStoreError("creating KeyValue table", err)
	}
	return nil
}

func (s *MySQLStore) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	query := `SELECT value FROM KeyValue WHERE path = ?`

	var raw []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.NewStoreError("reading key "+key, err)
	}

	return json.RawMessage(raw), true, nil
}

func (s *MySQLStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	query := `
		INSERT INTO KeyValue (path, value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)`

	if _, err := s.db.ExecContext(ctx, query, key, []byte(value)); err != nil {
		return apperrors.NewStoreError("writing key "+key, err)
	}
	return nil
}
