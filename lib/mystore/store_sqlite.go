package mystore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SqliteStore keeps every entity as a JSON document in a single table, keyed by kind and uid.
type SqliteStore[T any] struct {
	db   *sql.DB
	kind string
}

type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const createEntitiesTable = `CREATE TABLE IF NOT EXISTS entities (
	kind    TEXT NOT NULL,
	uid     TEXT NOT NULL,
	payload TEXT NOT NULL,
	PRIMARY KEY (kind, uid)
)`

func NewSqliteStore[T any](c context.Context, path string) (*SqliteStore[T], func(), error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening sqlite database %s: %w", path, err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(c, createEntitiesTable)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("error creating entities table in %s: %w", path, err)
	}

	return &SqliteStore[T]{
			db:   db,
			kind: kindOf[T](),
		}, func() {
			db.Close()
		}, nil
}

func (s *SqliteStore[T]) executor(c context.Context) sqlExecutor {
	if tx, ok := c.Value(ctxTransactionKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

func (s *SqliteStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	tx, err := s.db.BeginTx(c, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	err = f(context.WithValue(c, ctxTransactionKey{}, tx))
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			return errors.Join(err, rollbackErr)
		}
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

func (s *SqliteStore[T]) Put(c context.Context, uid string, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshalling entity %s with uid %s: %w", s.kind, uid, err)
	}

	_, err = s.executor(c).ExecContext(c,
		`INSERT INTO entities (kind, uid, payload) VALUES (?, ?, ?)
		 ON CONFLICT (kind, uid) DO UPDATE SET payload = excluded.payload`,
		s.kind, uid, string(payload))
	if err != nil {
		return fmt.Errorf("error storing entity %s with uid %s: %w", s.kind, uid, err)
	}

	return nil
}

func (s *SqliteStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	var value T
	var payload string

	err := s.executor(c).QueryRowContext(c,
		`SELECT payload FROM entities WHERE kind = ? AND uid = ?`, s.kind, uid).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return value, false, nil
		}
		return value, false, fmt.Errorf("error fetching entity %s with uid %s: %w", s.kind, uid, err)
	}

	err = json.Unmarshal([]byte(payload), &value)
	if err != nil {
		return value, false, fmt.Errorf("error unmarshalling entity %s with uid %s: %w", s.kind, uid, err)
	}

	return value, true, nil
}

func (s *SqliteStore[T]) List(c context.Context) ([]T, error) {
	rows, err := s.executor(c).QueryContext(c,
		`SELECT payload FROM entities WHERE kind = ? ORDER BY uid`, s.kind)
	if err != nil {
		return nil, fmt.Errorf("error fetching all entities %s: %w", s.kind, err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		var payload string
		err = rows.Scan(&payload)
		if err != nil {
			return nil, fmt.Errorf("error scanning entity %s: %w", s.kind, err)
		}

		var value T
		err = json.Unmarshal([]byte(payload), &value)
		if err != nil {
			return nil, fmt.Errorf("error unmarshalling entity %s: %w", s.kind, err)
		}
		result = append(result, value)
	}

	return result, rows.Err()
}
