package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fondos/internal/core"
	applog "fondos/internal/log"

	_ "modernc.org/sqlite"
)

// SQLite stores each collection as one JSON document row in the documents
// table. Saves are transactional upserts: either the new document replaces
// the old one completely or the old one survives.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLite) LoadPrograms(ctx context.Context) ([]core.Program, error) {
	data, err := s.loadDoc(ctx, KeyPrograms)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	programs, err := core.DecodePrograms(data)
	if err != nil {
		s.warnCorrupt(KeyPrograms, err)
		return nil, nil
	}
	return programs, nil
}

func (s *SQLite) SavePrograms(ctx context.Context, programs []core.Program) error {
	data, err := core.EncodePrograms(programs)
	if err != nil {
		return fmt.Errorf("encode programs: %w", err)
	}
	return s.saveDoc(ctx, KeyPrograms, data)
}

func (s *SQLite) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	data, err := s.loadDoc(ctx, KeyTransactions)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	txs, err := core.DecodeTransactions(data)
	if err != nil {
		s.warnCorrupt(KeyTransactions, err)
		return nil, nil
	}
	return txs, nil
}

func (s *SQLite) SaveTransactions(ctx context.Context, txs []core.Transaction) error {
	data, err := core.EncodeTransactions(txs)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	return s.saveDoc(ctx, KeyTransactions, data)
}

func (s *SQLite) loadDoc(ctx context.Context, key string) ([]byte, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM documents WHERE key = ?`, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", key, err)
	}
	return doc, nil
}

func (s *SQLite) saveDoc(ctx context.Context, key string, data []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save %s: %w", key, err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (key, doc, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		key, data)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("save document %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) warnCorrupt(key string, err error) {
	slog.Warn("Corrupt document, treating as empty",
		applog.FieldComponent, applog.ComponentStore,
		applog.FieldKey, key,
		applog.FieldError, err.Error())
}
