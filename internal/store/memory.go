package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"fondos/internal/core"
	applog "fondos/internal/log"
)

// Memory keeps both collections in process. When constructed with a data
// directory it mirrors every save into <dir>/<key>.json and seeds itself from
// those files at startup.
type Memory struct {
	mu  sync.Mutex
	dir string // empty means volatile

	programs     []core.Program
	transactions []core.Transaction
}

func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryFromDir seeds the store from dir. Missing or unreadable files are
// treated as empty collections.
func NewMemoryFromDir(dir string) *Memory {
	m := &Memory{dir: dir}
	if data, err := os.ReadFile(m.path(KeyPrograms)); err == nil {
		programs, err := core.DecodePrograms(data)
		if err != nil {
			slog.Warn("Corrupt programs document, starting empty",
				applog.FieldComponent, applog.ComponentStore,
				applog.FieldKey, KeyPrograms,
				applog.FieldError, err.Error())
		} else {
			m.programs = programs
		}
	}
	if data, err := os.ReadFile(m.path(KeyTransactions)); err == nil {
		txs, err := core.DecodeTransactions(data)
		if err != nil {
			slog.Warn("Corrupt transactions document, starting empty",
				applog.FieldComponent, applog.ComponentStore,
				applog.FieldKey, KeyTransactions,
				applog.FieldError, err.Error())
		} else {
			m.transactions = txs
		}
	}
	return m
}

func (m *Memory) LoadPrograms(_ context.Context) ([]core.Program, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Program(nil), m.programs...), nil
}

func (m *Memory) SavePrograms(_ context.Context, programs []core.Program) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := core.EncodePrograms(programs)
	if err != nil {
		return fmt.Errorf("encode programs: %w", err)
	}
	if err := m.persist(KeyPrograms, data); err != nil {
		return err
	}
	m.programs = append([]core.Program(nil), programs...)
	return nil
}

func (m *Memory) LoadTransactions(_ context.Context) ([]core.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Transaction(nil), m.transactions...), nil
}

func (m *Memory) SaveTransactions(_ context.Context, txs []core.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := core.EncodeTransactions(txs)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := m.persist(KeyTransactions, data); err != nil {
		return err
	}
	m.transactions = append([]core.Transaction(nil), txs...)
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) path(key string) string {
	return filepath.Join(m.dir, key+".json")
}

// persist writes the document through a temp file and rename so an
// interrupted write cannot clobber the last good document.
func (m *Memory) persist(key string, data []byte) error {
	if m.dir == "" {
		return nil
	}
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	tmp := m.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, m.path(key)); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}
