package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fondos/internal/core"
)

func samplePrograms() []core.Program {
	return []core.Program{
		{ID: "p1", Name: "Salud Infantil", AdminFeePct: decimal.NewFromInt(10)},
		{ID: "p2", Name: "Educación", AdminFeePct: decimal.NewFromInt(5), Ghosted: true},
	}
}

func sampleTransactions() []core.Transaction {
	return []core.Transaction{
		core.Income{
			Record: core.Record{ID: "t1", ProgramID: "p1", Amount: decimal.NewFromInt(1000), Date: core.NewDate(2024, 1, 1)},
			Source: "Donación",
		},
		core.Expense{
			Record:        core.Record{ID: "t2", ProgramID: "p1", Amount: decimal.NewFromInt(200), Date: core.NewDate(2024, 1, 15), Ghosted: true},
			ExpenseType:   "Insumos",
			InvoiceNumber: "A-1",
		},
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	programs, err := m.LoadPrograms(ctx)
	require.NoError(t, err)
	assert.Empty(t, programs)

	require.NoError(t, m.SavePrograms(ctx, samplePrograms()))
	require.NoError(t, m.SaveTransactions(ctx, sampleTransactions()))

	programs, err = m.LoadPrograms(ctx)
	require.NoError(t, err)
	require.Len(t, programs, 2)
	assert.Equal(t, "Salud Infantil", programs[0].Name)

	txs, err := m.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, core.KindExpense, txs[1].Kind())
	assert.True(t, txs[1].Base().Ghosted)
}

func TestMemoryFromDirPersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	m := NewMemoryFromDir(dir)
	require.NoError(t, m.SavePrograms(ctx, samplePrograms()))
	require.NoError(t, m.SaveTransactions(ctx, sampleTransactions()))

	// A fresh store over the same directory sees the saved documents.
	reloaded := NewMemoryFromDir(dir)
	programs, err := reloaded.LoadPrograms(ctx)
	require.NoError(t, err)
	assert.Len(t, programs, 2)

	txs, err := reloaded.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	inc, ok := txs[0].(core.Income)
	require.True(t, ok)
	assert.Equal(t, "Donación", inc.Source)
}

func TestMemoryFromDirCorruptDocumentLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "programs.json"), []byte("{not json"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "transactions.json"), []byte(`[{"type":"OTRO"}]`), 0644))

	m := NewMemoryFromDir(dir)
	programs, err := m.LoadPrograms(ctx)
	require.NoError(t, err)
	assert.Empty(t, programs)

	txs, err := m.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestMemoryLoadReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.SavePrograms(ctx, samplePrograms()))

	programs, err := m.LoadPrograms(ctx)
	require.NoError(t, err)
	programs[0].Name = "mutated"

	again, err := m.LoadPrograms(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Salud Infantil", again[0].Name)
}
