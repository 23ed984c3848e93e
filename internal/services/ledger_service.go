// Package services orchestrates entity lifecycle over the record store.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fondos/internal/core"
	applog "fondos/internal/log"
	"fondos/internal/store"
)

var (
	ErrProgramNotFound     = errors.New("program not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrProgramGhosted      = errors.New("program is ghosted")
	ErrUnknownKind         = errors.New("unknown transaction kind")
)

// TransactionParams carries the replaceable fields of a transaction. Kind
// selects the variant; Source applies to income, ExpenseType and
// InvoiceNumber to expenses.
type TransactionParams struct {
	ProgramID     string
	Kind          core.Kind
	Amount        decimal.Decimal
	Date          core.Date
	Source        string
	ExpenseType   string
	InvoiceNumber string
}

// Ledger owns the in-memory collections and keeps the record store in step:
// loaded once at startup, saved after every mutation. A failed save is
// logged and swallowed; the in-memory state stays the source of truth for
// the session. Summaries are recomputed on demand, never cached.
type Ledger struct {
	mu    sync.Mutex
	store store.Store

	programs     []core.Program
	transactions []core.Transaction
}

func NewLedger(ctx context.Context, st store.Store) *Ledger {
	l := &Ledger{store: st}

	programs, err := st.LoadPrograms(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load programs, starting empty",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpLoad,
			applog.FieldError, err.Error())
	}
	txs, err := st.LoadTransactions(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load transactions, starting empty",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpLoad,
			applog.FieldError, err.Error())
	}
	l.programs = programs
	l.transactions = txs

	slog.InfoContext(ctx, "Ledger loaded",
		applog.FieldComponent, applog.ComponentLedger,
		"programs", len(programs),
		"transactions", len(txs))
	return l
}

// Programs returns a copy of the program collection.
func (l *Ledger) Programs() []core.Program {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Program(nil), l.programs...)
}

// ActivePrograms returns the non-ghosted programs, the only ones eligible
// for new transactions.
func (l *Ledger) ActivePrograms() []core.Program {
	l.mu.Lock()
	defer l.mu.Unlock()
	var active []core.Program
	for _, p := range l.programs {
		if !p.Ghosted {
			active = append(active, p)
		}
	}
	return active
}

// ProgramByID looks a program up; the second result reports whether it
// exists.
func (l *Ledger) ProgramByID(id string) (core.Program, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.findProgram(id)
}

// AddProgram creates a program with a fresh identity.
func (l *Ledger) AddProgram(ctx context.Context, name string, feePct decimal.Decimal) (core.Program, error) {
	p := core.Program{ID: uuid.NewString(), Name: name, AdminFeePct: feePct}
	if err := p.Validate(); err != nil {
		return core.Program{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.programs = append(l.programs, p)
	l.persistPrograms(ctx)

	slog.InfoContext(ctx, "Program created",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpCreate,
		applog.FieldProgramID, p.ID,
		applog.FieldProgramName, p.Name)
	return p, nil
}

// UpdateProgram replaces name and fee percentage, preserving identity and
// ghost state.
func (l *Ledger) UpdateProgram(ctx context.Context, id, name string, feePct decimal.Decimal) (core.Program, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.programIndex(id)
	if i < 0 {
		return core.Program{}, ErrProgramNotFound
	}
	updated := l.programs[i]
	updated.Name = name
	updated.AdminFeePct = feePct
	if err := updated.Validate(); err != nil {
		return core.Program{}, err
	}
	l.programs[i] = updated
	l.persistPrograms(ctx)

	slog.InfoContext(ctx, "Program updated",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldProgramID, id)
	return updated, nil
}

// ToggleProgramGhost flips the program's ghost flag. Ghosting never deletes:
// historical transactions stay in storage and in exports.
func (l *Ledger) ToggleProgramGhost(ctx context.Context, id string) (core.Program, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.programIndex(id)
	if i < 0 {
		return core.Program{}, ErrProgramNotFound
	}
	l.programs[i].Ghosted = !l.programs[i].Ghosted
	l.persistPrograms(ctx)

	slog.InfoContext(ctx, "Program ghost toggled",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpGhost,
		applog.FieldProgramID, id,
		applog.FieldGhosted, l.programs[i].Ghosted)
	return l.programs[i], nil
}

// Transactions returns a copy of the transaction collection.
func (l *Ledger) Transactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Transaction(nil), l.transactions...)
}

// TransactionsForProgram returns the transactions attached to one program,
// ghosted ones included.
func (l *Ledger) TransactionsForProgram(programID string) []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []core.Transaction
	for _, tx := range l.transactions {
		if tx.Base().ProgramID == programID {
			out = append(out, tx)
		}
	}
	return out
}

// AddTransaction creates a transaction with a fresh identity. The target
// program must exist and be active; the aggregation engine does not
// re-validate this.
func (l *Ledger) AddTransaction(ctx context.Context, params TransactionParams) (core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.findProgram(params.ProgramID)
	if !ok {
		return nil, ErrProgramNotFound
	}
	if p.Ghosted {
		return nil, ErrProgramGhosted
	}

	tx, err := buildTransaction(uuid.NewString(), false, params)
	if err != nil {
		return nil, err
	}
	l.transactions = append(l.transactions, tx)
	l.persistTransactions(ctx)

	slog.InfoContext(ctx, "Transaction created",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpCreate,
		applog.FieldTransactionID, tx.Base().ID,
		applog.FieldProgramID, params.ProgramID,
		applog.FieldKind, string(tx.Kind()),
		applog.FieldAmount, params.Amount.String())
	return tx, nil
}

// UpdateTransaction replaces every field but the identity. The kind is
// replaceable like any other field.
func (l *Ledger) UpdateTransaction(ctx context.Context, id string, params TransactionParams) (core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.transactionIndex(id)
	if i < 0 {
		return nil, ErrTransactionNotFound
	}
	if _, ok := l.findProgram(params.ProgramID); !ok {
		return nil, ErrProgramNotFound
	}

	tx, err := buildTransaction(id, l.transactions[i].Base().Ghosted, params)
	if err != nil {
		return nil, err
	}
	l.transactions[i] = tx
	l.persistTransactions(ctx)

	slog.InfoContext(ctx, "Transaction updated",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldTransactionID, id)
	return tx, nil
}

// ToggleTransactionGhost flips the transaction's ghost flag without touching
// any other field.
func (l *Ledger) ToggleTransactionGhost(ctx context.Context, id string) (core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.transactionIndex(id)
	if i < 0 {
		return nil, ErrTransactionNotFound
	}
	l.transactions[i] = core.WithGhost(l.transactions[i], !l.transactions[i].Base().Ghosted)
	l.persistTransactions(ctx)

	slog.InfoContext(ctx, "Transaction ghost toggled",
		applog.FieldComponent, applog.ComponentLedger,
		applog.FieldOperation, applog.OpGhost,
		applog.FieldTransactionID, id,
		applog.FieldGhosted, l.transactions[i].Base().Ghosted)
	return l.transactions[i], nil
}

// ProgramSummary recomputes the financial summary of one program.
func (l *Ledger) ProgramSummary(id string) (core.ProgramSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.findProgram(id)
	if !ok {
		return core.ProgramSummary{}, ErrProgramNotFound
	}
	return core.SummarizeProgram(p, l.transactions), nil
}

// GlobalSummary recomputes the foundation-wide summary.
func (l *Ledger) GlobalSummary() core.GlobalSummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return core.SummarizeGlobal(l.programs, l.transactions)
}

func (l *Ledger) findProgram(id string) (core.Program, bool) {
	if i := l.programIndex(id); i >= 0 {
		return l.programs[i], true
	}
	return core.Program{}, false
}

func (l *Ledger) programIndex(id string) int {
	for i, p := range l.programs {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) transactionIndex(id string) int {
	for i, tx := range l.transactions {
		if tx.Base().ID == id {
			return i
		}
	}
	return -1
}

// persistPrograms saves after a mutation. Failures are logged and swallowed:
// a broken store must not block further edits.
func (l *Ledger) persistPrograms(ctx context.Context) {
	if err := l.store.SavePrograms(ctx, l.programs); err != nil {
		slog.ErrorContext(ctx, "Failed to save programs, continuing with in-memory state",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpSave,
			applog.FieldKey, store.KeyPrograms,
			applog.FieldError, err.Error())
	}
}

func (l *Ledger) persistTransactions(ctx context.Context) {
	if err := l.store.SaveTransactions(ctx, l.transactions); err != nil {
		slog.ErrorContext(ctx, "Failed to save transactions, continuing with in-memory state",
			applog.FieldComponent, applog.ComponentLedger,
			applog.FieldOperation, applog.OpSave,
			applog.FieldKey, store.KeyTransactions,
			applog.FieldError, err.Error())
	}
}

func buildTransaction(id string, ghosted bool, params TransactionParams) (core.Transaction, error) {
	rec := core.Record{
		ID:        id,
		ProgramID: params.ProgramID,
		Amount:    params.Amount,
		Date:      params.Date,
		Ghosted:   ghosted,
	}
	var tx core.Transaction
	switch params.Kind {
	case core.KindIncome:
		tx = core.Income{Record: rec, Source: params.Source}
	case core.KindExpense:
		tx = core.Expense{Record: rec, ExpenseType: params.ExpenseType, InvoiceNumber: params.InvoiceNumber}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, params.Kind)
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}
