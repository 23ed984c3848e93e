package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindIncome  Kind = "INGRESO"
	KindExpense Kind = "EGRESO"
)

type (
	// Kind tags a transaction variant. The values match the persisted
	// document format.
	Kind string

	// Date is a calendar day; the time component is always midnight UTC.
	Date struct {
		time.Time
	}

	// Program is a budget line. Income booked against it is charged an
	// administrative fee of AdminFeePct percent.
	Program struct {
		ID          string
		Name        string
		AdminFeePct decimal.Decimal
		Ghosted     bool
	}

	// Record holds the fields shared by both transaction variants.
	Record struct {
		ID        string
		ProgramID string
		Amount    decimal.Decimal
		Date      Date
		Ghosted   bool
	}

	// Income is money entering a program from some source.
	Income struct {
		Record
		Source string
	}

	// Expense is money leaving a program, backed by an invoice.
	Expense struct {
		Record
		ExpenseType   string
		InvoiceNumber string
	}
)

// Transaction is the sum of Income and Expense. The set of implementations
// is sealed; consumers branch with a type switch.
type Transaction interface {
	Base() Record
	Kind() Kind
	Validate() error
}

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidFee       = errors.New("admin fee percentage must be between 0 and 100")
	ErrEmptyName        = errors.New("empty program name")
	ErrEmptyProgramID   = errors.New("empty program id")
	ErrEmptySource      = errors.New("empty income source")
	ErrEmptyExpenseType = errors.New("empty expense type")
)

var hundred = decimal.NewFromInt(100)

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (p Program) Validate() error {
	if len(strings.TrimSpace(p.Name)) == 0 {
		return ErrEmptyName
	}
	if p.AdminFeePct.IsNegative() || p.AdminFeePct.GreaterThan(hundred) {
		return ErrInvalidFee
	}
	return nil
}

func (r Record) Validate() error {
	if len(strings.TrimSpace(r.ProgramID)) == 0 {
		return ErrEmptyProgramID
	}
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return r.Date.Validate()
}

func (i Income) Base() Record { return i.Record }
func (i Income) Kind() Kind   { return KindIncome }

func (i Income) Validate() error {
	if err := i.Record.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(i.Source)) == 0 {
		return ErrEmptySource
	}
	return nil
}

func (e Expense) Base() Record { return e.Record }
func (e Expense) Kind() Kind   { return KindExpense }

func (e Expense) Validate() error {
	if err := e.Record.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.ExpenseType)) == 0 {
		return ErrEmptyExpenseType
	}
	return nil
}

// WithGhost returns a copy of tx with the ghost flag set to the given value.
// Ghosting is the only delete the system has and is always reversible.
func WithGhost(tx Transaction, ghosted bool) Transaction {
	switch t := tx.(type) {
	case Income:
		t.Ghosted = ghosted
		return t
	case Expense:
		t.Ghosted = ghosted
		return t
	default:
		return tx
	}
}
