package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestProgramValidate(t *testing.T) {
	cases := []struct {
		name string
		p    Program
		ok   bool
	}{
		{"valid", Program{ID: "p1", Name: "Salud Infantil", AdminFeePct: decimal.NewFromInt(10)}, true},
		{"zero fee", Program{ID: "p1", Name: "Salud", AdminFeePct: decimal.Zero}, true},
		{"full fee", Program{ID: "p1", Name: "Salud", AdminFeePct: decimal.NewFromInt(100)}, true},
		{"blank name", Program{ID: "p1", Name: "   ", AdminFeePct: decimal.NewFromInt(10)}, false},
		{"negative fee", Program{ID: "p1", Name: "Salud", AdminFeePct: decimal.NewFromInt(-1)}, false},
		{"fee over 100", Program{ID: "p1", Name: "Salud", AdminFeePct: decimal.NewFromInt(101)}, false},
	}
	for _, tc := range cases {
		err := tc.p.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: expected ok, got %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	rec := Record{ID: "t1", ProgramID: "p1", Amount: decimal.NewFromInt(1000), Date: NewDate(2024, 1, 1)}

	if err := (Income{Record: rec, Source: "Donación"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Expense{Record: rec, ExpenseType: "Insumos", InvoiceNumber: "A-1"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		Income{Record: rec, Source: ""},
		Expense{Record: rec, ExpenseType: " "},
		Income{Record: Record{ID: "t1", ProgramID: "", Amount: decimal.NewFromInt(1), Date: NewDate(2024, 1, 1)}, Source: "x"},
		Income{Record: Record{ID: "t1", ProgramID: "p1", Amount: decimal.Zero, Date: NewDate(2024, 1, 1)}, Source: "x"},
		Income{Record: Record{ID: "t1", ProgramID: "p1", Amount: decimal.NewFromInt(-5), Date: NewDate(2024, 1, 1)}, Source: "x"},
		Income{Record: Record{ID: "t1", ProgramID: "p1", Amount: decimal.NewFromInt(1), Date: Date{Time: time.Time{}}}, Source: "x"},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestWithGhost(t *testing.T) {
	rec := Record{ID: "t1", ProgramID: "p1", Amount: decimal.NewFromInt(10), Date: NewDate(2024, 1, 1)}
	tx := Transaction(Income{Record: rec, Source: "x"})

	ghosted := WithGhost(tx, true)
	if !ghosted.Base().Ghosted {
		t.Fatalf("expected ghosted")
	}
	if tx.Base().Ghosted {
		t.Fatalf("original must not be mutated")
	}
	back := WithGhost(ghosted, false)
	if back.Base().Ghosted {
		t.Fatalf("expected unghosted")
	}
	if !back.Base().Amount.Equal(rec.Amount) || back.Kind() != KindIncome {
		t.Fatalf("ghost round trip altered fields: %+v", back)
	}
}
