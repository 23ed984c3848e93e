package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Persisted layout: two JSON arrays keyed independently, transactions tagged
// with a "type" discriminator.

type programDoc struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	AdminFeePct decimal.Decimal `json:"adminFeePercentage"`
	IsGhosted   bool            `json:"isGhosted"`
}

type transactionDoc struct {
	ID            string          `json:"id"`
	ProgramID     string          `json:"programId"`
	Type          Kind            `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          Date            `json:"date"`
	IsGhosted     bool            `json:"isGhosted"`
	Source        string          `json:"source,omitempty"`
	ExpenseType   string          `json:"expenseType,omitempty"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
}

// MarshalJSON renders the date as a plain calendar day.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// UnmarshalJSON accepts YYYY-MM-DD and full RFC 3339 timestamps. A value it
// cannot parse leaves the date zero instead of failing the whole document;
// formatting fails closed later.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return nil
		}
	}
	d.Time = time.Time{}
	return nil
}

// EncodePrograms serializes the program collection.
func EncodePrograms(programs []Program) ([]byte, error) {
	docs := make([]programDoc, len(programs))
	for i, p := range programs {
		docs[i] = programDoc{ID: p.ID, Name: p.Name, AdminFeePct: p.AdminFeePct, IsGhosted: p.Ghosted}
	}
	return json.Marshal(docs)
}

// DecodePrograms deserializes the program collection.
func DecodePrograms(data []byte) ([]Program, error) {
	var docs []programDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode programs: %w", err)
	}
	programs := make([]Program, len(docs))
	for i, d := range docs {
		programs[i] = Program{ID: d.ID, Name: d.Name, AdminFeePct: d.AdminFeePct, Ghosted: d.IsGhosted}
	}
	return programs, nil
}

// EncodeTransactions serializes the transaction collection with its variant
// tags.
func EncodeTransactions(txs []Transaction) ([]byte, error) {
	docs := make([]transactionDoc, len(txs))
	for i, tx := range txs {
		rec := tx.Base()
		doc := transactionDoc{
			ID:        rec.ID,
			ProgramID: rec.ProgramID,
			Type:      tx.Kind(),
			Amount:    rec.Amount,
			Date:      rec.Date,
			IsGhosted: rec.Ghosted,
		}
		switch t := tx.(type) {
		case Income:
			doc.Source = t.Source
		case Expense:
			doc.ExpenseType = t.ExpenseType
			doc.InvoiceNumber = t.InvoiceNumber
		}
		docs[i] = doc
	}
	return json.Marshal(docs)
}

// DecodeTransactions deserializes the transaction collection, rebuilding the
// concrete variant from the type tag.
func DecodeTransactions(data []byte) ([]Transaction, error) {
	var docs []transactionDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	txs := make([]Transaction, len(docs))
	for i, d := range docs {
		rec := Record{
			ID:        d.ID,
			ProgramID: d.ProgramID,
			Amount:    d.Amount,
			Date:      d.Date,
			Ghosted:   d.IsGhosted,
		}
		switch d.Type {
		case KindIncome:
			txs[i] = Income{Record: rec, Source: d.Source}
		case KindExpense:
			txs[i] = Expense{Record: rec, ExpenseType: d.ExpenseType, InvoiceNumber: d.InvoiceNumber}
		default:
			return nil, fmt.Errorf("decode transactions: unknown type %q", d.Type)
		}
	}
	return txs, nil
}
