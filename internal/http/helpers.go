package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"fondos/internal/core"
	"fondos/internal/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

type programRequest struct {
	Name        string          `json:"name"`
	AdminFeePct decimal.Decimal `json:"adminFeePercentage"`
}

type programResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	AdminFeePct decimal.Decimal `json:"adminFeePercentage"`
	IsGhosted   bool            `json:"isGhosted"`
}

type transactionRequest struct {
	ProgramID     string          `json:"programId"`
	Type          core.Kind       `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          core.Date       `json:"date"`
	Source        string          `json:"source"`
	ExpenseType   string          `json:"expenseType"`
	InvoiceNumber string          `json:"invoiceNumber"`
}

type transactionResponse struct {
	ID            string          `json:"id"`
	ProgramID     string          `json:"programId"`
	Type          core.Kind       `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          core.Date       `json:"date"`
	IsGhosted     bool            `json:"isGhosted"`
	Source        string          `json:"source,omitempty"`
	ExpenseType   string          `json:"expenseType,omitempty"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
}

func toProgramResponse(p core.Program) programResponse {
	return programResponse{ID: p.ID, Name: p.Name, AdminFeePct: p.AdminFeePct, IsGhosted: p.Ghosted}
}

func toTransactionResponse(tx core.Transaction) transactionResponse {
	rec := tx.Base()
	resp := transactionResponse{
		ID:        rec.ID,
		ProgramID: rec.ProgramID,
		Type:      tx.Kind(),
		Amount:    rec.Amount,
		Date:      rec.Date,
		IsGhosted: rec.Ghosted,
	}
	switch t := tx.(type) {
	case core.Income:
		resp.Source = t.Source
	case core.Expense:
		resp.ExpenseType = t.ExpenseType
		resp.InvoiceNumber = t.InvoiceNumber
	}
	return resp
}

func (r transactionRequest) params() services.TransactionParams {
	return services.TransactionParams{
		ProgramID:     r.ProgramID,
		Kind:          r.Type,
		Amount:        r.Amount,
		Date:          r.Date,
		Source:        r.Source,
		ExpenseType:   r.ExpenseType,
		InvoiceNumber: r.InvoiceNumber,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeLedgerError maps ledger errors to HTTP statuses: unknown identities
// are 404, everything else a mutation can return is a rejected input.
func writeLedgerError(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	if errors.Is(err, services.ErrProgramNotFound) || errors.Is(err, services.ErrTransactionNotFound) {
		status = http.StatusNotFound
	}
	writeError(w, status, err.Error())
}

// decodeJSON parses the request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
