package export

import (
	"sort"

	"fondos/internal/core"
)

const (
	LabelIncome  = "Ingreso"
	LabelExpense = "Egreso"

	StatusActive  = "Activo"
	StatusGhosted = "Anulado"

	missingProgramLabel = "N/A"
)

// Row is one formatted transaction line, shared by both renderers.
type Row struct {
	ProgramName string
	KindLabel   string
	Date        string
	Detail      string
	Invoice     string
	Amount      string
	Status      string
}

// BuildRows maps transactions to formatted rows, sorted chronologically
// ascending (stable: ties keep their original relative order). The program
// name resolves through the foreign key and degrades to "N/A" when the
// program is gone.
func BuildRows(programs []core.Program, txs []core.Transaction) []Row {
	names := make(map[string]string, len(programs))
	for _, p := range programs {
		names[p.ID] = p.Name
	}

	sorted := append([]core.Transaction(nil), txs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Base().Date.Before(sorted[j].Base().Date.Time)
	})

	rows := make([]Row, len(sorted))
	for i, tx := range sorted {
		rec := tx.Base()
		row := Row{
			ProgramName: missingProgramLabel,
			Date:        FormatDate(rec.Date),
			Amount:      FormatCurrency(rec.Amount),
			Status:      StatusActive,
		}
		if name, ok := names[rec.ProgramID]; ok {
			row.ProgramName = name
		}
		if rec.Ghosted {
			row.Status = StatusGhosted
		}
		switch t := tx.(type) {
		case core.Income:
			row.KindLabel = LabelIncome
			row.Detail = t.Source
		case core.Expense:
			row.KindLabel = LabelExpense
			row.Detail = t.ExpenseType
			row.Invoice = t.InvoiceNumber
		}
		rows[i] = row
	}
	return rows
}

// filterProgram keeps the transactions attached to one program.
func filterProgram(txs []core.Transaction, programID string) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if tx.Base().ProgramID == programID {
			out = append(out, tx)
		}
	}
	return out
}
