package core

import "github.com/shopspring/decimal"

// ProgramSummary is the derived financial state of a single program.
type ProgramSummary struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	AdminFee decimal.Decimal `json:"adminFee"`
	Balance  decimal.Decimal `json:"balance"`
}

// GlobalSummary aggregates every active program.
type GlobalSummary struct {
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	TotalAdminFees decimal.Decimal `json:"totalAdminFees"`
	Balance        decimal.Decimal `json:"balance"`
}

// SummarizeProgram derives income, expenses, admin fee and balance for one
// program from the full transaction collection. Ghosted transactions never
// contribute; the program's own ghost flag is not consulted here, the two
// flags are independent.
func SummarizeProgram(p Program, txs []Transaction) ProgramSummary {
	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		rec := tx.Base()
		if rec.Ghosted || rec.ProgramID != p.ID {
			continue
		}
		switch tx.(type) {
		case Income:
			income = income.Add(rec.Amount)
		case Expense:
			expenses = expenses.Add(rec.Amount)
		}
	}
	fee := income.Mul(p.AdminFeePct).Div(hundred)
	return ProgramSummary{
		Income:   income,
		Expenses: expenses,
		AdminFee: fee,
		Balance:  income.Sub(expenses).Sub(fee),
	}
}

// SummarizeGlobal derives foundation-wide totals. Only active programs
// participate: a transaction under a ghosted program is excluded even when
// the transaction itself is active. The total admin fee is the sum of each
// program's fee on its own income, never a blended rate over total income.
func SummarizeGlobal(programs []Program, txs []Transaction) GlobalSummary {
	income, expenses, fees := decimal.Zero, decimal.Zero, decimal.Zero
	for _, p := range programs {
		if p.Ghosted {
			continue
		}
		ps := SummarizeProgram(p, txs)
		income = income.Add(ps.Income)
		expenses = expenses.Add(ps.Expenses)
		fees = fees.Add(ps.AdminFee)
	}
	return GlobalSummary{
		TotalIncome:    income,
		TotalExpenses:  expenses,
		TotalAdminFees: fees,
		Balance:        income.Sub(expenses).Sub(fees),
	}
}
