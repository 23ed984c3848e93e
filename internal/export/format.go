// Package export renders the two report artifacts, CSV and PDF, from the
// same row-level view of the transaction data. Exports are the audit view:
// ghosted records appear with their status, unlike the live summaries.
package export

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"fondos/internal/core"
)

// GlobalReportBase is the filename stem of foundation-wide reports.
const GlobalReportBase = "Informe_General_Fundacion"

const invalidDateLabel = "Fecha inválida"

var printer = message.NewPrinter(language.MustParse("es-AR"))

// FormatDate renders a calendar day as DD/MM/YYYY. A zero date fails closed
// to a literal placeholder instead of an error.
func FormatDate(d core.Date) string {
	if d.IsZero() {
		return invalidDateLabel
	}
	return d.Format("02/01/2006")
}

// FormatCurrency renders an amount in the es-AR currency style: dot
// grouping, comma decimals, two fraction digits. Formatting happens only
// here; stored and intermediate values are never rounded.
func FormatCurrency(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("$ %v", number.Decimal(f, number.Scale(2)))
}

// ReportBase derives the filename stem for a single-program report:
// non-alphanumeric characters become underscores, the rest is lowercased.
func ReportBase(programName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(programName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return "Informe_" + b.String()
}
