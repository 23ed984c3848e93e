package export

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fondos/internal/core"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "01/01/2024", FormatDate(core.NewDate(2024, 1, 1)))
	assert.Equal(t, "15/01/2024", FormatDate(core.NewDate(2024, 1, 15)))
	assert.Equal(t, "Fecha inválida", FormatDate(core.Date{}))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$ 1.000,00", FormatCurrency(decimal.NewFromInt(1000)))
	assert.Equal(t, "$ 124,88", FormatCurrency(decimal.RequireFromString("124.875")))
	assert.Equal(t, "$ 0,00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "$ -500,00", FormatCurrency(decimal.NewFromInt(-500)))
}

func TestReportBase(t *testing.T) {
	assert.Equal(t, "Informe_salud_infantil", ReportBase("Salud Infantil"))
	assert.Equal(t, "Informe_educaci_n_2024", ReportBase("Educación 2024"))
	assert.Equal(t, "Informe_General_Fundacion.csv", GlobalCSVFilename())
	assert.Equal(t, "Informe_General_Fundacion.pdf", GlobalPDFFilename())

	p := core.Program{Name: "Salud Infantil"}
	assert.Equal(t, "Informe_salud_infantil.csv", ProgramCSVFilename(p))
	assert.Equal(t, "Informe_salud_infantil.pdf", ProgramPDFFilename(p))
}
