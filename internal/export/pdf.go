package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"fondos/internal/core"
)

// Accent palette of the reports.
type rgb struct{ r, g, b int }

var (
	colTitle    = rgb{44, 122, 123}
	colMuted    = rgb{150, 150, 150}
	colLabel    = rgb{100, 100, 100}
	colIncome   = rgb{34, 197, 94}
	colFee      = rgb{234, 179, 8}
	colExpense  = rgb{239, 68, 68}
	colPositive = rgb{6, 182, 212}
	colHeadFill = rgb{45, 55, 72}
	colHeadText = rgb{203, 213, 225}
	colBodyText = rgb{30, 41, 59}
)

const (
	pageLeft    = 14.0
	bodyTop     = 60.0 // below the summary block on the first page
	contTop     = 35.0 // below the header band on continuation pages
	bodyBottom  = 278.0
	headRowH    = 7.0
	bodyRowH    = 6.0
	summaryRowH = 8.0
)

// GlobalPDFFilename is the download name of the foundation-wide PDF report.
func GlobalPDFFilename() string { return GlobalReportBase + ".pdf" }

// ProgramPDFFilename is the download name of a single-program PDF report.
func ProgramPDFFilename(p core.Program) string { return ReportBase(p.Name) + ".pdf" }

// report drives one paginated document: a header band repeated on every
// page, a footer with "Página X de Y", and a manually paginated table.
type report struct {
	pdf        *fpdf.Fpdf
	tr         func(string) string
	title      string
	foundation string
	generated  time.Time
	head       []string
	widths     []float64
	aligns     []string
}

func newReport(title, foundation string, generated time.Time, head []string, widths []float64, aligns []string) *report {
	pdf := fpdf.New("P", "mm", "A4", "")
	r := &report{
		pdf:        pdf,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
		title:      title,
		foundation: foundation,
		generated:  generated,
		head:       head,
		widths:     widths,
		aligns:     aligns,
	}
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetHeaderFunc(r.pageHeader)
	pdf.SetFooterFunc(r.pageFooter)
	pdf.AddPage()
	return r
}

func (r *report) pageHeader() {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", 16)
	r.color(colTitle)
	pdf.Text(pageLeft, 22, r.tr(r.title))

	pdf.SetFont("Helvetica", "", 10)
	r.color(colMuted)
	pdf.Text(pageLeft, 28, r.tr(r.foundation))

	pdf.SetFont("Helvetica", "", 8)
	pageW, _ := pdf.GetPageSize()
	pdf.SetXY(pageW-pageLeft-60, 18)
	pdf.CellFormat(60, 8, r.tr(fmt.Sprintf("Generado el: %s", r.generated.Format("02/01/2006"))), "", 0, "R", false, 0, "")
}

func (r *report) pageFooter() {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "", 8)
	r.color(colMuted)
	pdf.SetY(-10)
	pdf.CellFormat(0, 6, r.tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
}

// summaryFigure prints one labeled money figure of the summary block.
func (r *report) summaryFigure(labelX, valueX, y float64, label, value string, accent rgb) {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "", 10)
	r.color(colLabel)
	pdf.Text(labelX, y, r.tr(label))
	pdf.SetFont("Helvetica", "B", 12)
	r.color(accent)
	pdf.Text(valueX, y, r.tr(value))
}

func (r *report) table(rows [][]string) {
	pdf := r.pdf
	pdf.SetY(bodyTop)
	r.tableHead()
	for _, cells := range rows {
		if pdf.GetY()+bodyRowH > bodyBottom {
			pdf.AddPage()
			pdf.SetY(contTop)
			r.tableHead()
		}
		r.tableRow(cells)
	}
}

func (r *report) tableHead() {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(colHeadFill.r, colHeadFill.g, colHeadFill.b)
	r.color(colHeadText)
	pdf.SetX(pageLeft)
	for i, h := range r.head {
		pdf.CellFormat(r.widths[i], headRowH, r.tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func (r *report) tableRow(cells []string) {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "", 9)
	r.color(colBodyText)
	pdf.SetX(pageLeft)
	for i, c := range cells {
		pdf.CellFormat(r.widths[i], bodyRowH, r.tr(c), "1", 0, r.aligns[i], false, 0, "")
	}
	pdf.Ln(-1)
}

func (r *report) color(c rgb) {
	r.pdf.SetTextColor(c.r, c.g, c.b)
}

func (r *report) output(w io.Writer) error {
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// WriteProgramPDF renders the paginated report of one program. The summary
// block shows the active-only figures; the table below lists every
// transaction of the program with its status, ghosted ones included.
func WriteProgramPDF(w io.Writer, foundation string, program core.Program, txs []core.Transaction, sum core.ProgramSummary, generated time.Time) error {
	r := newReport(
		fmt.Sprintf("Informe del Programa: %s", program.Name),
		foundation,
		generated,
		[]string{"Fecha", "Tipo", "Detalle", "N° Factura", "Monto", "Estado"},
		[]float64{24, 18, 60, 28, 32, 20},
		[]string{"L", "L", "L", "L", "R", "L"},
	)

	r.summaryFigure(14, 45, 40, "Ingresos:", FormatCurrency(sum.Income), colIncome)
	r.summaryFigure(14, 45, 48, "Costo Admin.:", FormatCurrency(sum.AdminFee), colFee)
	r.summaryFigure(90, 115, 40, "Egresos:", FormatCurrency(sum.Expenses), colExpense)
	r.summaryFigure(90, 115, 48, "Balance Disp.:", FormatCurrency(sum.Balance), balanceAccent(sum.Balance.IsNegative()))

	rows := BuildRows(nil, filterProgram(txs, program.ID))
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{row.Date, row.KindLabel, row.Detail, row.Invoice, row.Amount, row.Status}
	}
	r.table(cells)
	return r.output(w)
}

// WriteGlobalPDF renders the foundation-wide paginated report.
func WriteGlobalPDF(w io.Writer, foundation string, programs []core.Program, txs []core.Transaction, sum core.GlobalSummary, generated time.Time) error {
	r := newReport(
		"Informe General de Ejecución",
		foundation,
		generated,
		[]string{"Programa", "Fecha", "Tipo", "Detalle", "N° Factura", "Monto", "Estado"},
		[]float64{30, 22, 16, 46, 24, 28, 16},
		[]string{"L", "L", "L", "L", "L", "R", "L"},
	)

	r.summaryFigure(14, 50, 40, "Ingresos Totales:", FormatCurrency(sum.TotalIncome), colIncome)
	r.summaryFigure(14, 50, 48, "Costos Admin.:", FormatCurrency(sum.TotalAdminFees), colFee)
	r.summaryFigure(100, 135, 40, "Egresos Totales:", FormatCurrency(sum.TotalExpenses), colExpense)
	r.summaryFigure(100, 135, 48, "Balance General:", FormatCurrency(sum.Balance), balanceAccent(sum.Balance.IsNegative()))

	rows := BuildRows(programs, txs)
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{row.ProgramName, row.Date, row.KindLabel, row.Detail, row.Invoice, row.Amount, row.Status}
	}
	r.table(cells)
	return r.output(w)
}

func balanceAccent(negative bool) rgb {
	if negative {
		return colExpense
	}
	return colPositive
}
