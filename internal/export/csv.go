package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"fondos/internal/core"
)

// utf8bom lets spreadsheet software detect the encoding of the download.
const utf8bom = "\xEF\xBB\xBF"

var (
	csvGlobalHeader  = []string{"Programa", "Tipo", "Fecha", "Detalle", "N° Factura", "Monto", "Estado"}
	csvProgramHeader = []string{"Tipo", "Fecha", "Detalle", "N° Factura", "Monto", "Estado"}
)

// GlobalCSVFilename is the download name of the foundation-wide CSV report.
func GlobalCSVFilename() string { return GlobalReportBase + ".csv" }

// ProgramCSVFilename is the download name of a single-program CSV report.
func ProgramCSVFilename(p core.Program) string { return ReportBase(p.Name) + ".csv" }

// WriteGlobalCSV renders every transaction, ghosted ones included, with the
// owning program resolved by name.
func WriteGlobalCSV(w io.Writer, programs []core.Program, txs []core.Transaction) error {
	records := make([][]string, 0, len(txs)+1)
	records = append(records, csvGlobalHeader)
	for _, row := range BuildRows(programs, txs) {
		records = append(records, []string{
			row.ProgramName, row.KindLabel, row.Date, row.Detail, row.Invoice, row.Amount, row.Status,
		})
	}
	return writeCSV(w, records)
}

// WriteProgramCSV renders the transactions of one program; the program
// column is dropped.
func WriteProgramCSV(w io.Writer, program core.Program, txs []core.Transaction) error {
	rows := BuildRows(nil, filterProgram(txs, program.ID))
	records := make([][]string, 0, len(rows)+1)
	records = append(records, csvProgramHeader)
	for _, row := range rows {
		records = append(records, []string{
			row.KindLabel, row.Date, row.Detail, row.Invoice, row.Amount, row.Status,
		})
	}
	return writeCSV(w, records)
}

func writeCSV(w io.Writer, records [][]string) error {
	if _, err := io.WriteString(w, utf8bom); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
