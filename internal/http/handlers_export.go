package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fondos/internal/core"
	"fondos/internal/export"
	"fondos/internal/log"
)

// handleExportCSV serves the CSV report as a download. Without a program
// query parameter it covers the whole foundation; with one, a single program.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	var (
		buf      bytes.Buffer
		filename string
		err      error
	)
	if id := r.URL.Query().Get("program"); id != "" {
		p, ok := s.ledger.ProgramByID(id)
		if !ok {
			writeError(w, http.StatusNotFound, "program not found")
			return
		}
		filename = export.ProgramCSVFilename(p)
		err = export.WriteProgramCSV(&buf, p, s.ledger.Transactions())
	} else {
		filename = export.GlobalCSVFilename()
		err = export.WriteGlobalCSV(&buf, s.ledger.Programs(), s.ledger.Transactions())
	}
	if err != nil {
		s.exportError(w, "csv", filename, err)
		return
	}
	serveDownload(w, "text/csv; charset=utf-8", filename, buf.Bytes())
}

// handleExportPDF serves the PDF report as a download, scoped the same way
// as the CSV export.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	var (
		buf      bytes.Buffer
		filename string
		err      error
	)
	now := time.Now()
	if id := r.URL.Query().Get("program"); id != "" {
		p, ok := s.ledger.ProgramByID(id)
		if !ok {
			writeError(w, http.StatusNotFound, "program not found")
			return
		}
		var sum core.ProgramSummary
		sum, err = s.ledger.ProgramSummary(id)
		if err == nil {
			filename = export.ProgramPDFFilename(p)
			err = export.WriteProgramPDF(&buf, s.foundation, p, s.ledger.Transactions(), sum, now)
		}
	} else {
		filename = export.GlobalPDFFilename()
		err = export.WriteGlobalPDF(&buf, s.foundation, s.ledger.Programs(), s.ledger.Transactions(), s.ledger.GlobalSummary(), now)
	}
	if err != nil {
		s.exportError(w, "pdf", filename, err)
		return
	}
	serveDownload(w, "application/pdf", filename, buf.Bytes())
}

func (s *Server) exportError(w http.ResponseWriter, format, filename string, err error) {
	slog.Error("report render failed",
		log.FieldComponent, log.ComponentExport,
		log.FieldOperation, log.OpRender,
		log.FieldFilename, filename,
		log.FieldError, err,
	)
	writeError(w, http.StatusInternalServerError, fmt.Sprintf("could not render %s report", format))
}

func serveDownload(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(body)))
	_, _ = w.Write(body)
}
