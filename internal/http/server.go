// Package http provides the local HTTP surface that drives the ledger:
// entity mutations, summaries and report downloads.
package http

import (
	"net/http"
	"time"

	"fondos/internal/middleware/security"
	"fondos/internal/middleware/trace"
	"fondos/internal/services"
)

type Server struct {
	http.Server
	ledger     *services.Ledger
	foundation string
}

func NewServer(addr string, ledger *services.Ledger, foundation string) *Server {
	s := &Server{ledger: ledger, foundation: foundation}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/programs", s.handleListPrograms)
	mux.HandleFunc("POST /api/programs", s.handleCreateProgram)
	mux.HandleFunc("PUT /api/programs/{id}", s.handleUpdateProgram)
	mux.HandleFunc("POST /api/programs/{id}/ghost", s.handleToggleProgramGhost)
	mux.HandleFunc("GET /api/programs/{id}/summary", s.handleProgramSummary)
	mux.HandleFunc("GET /api/programs/{id}/transactions", s.handleProgramTransactions)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("POST /api/transactions/{id}/ghost", s.handleToggleTransactionGhost)

	mux.HandleFunc("GET /api/summary", s.handleGlobalSummary)
	mux.HandleFunc("GET /api/export/csv", s.handleExportCSV)
	mux.HandleFunc("GET /api/export/pdf", s.handleExportPDF)

	s.Addr = addr
	s.Handler = trace.Middleware(security.Headers(mux))
	s.ReadTimeout = 10 * time.Second
	s.WriteTimeout = 30 * time.Second
	s.IdleTimeout = 60 * time.Second
	s.MaxHeaderBytes = 1 << 16 // 64KB

	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
