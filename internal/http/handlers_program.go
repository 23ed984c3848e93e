package http

import (
	"net/http"
)

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	programs := s.ledger.Programs()
	resp := make([]programResponse, len(programs))
	for i, p := range programs {
		resp[i] = toProgramResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := s.ledger.AddProgram(r.Context(), req.Name, req.AdminFeePct)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProgramResponse(p))
}

func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := s.ledger.UpdateProgram(r.Context(), r.PathValue("id"), req.Name, req.AdminFeePct)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgramResponse(p))
}

func (s *Server) handleToggleProgramGhost(w http.ResponseWriter, r *http.Request) {
	p, err := s.ledger.ToggleProgramGhost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgramResponse(p))
}

func (s *Server) handleProgramSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.ledger.ProgramSummary(r.PathValue("id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleProgramTransactions(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.ledger.ProgramByID(r.PathValue("id")); !ok {
		writeError(w, http.StatusNotFound, "program not found")
		return
	}
	txs := s.ledger.TransactionsForProgram(r.PathValue("id"))
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toTransactionResponse(tx)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGlobalSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.GlobalSummary())
}
