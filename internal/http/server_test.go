package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fondos/internal/services"
	"fondos/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ledger := services.NewLedger(context.Background(), store.NewMemory())
	return NewServer(":0", ledger, "Fundación Salud Para Todos")
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body == "" {
		rd = bytes.NewReader(nil)
	} else {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func createProgram(t *testing.T, srv *Server, name, fee string) string {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/programs",
		`{"name":"`+name+`","adminFeePercentage":`+fee+`}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["id"].(string)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestProgramTransactionSummaryFlow(t *testing.T) {
	srv := newTestServer(t)
	id := createProgram(t, srv, "Salud Infantil", "10")

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"programId":"`+id+`","type":"INGRESO","amount":"1000","date":"2024-03-01","source":"Donación"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"programId":"`+id+`","type":"EGRESO","amount":200,"date":"2024-03-05","expenseType":"Insumos","invoiceNumber":"A-001"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, srv, http.MethodGet, "/api/programs/"+id+"/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sum struct {
		Income   string `json:"income"`
		Expenses string `json:"expenses"`
		AdminFee string `json:"adminFee"`
		Balance  string `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, "1000", sum.Income)
	assert.Equal(t, "200", sum.Expenses)
	assert.Equal(t, "100", sum.AdminFee)
	assert.Equal(t, "700", sum.Balance)

	rec = doJSON(t, srv, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance":"700"`)
}

func TestCreateTransactionInvalidAmount(t *testing.T) {
	srv := newTestServer(t)
	id := createProgram(t, srv, "Educación", "5")

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"programId":"`+id+`","type":"INGRESO","amount":"-50","date":"2024-01-01","source":"Aporte"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUnknownIDsReturn404(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/programs/nope/summary", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/transactions/nope/ghost", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"programId":"nope","type":"INGRESO","amount":"10","date":"2024-01-01","source":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGhostedProgramRejectsNewTransactions(t *testing.T) {
	srv := newTestServer(t)
	id := createProgram(t, srv, "Nutrición", "8")

	rec := doJSON(t, srv, http.MethodPost, "/api/programs/"+id+"/ghost", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isGhosted":true`)

	rec = doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"programId":"`+id+`","type":"INGRESO","amount":"10","date":"2024-01-01","source":"x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/api/programs/"+id+"/ghost", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isGhosted":false`)
}

func TestToggleTransactionGhost(t *testing.T) {
	srv := newTestServer(t)
	id := createProgram(t, srv, "Vivienda", "0")

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"programId":"`+id+`","type":"INGRESO","amount":"500","date":"2024-02-01","source":"Subsidio"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var tx map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tx))

	rec = doJSON(t, srv, http.MethodPost, "/api/transactions/"+tx["id"].(string)+"/ghost", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isGhosted":true`)

	rec = doJSON(t, srv, http.MethodGet, "/api/programs/"+id+"/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"income":"0"`)
}

func TestExportCSVDownload(t *testing.T) {
	srv := newTestServer(t)
	id := createProgram(t, srv, "Salud Infantil", "10")
	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"programId":"`+id+`","type":"INGRESO","amount":"1000","date":"2024-03-01","source":"Donación"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/export/csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Informe_General_Fundacion.csv"`,
		rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\xEF\xBB\xBF"))
	assert.Contains(t, rec.Body.String(), "Salud Infantil")

	rec = doJSON(t, srv, http.MethodGet, "/api/export/csv?program="+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Informe_salud_infantil.csv"`,
		rec.Header().Get("Content-Disposition"))

	rec = doJSON(t, srv, http.MethodGet, "/api/export/csv?program=nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportPDFDownload(t *testing.T) {
	srv := newTestServer(t)
	id := createProgram(t, srv, "Educación 2024", "10")
	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"programId":"`+id+`","type":"EGRESO","amount":"300","date":"2024-04-01","expenseType":"Materiales","invoiceNumber":"B-007"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/export/pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Informe_General_Fundacion.pdf"`,
		rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	rec = doJSON(t, srv, http.MethodGet, "/api/export/pdf?program="+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Informe_educaci_n_2024.pdf"`,
		rec.Header().Get("Content-Disposition"))
}

func TestUpdateProgramPreservesIdentity(t *testing.T) {
	srv := newTestServer(t)
	id := createProgram(t, srv, "Salud", "10")

	rec := doJSON(t, srv, http.MethodPut, "/api/programs/"+id,
		`{"name":"Salud Comunitaria","adminFeePercentage":12.5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id, resp["id"])
	assert.Equal(t, "Salud Comunitaria", resp["name"])
}

func TestRejectsUnknownBodyFields(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/programs",
		`{"name":"x","adminFeePercentage":1,"bogus":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
