package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldKey           = "key"
	FieldBackend       = "backend"
	FieldProgramID     = "program_id"
	FieldProgramName   = "program_name"
	FieldTransactionID = "transaction_id"
	FieldKind          = "kind"
	FieldAmount        = "amount"
	FieldGhosted       = "ghosted"
	FieldScope         = "scope"
	FieldFilename      = "filename"
	FieldRows          = "rows"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentLedger = "ledger"
	ComponentStore  = "store"
	ComponentExport = "export"
	ComponentTrace  = "trace"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpGhost    = "ghost"
	OpLoad     = "load"
	OpSave     = "save"
	OpRender   = "render"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
