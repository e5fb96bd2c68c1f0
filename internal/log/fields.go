package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldChatID     = "chat_id"
	FieldUserID     = "user_id"
	FieldFromID     = "from_id"
	FieldCommand    = "command"
	FieldPriceCents = "price_cents"
	FieldComment    = "comment"
	FieldBackend    = "backend"
	FieldError      = "error"
	FieldOperation  = "operation"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentBot    = "bot"
	ComponentStore  = "store"
	ComponentAMQP   = "amqp"
	ComponentWorker = "worker"
	ComponentSheets = "sheets"
)

// Operations defines standard operation names
const (
	OpAppend   = "append"
	OpReset    = "reset"
	OpTotal    = "total"
	OpLast     = "last"
	OpInfo     = "info"
	OpResolve  = "resolve"
	OpExport   = "export"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
