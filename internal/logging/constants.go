package logging

// Standardized field names for structured logging.
const (
	FieldRule      = "rule"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldDate      = "date"
	FieldDebtor    = "debtor"
	FieldGoal      = "goal"
	FieldSubject   = "subject"
	FieldSender    = "sender"
	FieldCount     = "count"
	FieldSource    = "source"
	FieldOperation = "operation"
	FieldFile      = "file_path"
)
