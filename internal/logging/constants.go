package logging

// Field names shared by all components.
const (
	FieldFile        = "file_path"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldOperation   = "operation"
	FieldComponent   = "component"
	FieldCount       = "count"
	FieldDuration    = "duration_ms"
	FieldDelimiter   = "delimiter"
	FieldPeriod      = "period"
	FieldYear        = "year"
	FieldBucket      = "bucket"
	FieldRule        = "rule"
	FieldDescription = "description"
	FieldLedgerCode  = "ledger_code"
	FieldAmount      = "amount"
	FieldKPI         = "kpi"
	FieldStatus      = "status"
	FieldBackend     = "backend"
	FieldFormat      = "format"
	FieldLine        = "line"
)
