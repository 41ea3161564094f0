package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"
	FieldHttpBytes  = "http_bytes"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldPartitionId = "partition_id"
	FieldWorkerId    = "worker_id"

	FieldService    = "service"
	FieldDate       = "date"
	FieldBatchID    = "batch_id"
	FieldEventIndex = "event_index"
)
