package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Standard tracing fields, propagated through the call chain via context.
const (
	// FieldRunID identifies one scrape run (UUID).
	FieldRunID = "run_id"

	// FieldRequestID is the HTTP request ID (UUID) on the dashboard API.
	FieldRequestID = "request_id"

	// FieldComponent is the component/module name.
	FieldComponent = "component"

	// FieldCity is the city being processed.
	FieldCity = "city"

	// FieldArea is the area label being processed.
	FieldArea = "area"

	// FieldPlaceID is the upstream place identifier of the current candidate.
	FieldPlaceID = "place_id"
)

// Standard metric fields, attached at the log entry level.
const (
	// FieldDurationMs is the execution duration in milliseconds.
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field.
	FieldCount = "count"

	// FieldStatus is the operation or upstream status.
	FieldStatus = "status"
)
