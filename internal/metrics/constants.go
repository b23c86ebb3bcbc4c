package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Domain metric names
const (
	MetricNameCharacterWrites    = "character_writes_total"
	MetricNameInventoryItems     = "inventory_items_reconciled_total"
	MetricNameSessionsStarted    = "play_sessions_started_total"
	MetricNameSessionsEnded      = "play_sessions_ended_total"
	MetricNameSnapshotsCreated   = "snapshots_created_total"
	MetricNameLoginAttempts      = "auth_login_attempts_total"
	MetricNameAuthSessionsSwept  = "auth_sessions_swept_total"
	MetricNameUsersRegistered    = "auth_users_registered_total"
	MetricNameAuthLogoutsHandled = "auth_logouts_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Domain metric help text
const (
	HelpTextCharacterWrites    = "Total number of character creates, updates and deletes"
	HelpTextInventoryItems     = "Total number of inventory items touched by reconciliation"
	HelpTextSessionsStarted    = "Total number of play sessions started"
	HelpTextSessionsEnded      = "Total number of play sessions ended"
	HelpTextSnapshotsCreated   = "Total number of character snapshots stored"
	HelpTextLoginAttempts      = "Total number of login attempts"
	HelpTextAuthSessionsSwept  = "Total number of expired auth sessions removed"
	HelpTextUsersRegistered    = "Total number of registered users"
	HelpTextAuthLogoutsHandled = "Total number of logouts"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelOperation = "operation"
	LabelResult    = "result"
)

// Label values
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"

	ResultSuccess = "success"
	ResultFailure = "failure"

	// UnmatchedRoute labels requests no route pattern matched.
	UnmatchedRoute = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
