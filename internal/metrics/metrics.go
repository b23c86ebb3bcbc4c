package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Character sheet metrics
var (
	CharacterWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCharacterWrites,
			Help: HelpTextCharacterWrites,
		},
		[]string{LabelOperation},
	)

	InventoryItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInventoryItems,
			Help: HelpTextInventoryItems,
		},
		[]string{LabelOperation},
	)

	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsStarted,
			Help: HelpTextSessionsStarted,
		},
	)

	SessionsEnded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsEnded,
			Help: HelpTextSessionsEnded,
		},
	)

	SnapshotsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotsCreated,
			Help: HelpTextSnapshotsCreated,
		},
		[]string{LabelType},
	)
)

// Auth metrics
var (
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLoginAttempts,
			Help: HelpTextLoginAttempts,
		},
		[]string{LabelResult},
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameUsersRegistered,
			Help: HelpTextUsersRegistered,
		},
	)

	Logouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAuthLogoutsHandled,
			Help: HelpTextAuthLogoutsHandled,
		},
	)

	AuthSessionsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAuthSessionsSwept,
			Help: HelpTextAuthSessionsSwept,
		},
	)
)
