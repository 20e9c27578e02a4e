package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bw_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "code", "method"},
	)

	ActionsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bw_wizard_actions_total",
			Help: "Total wizard actions dispatched, by action kind",
		},
		[]string{"kind"},
	)

	ReservationsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bw_reservations_saved_total",
			Help: "Total reservations appended to the durable list",
		},
	)

	StoreFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bw_store_failures_total",
			Help: "Total durable store write failures",
		},
	)

	ExportRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bw_export_requests_total",
			Help: "Total PDF export requests published",
		},
	)

	DraftSaves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bw_draft_saves_total",
			Help: "Total draft autosaves flushed to the store",
		},
	)

	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bw_rate_limit_exceeded_total",
			Help: "Total rate limit exceeded",
		},
	)
)
