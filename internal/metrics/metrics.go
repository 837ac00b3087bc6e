package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postbridge_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "postbridge_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// Dispatch metrics
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postbridge_deliveries_total",
			Help: "Webhook deliveries by outcome",
		},
		[]string{"outcome"},
	)

	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postbridge_commands_total",
			Help: "Commands executed",
		},
		[]string{"command"},
	)

	PublishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postbridge_publishes_total",
			Help: "Status publish attempts",
		},
		[]string{"result"}, // "success" or "failure"
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postbridge_notifications_total",
			Help: "Outbound notifications sent to chats",
		},
		[]string{"result"},
	)

	WebhookRegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postbridge_webhook_registrations_total",
			Help: "Webhook registration attempts",
		},
		[]string{"result"},
	)

	ConfigReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postbridge_config_reloads_total",
			Help: "Configuration file reloads",
		},
		[]string{"result"},
	)
)
