package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckInsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_checkins_total",
			Help: "Check-in attempts by method and outcome",
		},
		[]string{"method", "result"},
	)

	QRTokensIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_qr_tokens_issued_total",
			Help: "Total number of check-in QR tokens issued",
		},
	)

	SubscriptionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_subscriptions_created_total",
			Help: "Total number of subscriptions created",
		},
		[]string{"membership"},
	)

	SubscriptionsExpiredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_subscriptions_expired_total",
			Help: "Subscriptions expired by the scheduled sweep",
		},
		[]string{"reason"},
	)

	AthletesDeactivatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_athletes_deactivated_total",
			Help: "Athletes set inactive after their last subscription expired",
		},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_payments_total",
			Help: "Total number of payments recorded",
		},
		[]string{"method"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymdesk_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCheckIn(method, result string) {
	CheckInsTotal.WithLabelValues(method, result).Inc()
}

func RecordQRToken() {
	QRTokensIssuedTotal.Inc()
}

func RecordSubscription(membership string) {
	SubscriptionsCreatedTotal.WithLabelValues(membership).Inc()
}

func RecordSubscriptionsExpired(reason string, n int) {
	SubscriptionsExpiredTotal.WithLabelValues(reason).Add(float64(n))
}

func RecordAthletesDeactivated(n int) {
	AthletesDeactivatedTotal.Add(float64(n))
}

func RecordPayment(method string) {
	PaymentsTotal.WithLabelValues(method).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetEmailQueueLength(n int64) {
	EmailQueueLength.Set(float64(n))
}
