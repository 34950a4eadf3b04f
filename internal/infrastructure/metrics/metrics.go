package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/ports"
)

// Metrics exposes sync and webhook counters to Prometheus.
type Metrics struct {
	fetched  *prometheus.CounterVec
	created  *prometheus.CounterVec
	skipped  *prometheus.CounterVec
	syncRuns *prometheus.CounterVec
	webhooks *prometheus.CounterVec
}

var _ ports.MetricsRecorder = (*Metrics)(nil)

// New registers the counters with reg and returns the recorder.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		fetched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_records_fetched_total",
			Help: "Records fetched from the upstream store, per tenant and resource.",
		}, []string{"tenant", "resource"}),
		created: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_records_created_total",
			Help: "Records newly persisted, per tenant and resource.",
		}, []string{"tenant", "resource"}),
		skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_records_skipped_total",
			Help: "Records skipped as already present, per tenant and resource.",
		}, []string{"tenant", "resource"}),
		syncRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_resource_runs_total",
			Help: "Completed resource sync attempts, per tenant, resource and outcome.",
		}, []string{"tenant", "resource", "succeeded"}),
		webhooks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Webhook deliveries received, per topic and verification outcome.",
		}, []string{"topic", "verified"}),
	}
}

func (m *Metrics) RecordFetched(tenantID string, resource domain.ResourceType, n int) {
	m.fetched.WithLabelValues(tenantID, string(resource)).Add(float64(n))
}

func (m *Metrics) RecordCreated(tenantID string, resource domain.ResourceType, n int) {
	m.created.WithLabelValues(tenantID, string(resource)).Add(float64(n))
}

func (m *Metrics) RecordSkipped(tenantID string, resource domain.ResourceType, n int) {
	m.skipped.WithLabelValues(tenantID, string(resource)).Add(float64(n))
}

func (m *Metrics) RecordSyncResult(tenantID string, resource domain.ResourceType, succeeded bool) {
	m.syncRuns.WithLabelValues(tenantID, string(resource), strconv.FormatBool(succeeded)).Inc()
}

func (m *Metrics) RecordWebhook(topic string, verified bool) {
	m.webhooks.WithLabelValues(topic, strconv.FormatBool(verified)).Inc()
}
