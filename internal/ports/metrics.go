package ports

import "shopsync-ingestion-layer/internal/domain"

// MetricsRecorder receives sync counters. Implementations must be safe for
// concurrent use.
type MetricsRecorder interface {
	RecordFetched(tenantID string, resource domain.ResourceType, n int)
	RecordCreated(tenantID string, resource domain.ResourceType, n int)
	RecordSkipped(tenantID string, resource domain.ResourceType, n int)
	RecordSyncResult(tenantID string, resource domain.ResourceType, succeeded bool)
	RecordWebhook(topic string, verified bool)
}
