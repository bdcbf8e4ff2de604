package models

import "time"

// SystemMetrics is an aggregated runtime snapshot for the metrics endpoint.
type SystemMetrics struct {
	CacheHitRatio              float64   `json:"cache_hit_ratio"`
	CacheHits                  uint64    `json:"cache_hits"`
	CacheMisses                uint64    `json:"cache_misses"`
	RequestsTotal              uint64    `json:"requests_total"`
	AverageRequestDurationMs   float64   `json:"average_request_duration_ms"`
	RecordCallCount            uint64    `json:"record_call_count"`
	AverageRecordCallDurationMs float64  `json:"average_record_call_duration_ms"`
	Goroutines                 int       `json:"goroutines"`
	GeneratedAt                time.Time `json:"generated_at"`
}
