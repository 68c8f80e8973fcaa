package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 生成器调用延迟（毫秒）
	GeneratorCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generator_call_latency_ms",
			Help:    "Task generator call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"backend", "status"},
	)

	// 任务生成计数
	TaskGenerationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_generation_count",
			Help: "Total number of tasks produced",
		},
		[]string{"source"}, // source: generated, generated_fallback, plan_parsed, manual
	)

	// 周解锁判定计数
	GateDecisionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "week_gate_decision_count",
			Help: "Week gate evaluation outcomes",
		},
		[]string{"decision"}, // decision: unlocked, locked
	)

	// 数据库查询延迟（秒）
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// RecordGeneratorCallLatency 记录生成器调用延迟
func RecordGeneratorCallLatency(backend, status string, duration time.Duration) {
	GeneratorCallLatency.WithLabelValues(backend, status).Observe(float64(duration.Milliseconds()))
}

// IncrementTaskGeneration 增加任务生成计数
func IncrementTaskGeneration(source string) {
	TaskGenerationCount.WithLabelValues(source).Inc()
}

// IncrementGateDecision 增加周解锁判定计数
func IncrementGateDecision(decision string) {
	GateDecisionCount.WithLabelValues(decision).Inc()
}

// RecordDBQueryDuration 记录数据库查询延迟
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
