package telemetry

// SLI metric names used for instrumentation.
const (
	// Latency
	MetricAPILatencyP50 = "api.latency.p50"
	MetricAPILatencyP95 = "api.latency.p95"
	MetricAPILatencyP99 = "api.latency.p99"

	// Throughput
	MetricRequestsPerSec = "api.requests_per_second"

	// Delivery
	MetricSweepDuration    = "sweep.duration_seconds"
	MetricNotifyLatency    = "sweep.notification_latency"
	MetricVerificationSent = "mail.verifications_sent"

	// Availability
	MetricUptime = "service.uptime_percentage"

	// Business
	MetricRegistrations = "business.users_registered"
	MetricSubscriptions = "business.active_subscriptions"
)
