package domain

// ProcessingStatus represents the outcome of a bill processing request.
type ProcessingStatus string

const (
	StatusSuccess    ProcessingStatus = "success"
	StatusError      ProcessingStatus = "error"
	StatusProcessing ProcessingStatus = "processing"
)

// HealthStatus represents the overall service health.
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
)
