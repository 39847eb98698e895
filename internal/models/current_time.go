package models

import "time"

// HealthStatus is returned by the health check endpoint.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// NewHealthStatus reports a healthy service at t.
func NewHealthStatus(t time.Time, version string) HealthStatus {
	return HealthStatus{
		Status:    "healthy",
		Timestamp: t.UTC().Format(time.RFC3339),
		Version:   version,
	}
}
