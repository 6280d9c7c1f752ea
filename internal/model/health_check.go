package model

import "time"

// Fixed health check configuration.
const (
	HealthCheckPort             = 443
	HealthCheckProtocol         = "HTTPS"
	HealthCheckRequestInterval  = 30 * time.Second
	HealthCheckFailureThreshold = 3
)

// HealthCheck polls one regional endpoint's health path.
type HealthCheck struct {
	Key              ResourceKey   `json:"key"`
	Region           Region        `json:"region"`
	Endpoint         ResourceKey   `json:"endpoint"`
	FQDN             string        `json:"fqdn"`
	Port             int           `json:"port"`
	Protocol         string        `json:"protocol"`
	ResourcePath     string        `json:"resource_path"`
	RequestInterval  time.Duration `json:"request_interval"`
	FailureThreshold int           `json:"failure_threshold"`
}

// HealthState is the signal a health check reports.
type HealthState string

const (
	HealthUnknown   HealthState = "UNKNOWN"
	HealthHealthy   HealthState = "HEALTHY"
	HealthUnhealthy HealthState = "UNHEALTHY"
)

// Observe returns the state after one poll result. A check stays UNKNOWN
// until its first successful poll; after that it flips between HEALTHY and
// UNHEALTHY.
func (s HealthState) Observe(healthy bool) HealthState {
	switch {
	case healthy:
		return HealthHealthy
	case s == HealthUnknown:
		return HealthUnknown
	default:
		return HealthUnhealthy
	}
}
