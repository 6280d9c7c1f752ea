package model

import "fmt"

// Platform hostname parts for regional API endpoints.
const (
	ExecuteAPIDomainSuffix = "execute-api"
	PlatformRootDomain     = "amazonaws.com"
	HealthRoute            = "/health"
)

// RegionalEndpoint is the API surface exposed in one region.
type RegionalEndpoint struct {
	Key        ResourceKey `json:"key"`
	Region     Region      `json:"region"`
	Name       string      `json:"name"`
	APIID      string      `json:"api_id"`
	Stage      string      `json:"stage"`
	HealthPath string      `json:"health_path"`
	Table      TableHandle `json:"table"`
}

// ExecuteHostname returns the platform-assigned hostname of the endpoint,
// e.g. "abc123.execute-api.eu-west-1.amazonaws.com".
func (e RegionalEndpoint) ExecuteHostname() string {
	return fmt.Sprintf("%s.%s.%s.%s", e.APIID, ExecuteAPIDomainSuffix, e.Region, PlatformRootDomain)
}

// StageHealthPath returns the health path as seen through the deployment
// stage, e.g. "/prod/health".
func (e RegionalEndpoint) StageHealthPath() string {
	return "/" + e.Stage + e.HealthPath
}
