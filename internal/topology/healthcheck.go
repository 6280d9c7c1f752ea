package topology

import "github.com/edvin/regionfailover/internal/model"

// NewHealthCheck builds the HTTPS check polling endpoint's stage-scoped
// health path on its execute hostname.
func NewHealthCheck(endpoint model.RegionalEndpoint) model.HealthCheck {
	return model.HealthCheck{
		Key:              model.Key(endpoint.Region, model.KindHealthCheck),
		Region:           endpoint.Region,
		Endpoint:         endpoint.Key,
		FQDN:             endpoint.ExecuteHostname(),
		Port:             model.HealthCheckPort,
		Protocol:         model.HealthCheckProtocol,
		ResourcePath:     endpoint.StageHealthPath(),
		RequestInterval:  model.HealthCheckRequestInterval,
		FailureThreshold: model.HealthCheckFailureThreshold,
	}
}
