package activity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/edvin/regionfailover/internal/model"
)

// HealthVerifier contains the activity that confirms a health check's target
// answers the way the check expects.
type HealthVerifier struct {
	client    *http.Client
	logger    zerolog.Logger
	targetURL func(hc model.HealthCheck) string
}

// NewHealthVerifier creates a new HealthVerifier activity struct. A nil client gets
// a default with a 10 second timeout.
func NewHealthVerifier(client *http.Client, logger zerolog.Logger) *HealthVerifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HealthVerifier{
		client:    client,
		logger:    logger.With().Str("component", "health-verifier").Logger(),
		targetURL: checkURL,
	}
}

// checkURL builds the URL a health check polls.
func checkURL(hc model.HealthCheck) string {
	scheme := "https"
	if hc.Protocol == "HTTP" {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s:%d%s", scheme, hc.FQDN, hc.Port, hc.ResourcePath)
}

// VerifyHealthCheck polls a freshly enabled check's target once. Any 2xx or
// 3xx answer is HEALTHY. Anything else, including a transport failure, leaves
// the check UNKNOWN since it has not had a successful poll yet. Only a
// malformed target returns an error.
func (a *HealthVerifier) VerifyHealthCheck(ctx context.Context, hc model.HealthCheck) (model.HealthState, error) {
	target := a.targetURL(hc)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return model.HealthUnknown, fmt.Errorf("build health request for %s: %w", hc.Key, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn().Err(err).Str("key", hc.Key.String()).Str("target", target).Msg("health target unreachable")
		return model.HealthUnknown.Observe(false), nil
	}
	defer resp.Body.Close()

	healthy := resp.StatusCode >= 200 && resp.StatusCode < 400
	if !healthy {
		a.logger.Warn().Int("status", resp.StatusCode).Str("key", hc.Key.String()).Str("target", target).Msg("health target unhealthy")
	}
	return model.HealthUnknown.Observe(healthy), nil
}
