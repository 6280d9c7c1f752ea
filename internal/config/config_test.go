package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/regionfailover/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REGION", "SECONDARY_REGIONS", "HOSTED_ZONE_ID", "DOMAIN_NAME", "APP_NAME",
		"STAGE", "TABLE_SUFFIX", "TOPOLOGY_FILE", "TEMPORAL_ADDRESS", "DATABASE_URL",
		"HTTP_LISTEN_ADDR", "METRICS_ADDR", "PLAN_BUCKET", "LOG_LEVEL", "S3_REGION", "SERVE_REGION",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:7233", cfg.TemporalAddress)
	assert.Equal(t, ":8080", cfg.HTTPListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.Equal(t, "global-api", cfg.AppName)
	assert.Empty(t, cfg.Region)
	assert.Empty(t, cfg.SecondaryRegions)
	assert.Empty(t, cfg.ServeRegion)
}

func TestLoad_ServeRegionDefaultsToMain(t *testing.T) {
	clearEnv(t)
	t.Setenv("REGION", "us-east-1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", cfg.ServeRegion)

	t.Setenv("SERVE_REGION", "eu-west-1")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.ServeRegion)
}

func TestLoad_TopologyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("REGION", "us-east-1")
	t.Setenv("SECONDARY_REGIONS", "eu-west-1, ap-southeast-2,")
	t.Setenv("HOSTED_ZONE_ID", "Z123")
	t.Setenv("DOMAIN_NAME", "api.example.com")
	t.Setenv("APP_NAME", "orders")
	t.Setenv("TABLE_SUFFIX", "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"eu-west-1", "ap-southeast-2"}, cfg.SecondaryRegions)

	in := cfg.TopologyInput()
	assert.Equal(t, model.RegionUSEast1, in.Main)
	assert.Equal(t, []model.Region{model.RegionEUWest1, model.RegionAPSoutheast2}, in.Secondaries)
	assert.Equal(t, "Z123", in.HostedZoneID)
	assert.Equal(t, "api.example.com", in.DomainName)
	assert.Equal(t, "orders", in.AppName)
	assert.Equal(t, "dev", in.TableSuffix)
	require.NoError(t, in.Validate())
}

func TestLoad_MissingDomainFailsComposition(t *testing.T) {
	clearEnv(t)
	t.Setenv("REGION", "us-east-1")
	t.Setenv("HOSTED_ZONE_ID", "Z123")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.TopologyInput().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain_name")
}

func TestLoad_TopologyFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "topology.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_name: orders
stage: staging
table_suffix: blue
secondary_regions:
  - eu-west-1
  - sa-east-1
`), 0o600))
	t.Setenv("TOPOLOGY_FILE", path)
	t.Setenv("TABLE_SUFFIX", "green")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "orders", cfg.AppName)
	assert.Equal(t, "staging", cfg.Stage)
	assert.Equal(t, []string{"eu-west-1", "sa-east-1"}, cfg.SecondaryRegions)
	// Environment wins over the file.
	assert.Equal(t, "green", cfg.TableSuffix)
}

func TestLoad_TopologyFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOPOLOGY_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read topology file")
}

func TestLoad_TopologyFileInvalid(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "topology.yaml")
	require.NoError(t, os.WriteFile(path, []byte("secondary_regions: {not: [a list"), 0o600))
	t.Setenv("TOPOLOGY_FILE", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse topology file")
}

func TestValidate_Worker(t *testing.T) {
	cfg := &Config{TemporalAddress: "localhost:7233"}
	err := cfg.Validate("worker")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DatabaseURL")

	cfg.DatabaseURL = "postgres://localhost/ledger"
	cfg.PlanBucket = "plans"
	require.NoError(t, cfg.Validate("worker"))
}

func TestValidate_RegionalAPI(t *testing.T) {
	cfg := &Config{HTTPListenAddr: ":8080"}
	err := cfg.Validate("regional-api")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ServeRegion")

	cfg.ServeRegion = "eu-west-1"
	require.NoError(t, cfg.Validate("regional-api"))

	cfg.HTTPListenAddr = ""
	require.Error(t, cfg.Validate("regional-api"))
}
