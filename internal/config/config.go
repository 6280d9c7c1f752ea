package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/edvin/regionfailover/internal/model"
	"github.com/edvin/regionfailover/internal/topology"
)

var validate = validator.New()

type Config struct {
	ServiceName string
	LogLevel    string

	// Topology inputs. Region, HostedZoneID and DomainName are required for
	// composition and checked by topology.Input.Validate so that a missing
	// value surfaces as a ConfigurationError.
	Region           string
	SecondaryRegions []string
	HostedZoneID     string
	DomainName       string
	AppName          string
	Stage            string
	TableSuffix      string
	TopologyFile     string

	// ServeRegion is the region a regional-api instance answers for.
	ServeRegion string `validate:"required_if=Component regional-api"`

	TemporalAddress string `validate:"required_if=Component worker"`
	DatabaseURL     string `validate:"required_if=Component worker"`
	HTTPListenAddr  string `validate:"required_if=Component regional-api"`
	MetricsAddr     string

	// PlanBucket receives entity descriptions for the provisioning
	// collaborator.
	PlanBucket  string `validate:"required_if=Component worker"`
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string

	// Component is set by Validate.
	Component string
}

// TopologyFile is the optional YAML document that can carry the topology
// shape instead of environment variables.
type TopologyFile struct {
	AppName          string   `yaml:"app_name"`
	Stage            string   `yaml:"stage"`
	SecondaryRegions []string `yaml:"secondary_regions"`
	TableSuffix      string   `yaml:"table_suffix"`
}

func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:      getEnv("SERVICE_NAME", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Region:           getEnv("REGION", ""),
		SecondaryRegions: splitList(getEnv("SECONDARY_REGIONS", "")),
		HostedZoneID:     getEnv("HOSTED_ZONE_ID", ""),
		DomainName:       getEnv("DOMAIN_NAME", ""),
		AppName:          getEnv("APP_NAME", ""),
		Stage:            getEnv("STAGE", ""),
		TableSuffix:      getEnv("TABLE_SUFFIX", ""),
		TopologyFile:     getEnv("TOPOLOGY_FILE", ""),
		ServeRegion:      getEnv("SERVE_REGION", ""),
		TemporalAddress:  getEnv("TEMPORAL_ADDRESS", "localhost:7233"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		HTTPListenAddr:   getEnv("HTTP_LISTEN_ADDR", ":8080"),
		MetricsAddr:      getEnv("METRICS_ADDR", ""),
		PlanBucket:       getEnv("PLAN_BUCKET", ""),
		S3Endpoint:       getEnv("S3_ENDPOINT", ""),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:      getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:      getEnv("S3_SECRET_KEY", ""),
	}

	if cfg.TopologyFile != "" {
		if err := cfg.applyTopologyFile(cfg.TopologyFile); err != nil {
			return nil, err
		}
	}

	if cfg.AppName == "" {
		cfg.AppName = "global-api"
	}
	if cfg.ServeRegion == "" {
		cfg.ServeRegion = cfg.Region
	}

	return cfg, nil
}

// Validate checks the settings the given component needs.
func (c *Config) Validate(component string) error {
	c.Component = component
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config for %s: %w", component, err)
	}
	return nil
}

// TopologyInput maps the configuration onto a composition input.
func (c *Config) TopologyInput() topology.Input {
	secondaries := make([]model.Region, 0, len(c.SecondaryRegions))
	for _, r := range c.SecondaryRegions {
		secondaries = append(secondaries, model.Region(r))
	}
	return topology.Input{
		AppName:      c.AppName,
		Stage:        c.Stage,
		Main:         model.Region(c.Region),
		Secondaries:  secondaries,
		HostedZoneID: c.HostedZoneID,
		DomainName:   c.DomainName,
		TableSuffix:  c.TableSuffix,
	}
}

// applyTopologyFile fills topology fields that the environment left empty.
func (c *Config) applyTopologyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read topology file: %w", err)
	}

	var f TopologyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse topology file %s: %w", path, err)
	}

	if c.AppName == "" {
		c.AppName = f.AppName
	}
	if c.Stage == "" {
		c.Stage = f.Stage
	}
	if len(c.SecondaryRegions) == 0 {
		c.SecondaryRegions = f.SecondaryRegions
	}
	if c.TableSuffix == "" {
		c.TableSuffix = f.TableSuffix
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
