// Package config loads and validates the server configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Loader when the file leaves fields unset.
const (
	DefaultAddress          = ":8080"
	DefaultTable            = "gogen"
	DefaultBucket           = "gogen-configs"
	DefaultRegion           = "us-east-1"
	DefaultIdentityEndpoint = "https://api.github.com"
	DefaultLegacyEndpoint   = "https://api.github.com"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "GOGEN_API"

// Loader defines the interface for loading configuration.
type Loader interface {
	Load(path string) (*Config, error)
}

// Config is the root configuration structure.
type Config struct {
	// Address the HTTP server listens on.
	Address string `yaml:"address"`
	// AWS holds the client settings shared by the item and blob stores.
	AWS AWSConfig `yaml:"aws"`
	// Table is the item store table holding profile records.
	Table string `yaml:"table"`
	// Bucket is the blob store bucket holding configuration payloads.
	Bucket string `yaml:"bucket"`
	// IdentityEndpoint is the base URL of the identity provider used to
	// validate write credentials.
	IdentityEndpoint string `yaml:"identityEndpoint"`
	// LegacyEndpoint is the base URL of the legacy document API.
	LegacyEndpoint string `yaml:"legacyEndpoint"`
}

// AWSConfig holds AWS client settings. The endpoints and static credentials
// exist for local development (dynamodb-local, minio); leave them empty in
// real deployments.
type AWSConfig struct {
	Region          string `yaml:"region"`
	DynamoEndpoint  string `yaml:"dynamoEndpoint,omitempty"`
	S3Endpoint      string `yaml:"s3Endpoint,omitempty"`
	AccessKeyID     string `yaml:"accessKeyId,omitempty"`
	SecretAccessKey string `yaml:"secretAccessKey,omitempty"`
}

// Validate checks the configuration for completeness.
func (c *Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address must not be empty")
	}
	if c.Table == "" {
		return fmt.Errorf("table must not be empty")
	}
	if c.Bucket == "" {
		return fmt.Errorf("bucket must not be empty")
	}
	if c.AWS.Region == "" {
		return fmt.Errorf("aws.region must not be empty")
	}
	if c.IdentityEndpoint == "" {
		return fmt.Errorf("identityEndpoint must not be empty")
	}
	if c.LegacyEndpoint == "" {
		return fmt.Errorf("legacyEndpoint must not be empty")
	}
	return nil
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.Table == "" {
		c.Table = DefaultTable
	}
	if c.Bucket == "" {
		c.Bucket = DefaultBucket
	}
	if c.AWS.Region == "" {
		c.AWS.Region = DefaultRegion
	}
	if c.IdentityEndpoint == "" {
		c.IdentityEndpoint = DefaultIdentityEndpoint
	}
	if c.LegacyEndpoint == "" {
		c.LegacyEndpoint = DefaultLegacyEndpoint
	}
}

// loader implements the Loader interface.
type loader struct{}

// NewLoader creates a new Loader instance.
func NewLoader() Loader {
	return &loader{}
}

// Load reads and parses configuration from a YAML file, then applies
// defaults for unset fields.
func (*loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}
