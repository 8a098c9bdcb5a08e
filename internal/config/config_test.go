package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coccyx/gogen-api/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `
address: ":9090"
table: profiles
bucket: profile-configs
aws:
  region: eu-west-1
  dynamoEndpoint: http://dynamodb-local:8000
  s3Endpoint: http://minio:9000
  accessKeyId: local
  secretAccessKey: localsecret
identityEndpoint: https://identity.example.com
legacyEndpoint: https://docs.example.com
`)

		cfg, err := config.NewLoader().Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Address)
		assert.Equal(t, "profiles", cfg.Table)
		assert.Equal(t, "profile-configs", cfg.Bucket)
		assert.Equal(t, "eu-west-1", cfg.AWS.Region)
		assert.Equal(t, "http://dynamodb-local:8000", cfg.AWS.DynamoEndpoint)
		assert.Equal(t, "http://minio:9000", cfg.AWS.S3Endpoint)
		assert.Equal(t, "https://identity.example.com", cfg.IdentityEndpoint)
		assert.Equal(t, "https://docs.example.com", cfg.LegacyEndpoint)
		require.NoError(t, cfg.Validate())
	})

	t.Run("defaults fill unset fields", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `address: ":9090"`)

		cfg, err := config.NewLoader().Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Address)
		assert.Equal(t, config.DefaultTable, cfg.Table)
		assert.Equal(t, config.DefaultBucket, cfg.Bucket)
		assert.Equal(t, config.DefaultRegion, cfg.AWS.Region)
		assert.Equal(t, config.DefaultIdentityEndpoint, cfg.IdentityEndpoint)
		assert.Equal(t, config.DefaultLegacyEndpoint, cfg.LegacyEndpoint)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := config.NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "address: [unclosed")

		_, err := config.NewLoader().Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse YAML config")
	})
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, config.DefaultAddress, cfg.Address)
	assert.Empty(t, cfg.AWS.DynamoEndpoint)
	assert.Empty(t, cfg.AWS.AccessKeyID)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*config.Config) {},
		},
		{
			name:    "empty address",
			mutate:  func(c *config.Config) { c.Address = "" },
			wantErr: "address",
		},
		{
			name:    "empty table",
			mutate:  func(c *config.Config) { c.Table = "" },
			wantErr: "table",
		},
		{
			name:    "empty bucket",
			mutate:  func(c *config.Config) { c.Bucket = "" },
			wantErr: "bucket",
		},
		{
			name:    "empty region",
			mutate:  func(c *config.Config) { c.AWS.Region = "" },
			wantErr: "aws.region",
		},
		{
			name:    "empty identity endpoint",
			mutate:  func(c *config.Config) { c.IdentityEndpoint = "" },
			wantErr: "identityEndpoint",
		},
		{
			name:    "empty legacy endpoint",
			mutate:  func(c *config.Config) { c.LegacyEndpoint = "" },
			wantErr: "legacyEndpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
