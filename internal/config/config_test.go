package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/config"
)

func validConfig() *config.Config {
	return &config.Config{
		ListenAddr:         ":3001",
		Backend:            config.BackendPostgrest,
		SupabaseURL:        "https://example.supabase.co",
		SupabaseServiceKey: "service-key",
		LogLevel:           "info",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "valid postgrest config",
			mutate: func(c *config.Config) {},
		},
		{
			name: "valid postgres config",
			mutate: func(c *config.Config) {
				c.Backend = config.BackendPostgres
				c.SupabaseURL = ""
				c.SupabaseServiceKey = ""
				c.DatabaseURL = "postgres://localhost:5432/kgay"
			},
		},
		{
			name:    "missing listen addr",
			mutate:  func(c *config.Config) { c.ListenAddr = "" },
			wantErr: "ListenAddr",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *config.Config) { c.Backend = "sqlite" },
			wantErr: "Backend",
		},
		{
			name: "postgrest without url",
			mutate: func(c *config.Config) {
				c.SupabaseURL = ""
			},
			wantErr: "SUPABASE_URL is required for the postgrest backend",
		},
		{
			name: "postgrest without service key",
			mutate: func(c *config.Config) {
				c.SupabaseServiceKey = ""
			},
			wantErr: "SUPABASE_SERVICE_ROLE_KEY is required for the postgrest backend",
		},
		{
			name: "postgres without database url",
			mutate: func(c *config.Config) {
				c.Backend = config.BackendPostgres
			},
			wantErr: "DATABASE_URL is required for the postgres backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteEnvFile(t *testing.T) {
	orig := config.AppFs
	config.AppFs = afero.NewMemMapFs()
	defer func() { config.AppFs = orig }()

	err := config.WriteEnvFile(".env", map[string]string{
		"SUPABASE_URL":              "https://example.supabase.co",
		"SUPABASE_SERVICE_ROLE_KEY": "service-key",
		"IGNORED":                   "nope",
	})
	require.NoError(t, err)

	body, err := afero.ReadFile(config.AppFs, ".env")
	require.NoError(t, err)
	assert.Equal(t,
		"SUPABASE_URL=https://example.supabase.co\nSUPABASE_SERVICE_ROLE_KEY=service-key\n",
		string(body))
}

func TestWriteEnvFile_SkipsEmptyValues(t *testing.T) {
	orig := config.AppFs
	config.AppFs = afero.NewMemMapFs()
	defer func() { config.AppFs = orig }()

	err := config.WriteEnvFile(".env", map[string]string{
		"DATABASE_URL": "postgres://localhost/kgay",
		"SUPABASE_URL": "",
	})
	require.NoError(t, err)

	body, err := afero.ReadFile(config.AppFs, ".env")
	require.NoError(t, err)
	assert.Equal(t, "DATABASE_URL=postgres://localhost/kgay\n", string(body))
}
