package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "very-high")

	cfg := Load()

	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{name: "valid memory store", mutate: func(c *Config) { c.StoreDriver = StoreMemory; c.DBHost = "" }},
		{name: "bad env", mutate: func(c *Config) { c.Env = "staging" }, wantErr: []string{"APP_ENV"}},
		{name: "non numeric port", mutate: func(c *Config) { c.Port = "http" }, wantErr: []string{"PORT must be a number"}},
		{name: "port out of range", mutate: func(c *Config) { c.Port = "70000" }, wantErr: []string{"PORT must be between"}},
		{name: "unknown driver", mutate: func(c *Config) { c.StoreDriver = "mysql" }, wantErr: []string{"STORE_DRIVER"}},
		{name: "bcrypt cost too low", mutate: func(c *Config) { c.BcryptCost = 2 }, wantErr: []string{"BCRYPT_COST"}},
		{
			name:    "several problems reported together",
			mutate:  func(c *Config) { c.DBHost = ""; c.DBPort = "0"; c.HashWorkers = -1 },
			wantErr: []string{"DB_HOST", "DB_PORT", "HASH_WORKERS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Env:         "test",
				Port:        "3001",
				StoreDriver: StorePostgres,
				DBHost:      "localhost",
				DBPort:      "5432",
				DBUser:      "postgres",
				DBName:      "appdb",
				DBMaxConns:  10,
				DBMinConns:  2,
				BcryptCost:  10,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestConfig_Lists(t *testing.T) {
	cfg := &Config{
		CORSAllowedOrigins: " http://a.test, ,http://b.test",
		ElasticsearchAddrs: "",
	}

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}

func TestConfig_PostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}

	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}
