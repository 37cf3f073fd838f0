package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-audit-trail/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "audit_trail", cfg.Database.DBName)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, int32(5), cfg.Database.MinConns)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "audit", cfg.Redis.Channel)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)

	assert.Equal(t, 10, cfg.Audit.RetentionYears)
	assert.True(t, cfg.Audit.EnableHashing)
	assert.True(t, cfg.Audit.EnableAnonymization)
	assert.ElementsMatch(t, []string{"DELETE", "APPROVE", "REJECT", "SUBMIT"}, cfg.Audit.CriticalActions)
	assert.ElementsMatch(t, []string{"password", "token", "secret", "apikey"}, cfg.Audit.ExcludedFields)
	assert.Equal(t, 1000, cfg.Audit.MaxEntriesPerQuery)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
database:
  host: "db.example.com"
  port: 5433
  user: "appuser"
  password: "secret123"
  dbname: "audit_prod"
  sslmode: "require"
redis:
  host: "redis.example.com"
  port: 6380
  db: 2
  channel: "prod-audit"
log:
  level: "warn"
  pretty: true
audit:
  retention_years: 7
  enable_hashing: true
  enable_anonymization: false
  critical_actions: ["DELETE", "EXPORT"]
  excluded_fields: ["password", "iban"]
  max_entries_per_query: 500
`)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, "prod-audit", cfg.Redis.Channel)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)

	assert.Equal(t, 7, cfg.Audit.RetentionYears)
	assert.False(t, cfg.Audit.EnableAnonymization)
	assert.Equal(t, []string{"DELETE", "EXPORT"}, cfg.Audit.CriticalActions)
	assert.Equal(t, 500, cfg.Audit.MaxEntriesPerQuery)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CAT_DATABASE_HOST", "env-db")
	t.Setenv("CAT_AUDIT_RETENTION_YEARS", "5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, 5, cfg.Audit.RetentionYears)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "u", Password: "p", DBName: "audit", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@localhost:5432/audit?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.Addr())
}

func TestAuditConfig_ToTrailConfig(t *testing.T) {
	a := AuditConfig{
		RetentionYears:      7,
		EnableHashing:       true,
		EnableAnonymization: true,
		CriticalActions:     []string{"delete", "EXPORT"},
		ExcludedFields:      []string{"password"},
		MaxEntriesPerQuery:  200,
		AnonymizationSalt:   "s",
	}

	tc := a.ToTrailConfig()
	assert.Equal(t, 7, tc.RetentionYears)
	// Actions are upper-cased on the way in.
	assert.Equal(t, []domain.Action{domain.ActionDelete, domain.ActionExport}, tc.CriticalActions)
	assert.Equal(t, 200, tc.MaxEntriesPerQuery)
	assert.Equal(t, "s", tc.AnonymizationSalt)
}
