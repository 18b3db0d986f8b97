package config

import (
	"os"
	"path/filepath"
	"testing"
)

var managedKeys = []string{
	"APP_MODE", "PORT", "JWT_SECRET", "RULES_PATH", "PUBLISH_THRESHOLD", "CORS_ORIGINS",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
}

// clearEnv unsets every key Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range managedKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.PublishThreshold != 90 {
		t.Errorf("expected threshold 90, got %d", cfg.PublishThreshold)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("expected wildcard origins, got %v", cfg.CORSOrigins)
	}
	if cfg.Production() {
		t.Errorf("expected development mode by default")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nDB_NAME=gate_test\nPUBLISH_THRESHOLD=70\nCORS_ORIGINS=https://a.example,https://b.example\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// already-set variables win over the file
	os.Setenv("PUBLISH_THRESHOLD", "85")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port from file, got %s", cfg.Port)
	}
	if cfg.DB.Name != "gate_test" {
		t.Errorf("expected db name from file, got %s", cfg.DB.Name)
	}
	if cfg.PublishThreshold != 85 {
		t.Errorf("expected threshold from environment, got %d", cfg.PublishThreshold)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_ThresholdOutOfRange(t *testing.T) {
	clearEnv(t)
	os.Setenv("PUBLISH_THRESHOLD", "120")
	if _, err := Load(""); err == nil {
		t.Errorf("expected error for threshold 120")
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: "5433", User: "u", Password: "p", Name: "n", SSLMode: "require"}
	want := "host=db port=5433 user=u password=p dbname=n sslmode=require"
	if got := c.DSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
