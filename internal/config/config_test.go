package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_GatekeeperCircuitParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("GATEKEEPER_BASE_URL", "http://gatekeeper:8081")
	t.Setenv("GATEKEEPER_TIMEOUT", "4s")
	t.Setenv("GATEKEEPER_CIRCUIT_ENABLED", "true")
	t.Setenv("GATEKEEPER_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("GATEKEEPER_CIRCUIT_OPEN_TIMEOUT", "30s")
	t.Setenv("GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.GatekeeperBaseURL != "http://gatekeeper:8081" {
		t.Fatalf("unexpected GatekeeperBaseURL: %q", cfg.GatekeeperBaseURL)
	}
	if cfg.GatekeeperTimeout != 4*time.Second {
		t.Fatalf("unexpected GatekeeperTimeout: %s", cfg.GatekeeperTimeout)
	}
	if !cfg.GatekeeperCircuitEnabled || cfg.GatekeeperCircuitFailureCount != 3 {
		t.Fatalf("unexpected circuit config: enabled=%v failures=%d", cfg.GatekeeperCircuitEnabled, cfg.GatekeeperCircuitFailureCount)
	}
	if cfg.GatekeeperCircuitOpenTimeout != 30*time.Second || cfg.GatekeeperCircuitHalfOpenMaxReq != 1 {
		t.Fatalf("unexpected circuit timings: open=%s half-open=%d", cfg.GatekeeperCircuitOpenTimeout, cfg.GatekeeperCircuitHalfOpenMaxReq)
	}
}

func TestLoad_GatekeeperCircuitValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("GATEKEEPER_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for GATEKEEPER_CIRCUIT_FAILURE_COUNT < 1")
	}
}

func TestLoad_CacheValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "-5s")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative CACHE_TTL")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel.String())
	}
}
