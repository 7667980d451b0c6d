package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.AppPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.AppPort)
	}
	if cfg.PhoneDefaultRegion != "IN" {
		t.Fatalf("expected default region IN, got %q", cfg.PhoneDefaultRegion)
	}
	if cfg.TokenExpires != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.TokenExpires)
	}
	if cfg.SMSTimeout != 15*time.Second {
		t.Fatalf("expected 15s sms timeout, got %s", cfg.SMSTimeout)
	}
	if cfg.PushTimeout != 10*time.Second {
		t.Fatalf("expected 10s push timeout, got %s", cfg.PushTimeout)
	}
	if cfg.StorageDriver != StoragePostgres {
		t.Fatalf("expected postgres storage, got %q", cfg.StorageDriver)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SMS_PROVIDER_URL", "http://sms.local/send")
	t.Setenv("MIN_PASSWORD_LENGTH", "10")
	t.Setenv("SMS_TIMEOUT", "3s")
	t.Setenv("PUSH_TIMEOUT", "7s")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.TokenExpires != 2*time.Hour {
		t.Fatalf("expected 2h ttl, got %s", cfg.TokenExpires)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("expected memory storage, got %q", cfg.StorageDriver)
	}
	if cfg.SMSProviderURL != "http://sms.local/send" {
		t.Fatalf("unexpected sms url %q", cfg.SMSProviderURL)
	}
	if cfg.MinPasswordLength != 10 {
		t.Fatalf("expected min password 10, got %d", cfg.MinPasswordLength)
	}
	if cfg.SMSTimeout != 3*time.Second || cfg.PushTimeout != 7*time.Second {
		t.Fatalf("expected independent timeouts, got sms=%s push=%s", cfg.SMSTimeout, cfg.PushTimeout)
	}
}

func TestParseRejectsMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Parse(); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestParseRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_DRIVER", "mongo")
	if _, err := Parse(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
