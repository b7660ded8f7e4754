package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func key(n int) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", n)))
}

func setSecrets(t *testing.T) {
	t.Setenv("COOKIE_HASH_KEY", key(32))
	t.Setenv("COOKIE_BLOCK_KEY", key(32))
	t.Setenv("PII_ENC_KEY", key(32))
}

func TestFromEnvDefaults(t *testing.T) {
	setSecrets(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("ListenAddr=%q, want :8080", cfg.ListenAddr)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Fatalf("PollInterval=%s, want 30s", cfg.PollInterval)
	}
	if cfg.DispatchLead != 2*time.Hour {
		t.Fatalf("DispatchLead=%s, want 2h", cfg.DispatchLead)
	}
	if cfg.DisplayLocation != time.UTC {
		t.Fatalf("DisplayLocation=%s, want UTC", cfg.DisplayLocation)
	}
	if cfg.Tariff.DiscountPercent != 10 || cfg.Tariff.Currency != "GBP" {
		t.Fatalf("unexpected tariff: %+v", cfg.Tariff)
	}
	if len(cfg.PIIEncKey) != 32 {
		t.Fatalf("PII key length=%d", len(cfg.PIIEncKey))
	}
}

func TestFromEnvRequiresSecrets(t *testing.T) {
	t.Setenv("COOKIE_HASH_KEY", "")
	t.Setenv("COOKIE_BLOCK_KEY", key(32))
	t.Setenv("PII_ENC_KEY", key(32))

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected missing COOKIE_HASH_KEY to fail")
	}
}

func TestFromEnvRejectsShortPIIKey(t *testing.T) {
	setSecrets(t)
	t.Setenv("PII_ENC_KEY", key(16))

	if _, err := FromEnv(); err == nil {
		t.Fatal("expected 16-byte PII_ENC_KEY to fail")
	}
}

func TestFromEnvReadsKeyFromFile(t *testing.T) {
	setSecrets(t)
	path := filepath.Join(t.TempDir(), "pii.key")
	if err := os.WriteFile(path, []byte(key(32)+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PII_ENC_KEY", path)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.PIIEncKey) != 32 {
		t.Fatalf("PII key length=%d, want 32", len(cfg.PIIEncKey))
	}
}

func TestFromEnvWithoutSecretsValidatesNumbers(t *testing.T) {
	t.Setenv("DISPATCH_POLL_SECONDS", "0")
	if _, err := FromEnvWithoutSecrets(); err == nil {
		t.Fatal("expected DISPATCH_POLL_SECONDS=0 to fail")
	}

	t.Setenv("DISPATCH_POLL_SECONDS", "5")
	t.Setenv("MEMBER_DISCOUNT_PERCENT", "150")
	if _, err := FromEnvWithoutSecrets(); err == nil {
		t.Fatal("expected MEMBER_DISCOUNT_PERCENT=150 to fail")
	}

	t.Setenv("MEMBER_DISCOUNT_PERCENT", "15")
	t.Setenv("FARE_CURRENCY", "usd")
	t.Setenv("DISPLAY_TIMEZONE", "UTC")
	cfg, err := FromEnvWithoutSecrets()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PollInterval != 5*time.Second || cfg.Tariff.DiscountPercent != 15 || cfg.Tariff.Currency != "USD" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestFromEnvWithoutSecretsRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("DISPLAY_TIMEZONE", "Mars/Olympus_Mons")
	if _, err := FromEnvWithoutSecrets(); err == nil {
		t.Fatal("expected unknown timezone to fail")
	}
}
