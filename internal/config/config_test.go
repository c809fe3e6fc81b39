package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	t.Setenv("STORE", "")

	cfg, err := fromViper(viper.New())
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Addr() != ":8080" {
		t.Errorf("addr = %q", cfg.Addr())
	}
	if cfg.Store != StorePostgres {
		t.Errorf("store = %q", cfg.Store)
	}
	if cfg.WorkerCompleteInterval != 5*time.Minute || cfg.WorkerCompleteGrace != 15*time.Minute {
		t.Errorf("worker = %v / %v", cfg.WorkerCompleteInterval, cfg.WorkerCompleteGrace)
	}
	if cfg.LockTTL != 10*time.Second {
		t.Errorf("lock ttl = %v", cfg.LockTTL)
	}
	if cfg.JWTExpiry() != 24*time.Hour {
		t.Errorf("jwt expiry = %v", cfg.JWTExpiry())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STORE", "MEMORY")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("WORKER_COMPLETE_INTERVAL", "0s")

	cfg, err := fromViper(viper.New())
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Store != StoreMemory {
		t.Errorf("store = %q", cfg.Store)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("port = %q", cfg.ServerPort)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("origins = %v", cfg.CORSOrigins)
	}
	if cfg.WorkerCompleteInterval != 0 {
		t.Errorf("interval = %v", cfg.WorkerCompleteInterval)
	}
}

func TestRejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE", "sqlite")
	if _, err := fromViper(viper.New()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("STORE", "")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	if _, err := fromViper(viper.New()); err == nil {
		t.Fatal("expected error")
	}
}
