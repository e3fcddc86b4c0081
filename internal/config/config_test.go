package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("ALLOWED_ORIGINS", "https://admin.example.com, http://localhost:3000 ,")
	t.Setenv("MONGO_TRANSACTIONS", "false")
	t.Setenv("SESSION_TTL", "not-a-duration")

	cfg := Load()

	if cfg.ServerAddress != ":9090" {
		t.Errorf("ServerAddress = %q", cfg.ServerAddress)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.MongoTransactions {
		t.Error("expected transactions disabled")
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("SessionTTL = %v, want default", cfg.SessionTTL)
	}
}
