package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	ok := Config{BoardAddress: "tasks:8080", HTTP: HTTPConfig{Timeout: time.Second, ShutdownTimeout: time.Second}}
	if err := ok.validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	noBoard := ok
	noBoard.BoardAddress = ""
	if err := noBoard.validate(); err == nil {
		t.Fatalf("expected error for empty board_address")
	}

	noTimeout := ok
	noTimeout.HTTP.Timeout = 0
	if err := noTimeout.validate(); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}

func TestMustLoad_FileWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "api_server:\n  address: \":9000\"\nboard_address: \"board:9090\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := MustLoad(path)
	if cfg.HTTP.Address != ":9000" || cfg.BoardAddress != "board:9090" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.HTTP.Timeout != 5*time.Second || cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected default timeouts, got %+v", cfg.HTTP)
	}
}
