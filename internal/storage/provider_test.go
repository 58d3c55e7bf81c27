package storage

import (
	"errors"
	"testing"

	"github.com/lumilearn/lumilearn-backend/internal/platform/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New failed: %v", err)
	}
	return log
}

func TestResolveAdapterMemory(t *testing.T) {
	log := newTestLogger(t)
	adapter, err := ResolveAdapter(log, ProviderConfig{Mode: ModeMemory})
	if err != nil {
		t.Fatalf("ResolveAdapter(memory) failed: %v", err)
	}
	if _, ok := adapter.(*MemoryAdapter); !ok {
		t.Fatalf("ResolveAdapter(memory)=%T, want *MemoryAdapter", adapter)
	}
}

func TestResolveAdapterNormalizesMode(t *testing.T) {
	log := newTestLogger(t)
	adapter, err := ResolveAdapter(log, ProviderConfig{Mode: "  MEMORY "})
	if err != nil {
		t.Fatalf("ResolveAdapter failed on padded mode: %v", err)
	}
	if _, ok := adapter.(*MemoryAdapter); !ok {
		t.Fatalf("padded mode resolved to %T", adapter)
	}
}

func TestResolveAdapterInvalidMode(t *testing.T) {
	log := newTestLogger(t)
	_, err := ResolveAdapter(log, ProviderConfig{Mode: "cassandra"})
	if err == nil {
		t.Fatalf("invalid mode accepted")
	}
	var be *BootstrapError
	if !errors.As(err, &be) {
		t.Fatalf("err=%T, want *BootstrapError", err)
	}
	if be.Code != BootstrapErrorInvalidMode {
		t.Fatalf("code=%q, want %q", be.Code, BootstrapErrorInvalidMode)
	}
	if be.Mode != "cassandra" {
		t.Fatalf("mode=%q, want cassandra", be.Mode)
	}
}
