package app

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/MrSnakeDoc/linkbatch/internal/config"
	"github.com/MrSnakeDoc/linkbatch/internal/logger"
	"github.com/MrSnakeDoc/linkbatch/internal/store/memory"
)

func testConfig() *config.Config {
	return &config.Config{
		ListenPort:          "127.0.0.1:0",
		ShutdownTimeout:     time.Second,
		RequestTimeout:      time.Second,
		GCInterval:          time.Hour,
		RedisConnectTimeout: 200 * time.Millisecond,
		RedisRetryInterval:  10 * time.Millisecond,
		RedisMaxWait:        50 * time.Millisecond,
		RedisPingTimeout:    50 * time.Millisecond,
		RedisWarnThreshold:  1,
	}
}

func TestOpenBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	log := logger.NewNop()

	tests := []struct {
		name     string
		store    string
		addr     string
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{name: "memory", store: config.StoreMemory, wantName: "memory"},
		{name: "none", store: config.StoreNone, wantNil: true},
		{name: "redis", store: config.StoreRedis, addr: mr.Addr(), wantName: "redis"},
		{name: "redis unreachable", store: config.StoreRedis, addr: "127.0.0.1:1", wantErr: true},
		{name: "postgres bad url", store: config.StorePostgres, wantErr: true},
		{name: "unknown", store: "sqlite", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Store = tt.store
			cfg.RedisAddr = tt.addr
			cfg.DatabaseURL = "::not a dsn::"

			backend, err := openBackend(context.Background(), cfg, log)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("openBackend() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("openBackend() error = %v", err)
			}
			if tt.wantNil {
				if backend != nil {
					t.Errorf("openBackend() = %v, want nil", backend)
				}
				return
			}
			defer func() { _ = backend.Close() }()
			if backend.Name() != tt.wantName {
				t.Errorf("backend = %q, want %q", backend.Name(), tt.wantName)
			}
		})
	}
}

func TestBuildJanitor(t *testing.T) {
	log := logger.NewNop()

	cfg := testConfig()
	if a := build(cfg, log, memory.New()); a.janitor != nil {
		t.Error("janitor should be disabled without a share TTL")
	}

	cfg.ShareTTL = time.Hour
	if a := build(cfg, log, memory.New()); a.janitor == nil {
		t.Error("janitor should run with a share TTL")
	}

	if a := build(cfg, log, nil); a.janitor != nil {
		t.Error("janitor should be disabled without a store")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.ShareTTL = time.Hour
	a := build(cfg, logger.NewNop(), memory.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run() did not return after cancel")
	}
}
