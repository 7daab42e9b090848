package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"fitx/api/internal/config"
	"fitx/api/internal/repository/memstore"
)

func TestOpenStoresFallsBackToMemory(t *testing.T) {
	st, pool, checks, err := openStores(context.Background(), &config.AppConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("open stores: %v", err)
	}
	if pool != nil || len(checks) != 0 {
		t.Fatalf("expected no pool and no database check, got pool=%v checks=%d", pool, len(checks))
	}
	if _, ok := st.users.(*memstore.UserStore); !ok {
		t.Fatalf("expected in-memory user store, got %T", st.users)
	}
}

func TestOpenStoresReportsBadDSN(t *testing.T) {
	cfg := &config.AppConfig{Postgres: config.PostgresConfig{DSN: "postgres://%zz"}}
	if _, _, _, err := openStores(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected an error for an unparsable dsn")
	}
}
