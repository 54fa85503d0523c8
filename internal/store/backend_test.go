package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/erazemk/educycle/internal/db"
)

func newRedisBackend(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, "test:"), mr
}

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	r, _ := newRedisBackend(t)
	return map[string]Backend{
		"sqlite": NewSQLite(db.NewTestDB(t)),
		"redis":  r,
	}
}

func TestBackendGetSetDelete(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, ok, err := backend.Get(ctx, "missing"); err != nil || ok {
				t.Fatalf("Get missing: ok=%v err=%v", ok, err)
			}

			if err := backend.Set(ctx, "k", "v1"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := backend.Set(ctx, "k", "v2"); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}

			value, ok, err := backend.Get(ctx, "k")
			if err != nil || !ok {
				t.Fatalf("Get: ok=%v err=%v", ok, err)
			}
			if value != "v2" {
				t.Errorf("expected 'v2', got %q", value)
			}

			if err := backend.Delete(ctx, "k", "never-existed"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, ok, _ := backend.Get(ctx, "k"); ok {
				t.Error("expected key to be gone after Delete")
			}
		})
	}
}

func TestBackendSetNX(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			stored, err := backend.SetNX(ctx, "once", "first")
			if err != nil || !stored {
				t.Fatalf("first SetNX: stored=%v err=%v", stored, err)
			}
			stored, err = backend.SetNX(ctx, "once", "second")
			if err != nil {
				t.Fatalf("second SetNX: %v", err)
			}
			if stored {
				t.Error("expected second SetNX to be ignored")
			}

			value, _, _ := backend.Get(ctx, "once")
			if value != "first" {
				t.Errorf("expected 'first', got %q", value)
			}
		})
	}
}

func TestRedisPrefix(t *testing.T) {
	backend, mr := newRedisBackend(t)
	ctx := context.Background()

	if err := backend.Set(ctx, UsersKey, "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists("test:" + UsersKey) {
		t.Errorf("expected key %q in redis, have %v", "test:"+UsersKey, mr.Keys())
	}
}
