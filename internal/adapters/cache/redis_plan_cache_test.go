package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisPlanCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisPlanCache(client), mr
}

func TestRedisPlanCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	if _, ok, err := c.Get(ctx, "plan:abc"); err != nil || ok {
		t.Fatalf("Get on empty cache = ok %v, err %v; want miss", ok, err)
	}

	if err := c.Put(ctx, "plan:abc", []byte(`{"x":1}`), time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !mr.Exists("solar:plan:abc") {
		t.Fatal("expected prefixed key in redis")
	}

	got, ok, err := c.Get(ctx, "plan:abc")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v, err %v; want hit", ok, err)
	}
	if string(got) != `{"x":1}` {
		t.Fatalf("payload = %s", got)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "plan:abc"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestRedisPlanCacheSkipsZeroTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	if err := c.Put(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if mr.Exists("solar:k") {
		t.Fatal("zero ttl should not be stored")
	}

	if err := c.Put(ctx, " ", []byte("v"), time.Minute); err == nil {
		t.Fatal("expected error for blank key")
	}
}

func TestRedisPlanCacheReportsConnectionErrors(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	mr.Close()

	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Fatal("expected error after server shutdown")
	}
}

func TestNewRedisPlanCacheFromURL(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisPlanCacheFromURL(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if _, err := NewRedisPlanCacheFromURL(context.Background(), "not a url"); err == nil {
		t.Fatal("expected parse error")
	}
}
