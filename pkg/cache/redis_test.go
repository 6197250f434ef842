package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// newMiniRedisCache returns a cache backed by an in-process redis server.
func newMiniRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: srv.Addr()}))
	t.Cleanup(func() { c.Close() })
	return c, srv
}

func TestRedisCachePingUnreachable(t *testing.T) {
	c := NewRedisCache(RedisOptions{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := c.Ping(ctx)
	if err == nil {
		t.Skip("something is listening on 127.0.0.1:1")
	}
	if !IsRetryable(err) {
		t.Errorf("Ping error should be retryable: %v", err)
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Ping error should wrap ErrNetwork: %v", err)
	}
}

func TestRedisCachePing(t *testing.T) {
	c, _ := newMiniRedisCache(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newMiniRedisCache(t)

	data, hit, err := c.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get(missing) error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get(missing) = %q, %v; want miss", data, hit)
	}

	want := []byte{0, 1, 2, 255, 0}
	if err := c.Set(ctx, "render:abc", want, time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, hit, err := c.Get(ctx, "render:abc")
	if err != nil || !hit {
		t.Fatalf("Get() = %v, %v; want hit", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get() = %v, want %v", got, want)
	}

	if err := c.Delete(ctx, "render:abc"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "render:abc"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "render:abc"); err != nil {
		t.Errorf("Delete() of a missing key error: %v", err)
	}
}

func TestRedisCacheTTL(t *testing.T) {
	ctx := context.Background()
	c, srv := newMiniRedisCache(t)

	tests := []struct {
		name    string
		ttl     time.Duration
		wantTTL time.Duration
		hitAt   time.Duration // lookup after fast-forwarding this far
		wantHit bool
	}{
		{"live entry", time.Hour, time.Hour, 30 * time.Minute, true},
		{"expired entry", time.Minute, time.Minute, 2 * time.Minute, false},
		{"zero ttl never expires", 0, 0, 1000 * time.Hour, true},
		{"negative ttl never expires", -time.Second, 0, 1000 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv.FlushAll()
			if err := c.Set(ctx, "k", []byte("v"), tt.ttl); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if got := srv.TTL("k"); got != tt.wantTTL {
				t.Errorf("server ttl = %v, want %v", got, tt.wantTTL)
			}
			srv.FastForward(tt.hitAt)
			_, hit, err := c.Get(ctx, "k")
			if err != nil {
				t.Fatalf("Get() error: %v", err)
			}
			if hit != tt.wantHit {
				t.Errorf("hit = %v, want %v", hit, tt.wantHit)
			}
		})
	}
}

func TestRedisCacheServerGone(t *testing.T) {
	ctx := context.Background()
	c, srv := newMiniRedisCache(t)
	srv.Close()

	if _, _, err := c.Get(ctx, "k"); err == nil {
		t.Error("Get() should fail when the server is gone")
	}
	if err := c.Ping(ctx); !IsRetryable(err) {
		t.Errorf("Ping() error = %v, want retryable", err)
	}
}
