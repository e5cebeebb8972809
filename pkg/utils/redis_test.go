package utils

import (
	"context"
	"testing"
	"time"
)

func TestRedisConfig_Defaults(t *testing.T) {
	c := RedisConfig{MinIdleConns: -1}.withDefaults()
	if c.PoolSize != 20 || c.MinIdleConns != 0 || c.PingTimeout != 2*time.Second {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestOpenRedis_RequiresAddr(t *testing.T) {
	if _, err := OpenRedis(context.Background(), RedisConfig{}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestClientOptions_URLWins(t *testing.T) {
	cfg := RedisConfig{URL: "redis://:secret@cache:6380/2", Addr: "ignored:6379"}.withDefaults()
	opts, err := clientOptions(cfg)
	if err != nil {
		t.Fatalf("clientOptions: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.Password != "secret" || opts.DB != 2 {
		t.Fatalf("unexpected options: addr=%s db=%d", opts.Addr, opts.DB)
	}
	if opts.PoolSize != 20 || opts.DialTimeout != 3*time.Second {
		t.Fatalf("pool settings not applied: %+v", opts)
	}
}

func TestClientOptions_Addr(t *testing.T) {
	opts, err := clientOptions(RedisConfig{Addr: "localhost:6379", Password: "pw", DB: 1}.withDefaults())
	if err != nil {
		t.Fatalf("clientOptions: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.Password != "pw" || opts.DB != 1 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestClientOptions_BadURL(t *testing.T) {
	if _, err := clientOptions(RedisConfig{URL: "http://nope"}); err == nil {
		t.Fatalf("expected error for non-redis scheme")
	}
}
