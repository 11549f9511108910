package redis

import (
	"context"
	"testing"
	"time"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	var out payload
	hit, err := c.GetJSON(ctx, "missing", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if hit {
		t.Fatal("expected miss on empty cache")
	}

	in := payload{Name: "zelda", Count: 3}
	if err := c.SetJSON(ctx, "k", in, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	hit, err = c.GetJSON(ctx, "k", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !hit || out != in {
		t.Fatalf("hit=%v out=%+v, want %+v", hit, out, in)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.SetJSON(ctx, "k", payload{Name: "x"}, time.Nanosecond); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var out payload
	hit, err := c.GetJSON(ctx, "k", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if hit {
		t.Fatal("expired entry must miss")
	}
}

func TestMemoryCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.SetJSON(ctx, "k", payload{Name: "x"}, 0); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	var out payload
	hit, err := c.GetJSON(ctx, "k", &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !hit {
		t.Fatal("zero-TTL entry must stay")
	}
}

func TestMemoryCacheClose(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	if err := c.SetJSON(ctx, "k", payload{Name: "x"}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	var out payload
	hit, _ := c.GetJSON(ctx, "k", &out)
	if hit {
		t.Fatal("closed cache must be empty")
	}
}
