package weather

import (
	"context"
	"testing"
	"time"

	"github.com/akozhamseitov/weather-api/internal/weather/types"
)

func TestMemoryCache_GetSet(t *testing.T) {
	cache := NewMemoryCache(4, 5*time.Minute)
	ctx := context.Background()

	if _, ok := cache.Get(ctx, "Almaty"); ok {
		t.Fatal("Get() on empty cache reported a hit")
	}

	want := types.Weather{City: "Almaty", Temp: 25, Description: "clear sky"}
	cache.Set(ctx, "Almaty", want)

	got, ok := cache.Get(ctx, "Almaty")
	if !ok {
		t.Fatal("Get() after Set() reported a miss")
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	// Keys are case-sensitive exact matches.
	if _, ok := cache.Get(ctx, "almaty"); ok {
		t.Error("Get() with different case reported a hit")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	cache := NewMemoryCache(4, 5*time.Minute)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set(ctx, "Tokyo", types.Weather{City: "Tokyo", Temp: 18, Description: "rain"})

	now = now.Add(4 * time.Minute)
	if _, ok := cache.Get(ctx, "Tokyo"); !ok {
		t.Fatal("Get() within TTL reported a miss")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get(ctx, "Tokyo"); ok {
		t.Fatal("Get() after TTL reported a hit")
	}
	if cache.Len() != 0 {
		t.Errorf("expired entry not removed, Len() = %d", cache.Len())
	}
}

func TestMemoryCache_SetResetsTTL(t *testing.T) {
	cache := NewMemoryCache(4, 5*time.Minute)
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set(ctx, "Paris", types.Weather{City: "Paris", Temp: 10, Description: "mist"})

	now = now.Add(4 * time.Minute)
	fresh := types.Weather{City: "Paris", Temp: 12, Description: "clouds"}
	cache.Set(ctx, "Paris", fresh)

	now = now.Add(4 * time.Minute)
	got, ok := cache.Get(ctx, "Paris")
	if !ok {
		t.Fatal("Get() after overwrite reported a miss")
	}
	if got != fresh {
		t.Errorf("Get() = %+v, want overwritten value %+v", got, fresh)
	}
}

func TestMemoryCache_CapacityEviction(t *testing.T) {
	cache := NewMemoryCache(2, 5*time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "A", types.Weather{City: "A"})
	cache.Set(ctx, "B", types.Weather{City: "B"})

	// Touch A so B becomes the least recently used entry.
	if _, ok := cache.Get(ctx, "A"); !ok {
		t.Fatal("Get(A) reported a miss")
	}

	cache.Set(ctx, "C", types.Weather{City: "C"})

	if cache.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cache.Len())
	}
	if _, ok := cache.Get(ctx, "B"); ok {
		t.Error("least recently used entry was not evicted")
	}
	if _, ok := cache.Get(ctx, "A"); !ok {
		t.Error("recently used entry was evicted")
	}
	if _, ok := cache.Get(ctx, "C"); !ok {
		t.Error("newest entry was evicted")
	}
}
