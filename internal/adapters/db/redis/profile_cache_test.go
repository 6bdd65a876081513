package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/vidora/vidora/internal/domain/model"
)

func newCache(t *testing.T) (*ProfileCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)

	client := redisv9.NewClient(&redisv9.Options{
		Addr: mr.Addr(),
	})
	return NewProfileCache(client, time.Minute), mr
}

func sampleProfile(handle string) model.ChannelProfile {
	return model.ChannelProfile{
		ID:              uuid.New(),
		Handle:          handle,
		FullName:        "Some One",
		SubscriberCount: 7,
		IsSubscribed:    true,
	}
}

func TestProfileCache_MissThenHit(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()
	viewer := uuid.New()

	_, ok, err := cache.GetChannel(ctx, "alice", viewer)
	if err != nil {
		t.Fatalf("GetChannel err: %v", err)
	}
	if ok {
		t.Fatal("empty cache must miss")
	}

	want := sampleProfile("alice")
	if err := cache.SetChannel(ctx, "alice", viewer, want); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}

	got, ok, err := cache.GetChannel(ctx, "alice", viewer)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if got.ID != want.ID || got.SubscriberCount != 7 || !got.IsSubscribed {
		t.Fatalf("cached profile mangled: %+v", got)
	}
}

func TestProfileCache_ViewerIsolation(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	viewerA := uuid.New()
	viewerB := uuid.New()

	if err := cache.SetChannel(ctx, "alice", viewerA, sampleProfile("alice")); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}

	_, ok, err := cache.GetChannel(ctx, "alice", viewerB)
	if err != nil {
		t.Fatalf("GetChannel err: %v", err)
	}
	if ok {
		t.Fatal("another viewer must not see a cached entry")
	}
}

func TestProfileCache_InvalidateSweepsAllViewers(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	viewers := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, v := range viewers {
		if err := cache.SetChannel(ctx, "alice", v, sampleProfile("alice")); err != nil {
			t.Fatalf("SetChannel: %v", err)
		}
	}
	other := uuid.New()
	if err := cache.SetChannel(ctx, "bob", other, sampleProfile("bob")); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}

	if err := cache.InvalidateChannel(ctx, "alice"); err != nil {
		t.Fatalf("InvalidateChannel: %v", err)
	}

	for _, v := range viewers {
		if _, ok, _ := cache.GetChannel(ctx, "alice", v); ok {
			t.Fatal("invalidated entry still present")
		}
	}
	if _, ok, _ := cache.GetChannel(ctx, "bob", other); !ok {
		t.Fatal("other handles must survive the sweep")
	}
}

func TestProfileCache_ExpiresWithTTL(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()
	viewer := uuid.New()

	if err := cache.SetChannel(ctx, "alice", viewer, sampleProfile("alice")); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, ok, _ := cache.GetChannel(ctx, "alice", viewer); ok {
		t.Fatal("entry must expire after the TTL")
	}
}

func TestProfileCache_CorruptEntryIsAMiss(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()
	viewer := uuid.New()

	mr.Set(channelKey("alice", viewer), "{not json")

	_, ok, err := cache.GetChannel(ctx, "alice", viewer)
	if err != nil {
		t.Fatalf("GetChannel err: %v", err)
	}
	if ok {
		t.Fatal("corrupt payload must be treated as a miss")
	}
}
