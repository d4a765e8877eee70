package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"tablebooker/models"
)

func TestMemoryStoreUnknownIDReturnsFreshSession(t *testing.T) {
	store := NewMemoryStore(0)
	sess, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if sess.ID != "nope" {
		t.Errorf("fresh session id = %q, want nope", sess.ID)
	}
	if len(sess.Slots.MissingForBooking()) == 0 {
		t.Error("fresh session must start with empty slots")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	sess := models.NewSession("s1")
	sess.Slots.Restaurant = "PizzaPalace"
	sess.Slots.PartySize = 4
	sess.AwaitingConfirmation = true
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Slots.Restaurant != "PizzaPalace" || got.Slots.PartySize != 4 || !got.AwaitingConfirmation {
		t.Errorf("round trip lost state: %+v", got)
	}

	// The decoded copy is independent of the stored bytes.
	got.Slots.Restaurant = "SushiZen"
	again, _ := store.Get(ctx, "s1")
	if again.Slots.Restaurant != "PizzaPalace" {
		t.Error("mutating a loaded session must not change the stored one")
	}
}

func TestMemoryStoreExpire(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	sess := models.NewSession("s1")
	sess.Slots.Name = "Jane Smith"
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := store.Expire(ctx, "s1"); err != nil {
		t.Fatalf("Expire returned error: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Slots.Name != "" {
		t.Errorf("expired session must come back fresh, got Name=%q", got.Slots.Name)
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	store := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()

	sess := models.NewSession("s1")
	sess.Slots.Email = "jane@example.com"
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	time.Sleep(40 * time.Millisecond)
	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Slots.Email != "" {
		t.Error("session past its TTL must come back fresh")
	}
}

func TestMemoryStoreLockSerializes(t *testing.T) {
	store := NewMemoryStore(0)

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			unlock := store.Lock("same")
			defer unlock()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			time.Sleep(time.Millisecond)
		}(i)
	}
	wg.Wait()

	if len(order) != 4 {
		t.Errorf("all lock holders must run, got %d", len(order))
	}
}

func TestMemoryStoreExpireDropsTurnLock(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	unlock := store.Lock("s1")
	unlock()
	if err := store.Put(ctx, models.NewSession("s1")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	if err := store.Expire(ctx, "s1"); err != nil {
		t.Fatalf("Expire returned error: %v", err)
	}

	store.lockMu.Lock()
	_, held := store.locks["s1"]
	store.lockMu.Unlock()
	if held {
		t.Error("expired session must not keep its turn lock entry")
	}
}

func TestMemoryStoreTTLLapseEvictsEntry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	if err := store.Put(ctx, models.NewSession("s1")); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, err := store.Get(ctx, "s1"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	store.mu.RLock()
	_, kept := store.sessions["s1"]
	store.mu.RUnlock()
	if kept {
		t.Error("a lapsed entry must be evicted on the first Get that sees it")
	}
}
