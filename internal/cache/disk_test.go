package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	s, err := OpenDiskStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenDiskStore() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDiskStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2025, 1, 10, 19, 30, 0, 0, time.UTC)

	if err := s.Store(ctx, "games:2025-01-10", []byte(`{"games":[]}`), at); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	payload, fetchedAt, ok, err := s.Load(ctx, "games:2025-01-10")
	if err != nil || !ok {
		t.Fatalf("Load() = ok=%v, err=%v, want ok=true", ok, err)
	}
	if string(payload) != `{"games":[]}` {
		t.Errorf("payload = %q", payload)
	}
	if !fetchedAt.Equal(at) {
		t.Errorf("fetchedAt = %v, want %v", fetchedAt, at)
	}
}

func TestDiskStoreMissingKey(t *testing.T) {
	s := newTestStore(t)

	_, _, ok, err := s.Load(context.Background(), "standings")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok {
		t.Error("Load() ok = true for missing key")
	}
}

func TestDiskStoreOlderWriteLoses(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	newer := time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Minute)

	if err := s.Store(ctx, "standings", []byte("new"), newer); err != nil {
		t.Fatalf("Store(newer) error = %v", err)
	}
	if err := s.Store(ctx, "standings", []byte("old"), older); err != nil {
		t.Fatalf("Store(older) error = %v", err)
	}

	payload, fetchedAt, ok, err := s.Load(ctx, "standings")
	if err != nil || !ok {
		t.Fatalf("Load() = ok=%v, err=%v", ok, err)
	}
	if string(payload) != "new" || !fetchedAt.Equal(newer) {
		t.Errorf("got (%q, %v), want the newer row to survive", payload, fetchedAt)
	}
}

func TestDiskStoreNewerWriteReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	first := time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)

	if err := s.Store(ctx, "leaders", []byte("v1"), first); err != nil {
		t.Fatalf("Store(v1) error = %v", err)
	}
	if err := s.Store(ctx, "leaders", []byte("v2"), first.Add(time.Second)); err != nil {
		t.Fatalf("Store(v2) error = %v", err)
	}

	payload, _, _, err := s.Load(ctx, "leaders")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(payload) != "v2" {
		t.Errorf("payload = %q, want v2", payload)
	}
}

func TestDiskStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()
	at := time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)

	s, err := OpenDiskStore(path)
	if err != nil {
		t.Fatalf("OpenDiskStore() error = %v", err)
	}
	if err := s.Store(ctx, "games:2025-01-10", []byte("persisted"), at); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s2, err := OpenDiskStore(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()

	payload, _, ok, err := s2.Load(ctx, "games:2025-01-10")
	if err != nil || !ok {
		t.Fatalf("Load() after reopen = ok=%v, err=%v", ok, err)
	}
	if string(payload) != "persisted" {
		t.Errorf("payload = %q", payload)
	}
}

func TestDiskStoreDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Store(ctx, "leaders", []byte("x"), time.Now()); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := s.Delete(ctx, "leaders"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	_, _, ok, err := s.Load(ctx, "leaders")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ok {
		t.Error("Load() ok = true after Delete")
	}
}
