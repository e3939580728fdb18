package kv

import (
	"context"
	"testing"
)

type recordingNotifier struct {
	keys []string
}

func (n *recordingNotifier) Publish(ctx context.Context, key string) error {
	n.keys = append(n.keys, key)
	return nil
}

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestKeyNamespacing(t *testing.T) {
	if got := Key("products"); got != "teltech:products" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := Key("session", "admin"); got != "teltech:session:admin" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := Key("", "cart"); got != "teltech:cart" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestReadAbsentKeyYieldsEmpty(t *testing.T) {
	store := NewStore(NewMemoryBackend(), nil, nil)

	values := Read[item](context.Background(), store, Key("products"))
	if values == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(values) != 0 {
		t.Fatalf("expected empty, got %d items", len(values))
	}
}

func TestReadMalformedPayloadYieldsEmpty(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewStore(backend, nil, nil)
	key := Key("products")

	if err := backend.Set(context.Background(), key, "{not json"); err != nil {
		t.Fatalf("seed backend: %v", err)
	}

	values := Read[item](context.Background(), store, key)
	if len(values) != 0 {
		t.Fatalf("expected empty on malformed payload, got %d items", len(values))
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryBackend(), nil, nil)
	key := Key("products")
	want := []item{{ID: "a", Name: "Widget"}, {ID: "b", Name: "Gadget"}}

	if err := Write(context.Background(), store, key, want); err != nil {
		t.Fatalf("write: %v", err)
	}

	got := Read[item](context.Background(), store, key)
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("item %d: expected %+v got %+v", i, want[i], got[i])
		}
	}
}

func TestWriteNilStoresEmptyArray(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewStore(backend, nil, nil)
	key := Key("cart")

	if err := Write[item](context.Background(), store, key, nil); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := backend.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if raw != "[]" {
		t.Fatalf("expected empty array payload, got %q", raw)
	}
}

func TestWritePublishesChangedKey(t *testing.T) {
	notifier := &recordingNotifier{}
	store := NewStore(NewMemoryBackend(), notifier, nil)
	key := Key("products")

	if err := Write(context.Background(), store, key, []item{{ID: "a"}}); err != nil {
		t.Fatalf("write: %v", err)
	}

	if len(notifier.keys) != 1 || notifier.keys[0] != key {
		t.Fatalf("expected one signal for %s, got %v", key, notifier.keys)
	}
}

func TestFlags(t *testing.T) {
	store := NewStore(NewMemoryBackend(), nil, nil)
	key := Key("session", "admin")

	if got := store.ReadFlag(context.Background(), key); got != "" {
		t.Fatalf("expected empty flag, got %q", got)
	}

	if err := store.WriteFlag(context.Background(), key, "true"); err != nil {
		t.Fatalf("write flag: %v", err)
	}
	if got := store.ReadFlag(context.Background(), key); got != "true" {
		t.Fatalf("expected true, got %q", got)
	}

	if err := store.DeleteFlag(context.Background(), key); err != nil {
		t.Fatalf("delete flag: %v", err)
	}
	if got := store.ReadFlag(context.Background(), key); got != "" {
		t.Fatalf("expected flag cleared, got %q", got)
	}
}
