package catalog

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"bookcosmos/cosmos"
)

const sample = `items:
  - id: dune
    aspect_width: 2
    aspect_height: 3
    texture: covers/dune.jpg
  - id: square
    aspect_width: 1
    aspect_height: 1
  - id: plain
`

func TestParse(t *testing.T) {
	items, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if items[0] != (cosmos.Item{ID: "dune", AspectWidth: 2, AspectHeight: 3, TextureRef: "covers/dune.jpg"}) {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if items[2].AspectWidth != 2 || items[2].AspectHeight != 3 {
		t.Fatalf("missing aspect not defaulted: %+v", items[2])
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"missing id":   "items:\n  - aspect_width: 1\n    aspect_height: 1\n",
		"duplicate id": "items:\n  - id: a\n  - id: a\n",
		"bad aspect":   "items:\n  - id: a\n    aspect_width: -1\n    aspect_height: 2\n",
		"bad yaml":     "items: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Fatalf("Parse() err = nil")
			}
		})
	}
	if _, err := Parse([]byte("items: []\n")); !errors.Is(err, ErrNoItems) {
		t.Fatalf("Parse(empty) err = %v, want ErrNoItems", err)
	}
}

func TestLoadWrapsPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "catalog") {
		t.Fatalf("Load() err = %v", err)
	}
}

func TestDemoDeterministic(t *testing.T) {
	a, b := Demo(20, 3), Demo(20, 3)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Demo()[%d] = %+v vs %+v", i, a[i], b[i])
		}
	}
	if Demo(0, 1) != nil {
		t.Fatalf("Demo(0) != nil")
	}
}

func TestShuffleKeepsItems(t *testing.T) {
	items := Demo(30, 1)
	seen := map[string]bool{}
	for _, it := range items {
		seen[it.ID] = true
	}
	Shuffle(items, rand.New(rand.NewSource(5)))
	for _, it := range items {
		if !seen[it.ID] {
			t.Fatalf("unknown id %q after shuffle", it.ID)
		}
		delete(seen, it.ID)
	}
	if len(seen) != 0 {
		t.Fatalf("lost %d items", len(seen))
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.trigger(func() { calls.Add(1) })
	}
	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}

	d.trigger(func() { calls.Add(1) })
	d.cancel()
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls after cancel = %d, want 1", got)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan []cosmos.Item, 1)
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, 20*time.Millisecond, out, nil) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("items:\n  - id: only\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case items := <-out:
		if len(items) != 1 || items[0].ID != "only" {
			t.Fatalf("reloaded = %+v", items)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no reload within 5s")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Watch() = %v, want context.Canceled", err)
	}
}

func TestOfferReplacesPending(t *testing.T) {
	out := make(chan []cosmos.Item, 1)
	offer(out, Demo(1, 1))
	offer(out, Demo(2, 1))
	if got := <-out; len(got) != 2 {
		t.Fatalf("pending len = %d, want newest (2)", len(got))
	}
}

func TestEncodeParses(t *testing.T) {
	items := Demo(6, 3)
	data, err := Encode(items)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Encode): %v", err)
	}
	if len(got) != len(items) || got[5] != items[5] {
		t.Fatalf("round trip = %+v, want %+v", got, items)
	}
}

func TestWatchRejectsUnbufferedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.yaml")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := Watch(ctx, path, time.Millisecond, make(chan []cosmos.Item), nil); !errors.Is(err, ErrUnbuffered) {
		t.Fatalf("Watch(unbuffered) = %v, want ErrUnbuffered", err)
	}
}
