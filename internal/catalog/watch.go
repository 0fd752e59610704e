package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"bookcosmos/cosmos"

	"github.com/fsnotify/fsnotify"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
}

// ErrUnbuffered is returned by Watch for an out channel without a buffer.
var ErrUnbuffered = errors.New("catalog watch: out channel needs a buffer")

// Watch reloads path whenever it changes and sends each successfully parsed
// list on out. Sends never block: a reload the consumer has not picked up yet
// is replaced by the newer one, so out needs a buffer of at least one. It
// returns when ctx is done.
func Watch(ctx context.Context, path string, debounce time.Duration, out chan []cosmos.Item, log Logger) error {
	if cap(out) < 1 {
		return ErrUnbuffered
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog watch: %w", err)
	}
	defer w.Close()

	// Watch the directory so editors that replace the file by rename are seen.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("catalog watch %s: %w", dir, err)
	}
	name := filepath.Clean(path)

	deb := newDebouncer(debounce)
	defer deb.cancel()

	reload := func() {
		items, err := Load(path)
		if err != nil {
			if log != nil {
				log.WriteLineString("catalog: reload failed: " + err.Error())
			}
			return
		}
		if log != nil {
			log.WriteLineString(fmt.Sprintf("catalog: reloaded %d items", len(items)))
		}
		offer(out, items)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			deb.trigger(reload)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if log != nil {
				log.WriteLineString("catalog: watch error: " + err.Error())
			}
		}
	}
}

// offer replaces any pending value in a one-slot channel with items.
func offer(out chan []cosmos.Item, items []cosmos.Item) {
	for {
		select {
		case out <- items:
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}
