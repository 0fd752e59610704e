package hal

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"time"
)

// ScriptedPointer injects a pointer event before the given tick runs.
type ScriptedPointer struct {
	Tick  uint64
	Event PointerEvent
}

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	// Ticks stops the runner after N frames (0 = run until ctx is done).
	Ticks  uint64
	Width  int
	Height int

	Script []ScriptedPointer
	// Snapshot, when set, receives the last frame as PNG on exit.
	Snapshot string
}

// RunHeadless runs the app on a ticker without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) Step, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Width, cfg.Height, os.Stdout)
	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			for _, sp := range cfg.Script {
				if sp.Tick == tick {
					h.ptr.emit(sp.Event)
				}
			}
			if step != nil {
				if err := step(d); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return writeSnapshot(h.fb, cfg.Snapshot)
			}
		}
	}
}

func writeSnapshot(fb *hostFramebuffer, path string) error {
	if path == "" {
		return nil
	}
	img, _ := fb.toRGBA(nil, nil)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return f.Close()
}
