package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"bookcosmos/app"
	"bookcosmos/cosmos"
	"bookcosmos/hal"
	"bookcosmos/internal/buildinfo"
	"bookcosmos/internal/catalog"
	"bookcosmos/internal/config"

	"golang.org/x/sync/errgroup"
)

const watchDebounce = 200 * time.Millisecond

// clickScript collects -click tick:x,y flags.
type clickScript []hal.ScriptedPointer

func (c *clickScript) String() string { return fmt.Sprint(len(*c)) }

func (c *clickScript) Set(s string) error {
	tick, xy, ok := strings.Cut(s, ":")
	if !ok {
		return fmt.Errorf("click %q: want tick:x,y", s)
	}
	xs, ys, ok := strings.Cut(xy, ",")
	if !ok {
		return fmt.Errorf("click %q: want tick:x,y", s)
	}
	t, err := strconv.ParseUint(tick, 10, 64)
	if err != nil {
		return fmt.Errorf("click %q: %w", s, err)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return fmt.Errorf("click %q: %w", s, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return fmt.Errorf("click %q: %w", s, err)
	}
	*c = append(*c, hal.ScriptedPointer{Tick: t, Event: hal.PointerEvent{Kind: hal.PointerClick, X: x, Y: y}})
	return nil
}

type stderrLog struct{}

func (stderrLog) WriteLineString(s string) { fmt.Fprintln(os.Stderr, s) }

func main() {
	var (
		headless   hal.HeadlessConfig
		clicks     clickScript
		configPath string
		itemsPath  string
		demo       int
		watch      bool
		version    bool
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 0, "Tick rate in headless mode (0 = config window.hz).")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&headless.Snapshot, "snapshot", "", "Write the last headless frame as PNG.")
	flag.Var(&clicks, "click", "Inject a click in headless mode as tick:x,y (repeatable).")
	flag.StringVar(&configPath, "config", "", "YAML configuration file.")
	flag.StringVar(&itemsPath, "items", "", "YAML catalog of items.")
	flag.IntVar(&demo, "demo", 24, "Number of generated items when -items is not set.")
	flag.BoolVar(&watch, "watch", false, "Reload -items when the file changes.")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.Short())
		return
	}

	if err := run(headless, clicks, configPath, itemsPath, demo, watch); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(headless hal.HeadlessConfig, clicks clickScript, configPath, itemsPath string, demo int, watch bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var items []cosmos.Item
	if itemsPath != "" {
		if items, err = catalog.Load(itemsPath); err != nil {
			return err
		}
	} else {
		items = catalog.Demo(demo, cfg.Layout.Seed)
	}
	if cfg.Layout.Shuffle {
		var rng *rand.Rand
		if cfg.Layout.Seed != 0 {
			rng = rand.New(rand.NewSource(cfg.Layout.Seed))
		}
		catalog.Shuffle(items, rng)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var reloads chan []cosmos.Item
	g, gctx := errgroup.WithContext(ctx)
	if watch && itemsPath != "" {
		reloads = make(chan []cosmos.Item, 1)
		g.Go(func() error {
			err := catalog.Watch(gctx, itemsPath, watchDebounce, reloads, stderrLog{})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	newApp := func(h hal.HAL) hal.Step {
		return app.New(h, app.Config{View: cfg, Items: items, Reloads: reloads})
	}

	if headless.Enabled {
		if headless.Hz <= 0 {
			headless.Hz = cfg.Window.Hz
		}
		headless.Width, headless.Height = cfg.Window.Width, cfg.Window.Height
		headless.Script = clicks
		g.Go(func() error {
			defer cancel()
			return hal.RunHeadless(gctx, newApp, headless)
		})
		return g.Wait()
	}

	err = hal.RunWindow(newApp, hal.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Scale:  cfg.Window.Scale,
		TPS:    cfg.Window.Hz,
	})
	cancel()
	return errors.Join(err, g.Wait())
}
