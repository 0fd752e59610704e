// Command mkcatalog writes placeholder catalogs and checks catalog files
// against the layout they would produce.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"bookcosmos/cosmos"
	"bookcosmos/internal/catalog"
	"bookcosmos/internal/config"

	"gonum.org/v1/gonum/spatial/r3"
)

func main() {
	var (
		mode       = flag.String("mode", "demo", "demo|check.")
		inPath     = flag.String("in", "", "Catalog to check (check mode).")
		outPath    = flag.String("out", "", "Output catalog (demo mode, - for stdout).")
		n          = flag.Int("n", 24, "Item count (demo mode).")
		seed       = flag.Int64("seed", 1, "Generator seed (demo mode).")
		configPath = flag.String("config", "", "YAML configuration used for the layout summary.")
	)
	flag.Parse()

	switch strings.ToLower(*mode) {
	case "demo":
		if *outPath == "" {
			fatalf("usage: mkcatalog -mode demo -out items.yaml [-n 24] [-seed 1]")
		}
		if err := writeDemo(*outPath, *n, *seed); err != nil {
			fatalf("demo: %v", err)
		}
	case "check":
		if *inPath == "" {
			fatalf("usage: mkcatalog -mode check -in items.yaml [-config cosmos.yaml]")
		}
		if err := check(*inPath, *configPath); err != nil {
			fatalf("check: %v", err)
		}
	default:
		fatalf("unknown mode: %s", *mode)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func writeDemo(outPath string, n int, seed int64) error {
	if n <= 0 {
		return fmt.Errorf("n out of range: %d", n)
	}
	data, err := catalog.Encode(catalog.Demo(n, seed))
	if err != nil {
		return err
	}
	if outPath == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outPath, data, 0o644)
}

func check(inPath, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	items, err := catalog.Load(inPath)
	if err != nil {
		return err
	}
	core := cfg.Core()
	var rng *rand.Rand
	if core.Seed != 0 {
		rng = rand.New(rand.NewSource(core.Seed))
	}
	placed := cosmos.Layout(items, core.Layout, rng)
	minGap := -1.0
	for i := range placed {
		for j := i + 1; j < len(placed); j++ {
			d := r3.Norm(r3.Sub(placed[i].Position, placed[j].Position))
			if minGap < 0 || d < minGap {
				minGap = d
			}
		}
	}
	fmt.Printf("%s: %d items, radius %.3g, jitter bound %.3g\n",
		inPath, len(items), core.Layout.Radius(len(items)), core.Layout.JitterBound(len(items)))
	if minGap >= 0 {
		fmt.Printf("closest panel centers: %.3g apart (panel height %.3g)\n", minGap, core.PanelHeight)
	}
	return nil
}
