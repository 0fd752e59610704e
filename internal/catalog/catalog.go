// Package catalog supplies the ordered item list the cosmos lays out: a YAML
// file on disk, or generated placeholders when no file is given.
package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"bookcosmos/cosmos"

	"gopkg.in/yaml.v3"
)

// ErrNoItems is returned for a catalog file that lists nothing.
var ErrNoItems = errors.New("catalog has no items")

type fileItem struct {
	ID           string  `yaml:"id"`
	AspectWidth  float64 `yaml:"aspect_width"`
	AspectHeight float64 `yaml:"aspect_height"`
	Texture      string  `yaml:"texture"`
}

type file struct {
	Items []fileItem `yaml:"items"`
}

// Load reads a catalog file.
func Load(path string) ([]cosmos.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return items, nil
}

// Parse decodes catalog YAML. Items without an id or with a non-positive
// aspect are rejected; duplicate ids are rejected.
func Parse(data []byte) ([]cosmos.Item, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, ErrNoItems
	}

	seen := make(map[string]struct{}, len(f.Items))
	out := make([]cosmos.Item, 0, len(f.Items))
	for i, it := range f.Items {
		id := strings.TrimSpace(it.ID)
		if id == "" {
			return nil, fmt.Errorf("item %d: missing id", i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("item %d: duplicate id %q", i, id)
		}
		seen[id] = struct{}{}
		if it.AspectWidth == 0 && it.AspectHeight == 0 {
			it.AspectWidth, it.AspectHeight = 2, 3
		}
		if !(it.AspectWidth > 0) || !(it.AspectHeight > 0) {
			return nil, fmt.Errorf("item %q: aspect %vx%v must be positive", id, it.AspectWidth, it.AspectHeight)
		}
		out = append(out, cosmos.Item{
			ID:           id,
			AspectWidth:  it.AspectWidth,
			AspectHeight: it.AspectHeight,
			TextureRef:   it.Texture,
		})
	}
	return out, nil
}

// Demo generates n placeholder items with book-like aspects.
func Demo(n int, seed int64) []cosmos.Item {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	aspects := [][2]float64{{2, 3}, {5, 8}, {3, 4}, {1, 1}, {4, 3}}
	out := make([]cosmos.Item, n)
	for i := range out {
		a := aspects[rng.Intn(len(aspects))]
		out[i] = cosmos.Item{
			ID:           fmt.Sprintf("book-%03d", i+1),
			AspectWidth:  a[0],
			AspectHeight: a[1],
			TextureRef:   fmt.Sprintf("demo://%d", rng.Int63()),
		}
	}
	return out
}

// Shuffle permutes items in place. Layout itself never randomizes order.
func Shuffle(items []cosmos.Item, rng *rand.Rand) {
	swap := func(i, j int) { items[i], items[j] = items[j], items[i] }
	if rng == nil {
		rand.Shuffle(len(items), swap)
		return
	}
	rng.Shuffle(len(items), swap)
}

// Encode renders items in the catalog file format.
func Encode(items []cosmos.Item) ([]byte, error) {
	f := file{Items: make([]fileItem, len(items))}
	for i, it := range items {
		f.Items[i] = fileItem{ID: it.ID, AspectWidth: it.AspectWidth, AspectHeight: it.AspectHeight, Texture: it.TextureRef}
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: encoding YAML: %w", err)
	}
	return data, nil
}
