// Package menu loads the storefront catalog.
package menu

import (
	_ "embed"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var defaultMenu []byte

type Item struct {
	ID    string  `yaml:"id" json:"id"`
	Name  string  `yaml:"name" json:"name"`
	Price float64 `yaml:"price" json:"price"`
}

type Category struct {
	Name  string `yaml:"name" json:"name"`
	Items []Item `yaml:"items" json:"items"`
}

type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Load returns the catalog from path, or the embedded catalog when path is
// empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Parse(defaultMenu)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, errors.Wrap(err, "read menu file")
	}
	return Parse(b)
}

// Parse decodes a YAML catalog and rejects duplicate ids, unnamed items and
// non-positive prices.
func Parse(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, errors.Wrap(err, "parse menu")
	}
	if len(c.Categories) == 0 {
		return Catalog{}, errors.New("menu has no categories")
	}
	seen := map[string]bool{}
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return Catalog{}, errors.Errorf("category %d has no name", i)
		}
		if cat.Items == nil {
			c.Categories[i].Items = []Item{}
		}
		for _, it := range cat.Items {
			switch {
			case it.ID == "" || strings.TrimSpace(it.Name) == "":
				return Catalog{}, errors.Errorf("category %q: item without id or name", cat.Name)
			case it.Price <= 0:
				return Catalog{}, errors.Errorf("item %q: price must be positive", it.ID)
			case seen[it.ID]:
				return Catalog{}, errors.Errorf("duplicate item id %q", it.ID)
			}
			seen[it.ID] = true
		}
	}
	return c, nil
}

// Find returns the item with the given id.
func (c Catalog) Find(id string) (Item, bool) {
	for _, cat := range c.Categories {
		for _, it := range cat.Items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return Item{}, false
}
