// Package catalog loads the static mission and product-bundle documents at
// startup. The loaded catalog is read-only and passed to whoever needs a
// lookup, never consulted through package globals.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"
)

const (
	missionsFile = "planet_catalog.json"
	bundlesFile  = "product_bundles.json"
)

// Mission maps one item type to its orderable asset types.
type Mission struct {
	ItemType string   `json:"ITEM_TYPE"`
	Assets   []string `json:"ASSET_TYPE"`
}

// Bundle lists, per item type, the assets a product bundle delivers.
type Bundle struct {
	Assets map[string][]string `json:"assets"`
}

type Catalog struct {
	missions []*Mission
	bundles  map[string]*Bundle
}

// Load reads the mission catalog and bundle mapping from dir.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{bundles: make(map[string]*Bundle)}

	raw, err := os.ReadFile(filepath.Join(dir, missionsFile))
	if err != nil {
		return nil, fmt.Errorf("mission catalog: %v", err)
	}
	if err := json.Unmarshal(raw, &c.missions); err != nil {
		return nil, fmt.Errorf("mission catalog: %v", err)
	}

	raw, err = os.ReadFile(filepath.Join(dir, bundlesFile))
	if err != nil {
		return nil, fmt.Errorf("bundle mapping: %v", err)
	}
	if err := json.Unmarshal(raw, &c.bundles); err != nil {
		return nil, fmt.Errorf("bundle mapping: %v", err)
	}

	log.Infof("Loaded %d missions and %d product bundles from %q", len(c.missions), len(c.bundles), dir)
	return c, nil
}

// Missions returns the known item types in catalog order.
func (c *Catalog) Missions() []string {
	var out []string
	for _, m := range c.missions {
		out = append(out, m.ItemType)
	}
	return out
}

// AssetsFor returns the asset types orderable under the item type.
func (c *Catalog) AssetsFor(itemType string) []string {
	for _, m := range c.missions {
		if m.ItemType == itemType {
			out := make([]string, len(m.Assets))
			copy(out, m.Assets)
			return out
		}
	}
	return nil
}

// BundlesFor returns the bundle keys whose asset list for the item type
// contains the asset, sorted for stable display.
func (c *Catalog) BundlesFor(itemType, asset string) []string {
	var out []string
	for key, b := range c.bundles {
		for _, a := range b.Assets[itemType] {
			if a == asset {
				out = append(out, key)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}
