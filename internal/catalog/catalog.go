package catalog

import (
	"github.com/rickgao/coin-ingest/internal/config"
	"github.com/rickgao/coin-ingest/internal/model"
)

// Catalog is the immutable set of tracked assets, keyed by price API id.
type Catalog struct {
	entries []model.CatalogEntry
	bySrc   map[string]model.CatalogEntry
}

// New builds a Catalog. Entries keep their order; later duplicates of a
// source id are ignored.
func New(entries []model.CatalogEntry) *Catalog {
	c := &Catalog{
		entries: make([]model.CatalogEntry, 0, len(entries)),
		bySrc:   make(map[string]model.CatalogEntry, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.bySrc[e.SourceID]; dup {
			continue
		}
		c.entries = append(c.entries, e)
		c.bySrc[e.SourceID] = e
	}
	return c
}

// FromConfig builds a Catalog from configured assets.
func FromConfig(assets []config.AssetConfig) *Catalog {
	entries := make([]model.CatalogEntry, 0, len(assets))
	for _, a := range assets {
		entries = append(entries, model.CatalogEntry{
			SourceID: a.ID,
			Symbol:   a.Symbol,
			Name:     a.Name,
		})
	}
	return New(entries)
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []model.CatalogEntry {
	out := make([]model.CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// SourceIDs returns the price API ids in catalog order.
func (c *Catalog) SourceIDs() []string {
	ids := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		ids = append(ids, e.SourceID)
	}
	return ids
}

// Lookup returns the entry for a price API id.
func (c *Catalog) Lookup(sourceID string) (model.CatalogEntry, bool) {
	e, ok := c.bySrc[sourceID]
	return e, ok
}

// Len returns the number of tracked assets.
func (c *Catalog) Len() int {
	return len(c.entries)
}
