package palate

import "sync"

// CatalogStore holds catalog items in memory. Insertion order is preserved
// so scoring passes iterate items deterministically, which keeps tie-breaks
// stable across identical requests.
type CatalogStore struct {
	mu    sync.RWMutex
	items map[string]*ItemFeatures
	order []string
}

// NewCatalogStore creates an empty catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{items: make(map[string]*ItemFeatures)}
}

// Put inserts or replaces a catalog item.
func (c *CatalogStore) Put(item ItemFeatures) error {
	if item.ItemID == "" {
		return ErrEmptyItemID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[item.ItemID]; !ok {
		c.order = append(c.order, item.ItemID)
	}
	c.items[item.ItemID] = cloneItem(&item)
	return nil
}

// Get returns a copy of the item with the given ID.
func (c *CatalogStore) Get(itemID string) (*ItemFeatures, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[itemID]
	if !ok {
		return nil, false
	}
	return cloneItem(item), true
}

// Snapshot returns copies of all items in insertion order. A scoring pass
// operates on one snapshot, so it stays internally consistent even if the
// catalog is mutated concurrently.
func (c *CatalogStore) Snapshot() []ItemFeatures {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ItemFeatures, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *cloneItem(c.items[id]))
	}
	return out
}

// Count returns the number of stored items.
func (c *CatalogStore) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func cloneItem(item *ItemFeatures) *ItemFeatures {
	clone := *item
	clone.Tags = append([]string(nil), item.Tags...)
	return &clone
}
