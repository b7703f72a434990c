package catalog

import "sync"

// CacheUpdate is the hook a mutating operation calls so an in-process cache
// tracks the mutation without a directory re-scan. The hook locates the
// cached entity by identifier (numeric and string identifiers normalize to
// the same key) and applies mutate to it; a mutate that returns false, or a
// nil mutate, removes the entry instead. A nil CacheUpdate is always valid:
// stateless callers get identical on-disk results and no cache side effect.
type CacheUpdate func(id any, mutate func(d *Descriptor) bool)

// Cache holds the last-loaded collection of entities per type. It is a
// non-authoritative, value-copy view of on-disk state kept current by
// CacheUpdate hooks and invalidated wholesale when the content tree changes
// underneath the process (see Watcher).
type Cache struct {
	mu      sync.Mutex
	entries map[Type][]*Descriptor
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[Type][]*Descriptor)}
}

// Put replaces the cached collection for a type.
func (c *Cache) Put(t Type, list []*Descriptor) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[t] = list
}

// Get returns the cached collection for a type. The second return is false
// when the type has not been loaded or was invalidated.
func (c *Cache) Get(t Type) ([]*Descriptor, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.entries[t]
	return list, ok
}

// Invalidate drops the cached collection for a type, forcing the next read
// to reload from disk.
func (c *Cache) Invalidate(t Type) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, t)
}

// Updater returns the CacheUpdate hook for one entity type. Mutations routed
// through the hook keep the cached collection and the on-disk state from
// diverging within a single process lifetime.
func (c *Cache) Updater(t Type) CacheUpdate {
	if c == nil {
		return nil
	}
	return func(id any, mutate func(d *Descriptor) bool) {
		key := Key(id)
		if key == "" {
			return
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		list, ok := c.entries[t]
		if !ok {
			return
		}
		for i, d := range list {
			if d.ID() != key {
				continue
			}
			if mutate == nil || !mutate(d) {
				c.entries[t] = append(list[:i], list[i+1:]...)
			}
			return
		}
	}
}

// upsert inserts a descriptor into the cached collection for a type, or
// replaces the entry with the same identifier. Types that were never loaded
// are left alone; the next Load will pick the entity up.
func (c *Cache) upsert(t Type, d *Descriptor) {
	if c == nil || d == nil {
		return
	}
	key := d.ID()
	c.mu.Lock()
	defer c.mu.Unlock()
	list, ok := c.entries[t]
	if !ok {
		return
	}
	for i, cur := range list {
		if cur.ID() == key {
			list[i] = d
			return
		}
	}
	c.entries[t] = append(list, d)
}
