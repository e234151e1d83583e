package pipeline

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/ironsheep/sentiment-image-mcp/internal/field"
)

// FieldCache is a bounded, thread-safe cache of synthesized fields keyed by
// source text.
//
// Entries are looked up by the xxhash of the text and confirmed against the
// stored text, so hash collisions never return the wrong field. When the
// cache is full the least recently used entry is dropped.
//
// A FieldCache with capacity 0 stores nothing.
type FieldCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	entries  map[uint64]*list.Element
}

type cacheEntry struct {
	key  uint64
	text string
	f    *field.Field
}

// NewFieldCache creates a cache holding at most capacity fields.
func NewFieldCache(capacity int) *FieldCache {
	return &FieldCache{
		capacity: max(capacity, 0),
		order:    list.New(),
		entries:  make(map[uint64]*list.Element),
	}
}

// Key returns the cache key of text.
func Key(text string) uint64 {
	return xxhash.Sum64String(text)
}

// Get returns the cached field for text.
func (c *FieldCache) Get(text string) (*field.Field, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[Key(text)]
	if !ok {
		return nil, false
	}
	e := el.Value.(*cacheEntry)
	if e.text != text {
		return nil, false
	}
	c.order.MoveToFront(el)
	return e.f, true
}

// Put stores f for text, replacing any entry with the same key.
func (c *FieldCache) Put(text string, f *field.Field) {
	if c.capacity == 0 {
		return
	}
	key := Key(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value = &cacheEntry{key: key, text: text, f: f}
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, text: text, f: f})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Evict removes the entry for text. Missing entries are ignored.
func (c *FieldCache) Evict(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key(text)
	if el, ok := c.entries[key]; ok && el.Value.(*cacheEntry).text == text {
		c.order.Remove(el)
		delete(c.entries, key)
	}
}

// Clear removes every entry.
func (c *FieldCache) Clear() {
	c.mu.Lock()
	c.order.Init()
	c.entries = make(map[uint64]*list.Element)
	c.mu.Unlock()
}

// Len returns the number of cached fields.
func (c *FieldCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
