// Package assetcache keeps recently decoded catalog images so reselecting a
// pattern or background does not decode it again.
//
// Cache is safe for concurrent use: decodes finish on their own goroutines
// and store results directly.
package assetcache

import (
	"image"
	"sync"
)

// DefaultCapacity is the number of decoded images kept when New is given a
// non-positive capacity.
const DefaultCapacity = 32

// Cache is an LRU of decoded images keyed by asset reference.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	lru      lruList
	capacity int

	hits   uint64
	misses uint64
}

type entry struct {
	img  image.Image
	node *lruNode
}

// Stats reports cache effectiveness.
type Stats struct {
	Len    int
	Hits   uint64
	Misses uint64
}

// New returns an empty cache holding at most capacity images.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		entries:  make(map[string]*entry),
		capacity: capacity,
	}
}

// Get returns the image stored for ref and marks it most recently used.
func (c *Cache) Get(ref string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[ref]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.lru.moveToFront(e.node)
	return e.img, true
}

// Put stores img under ref, evicting the least recently used entries when
// the cache is full.
func (c *Cache) Put(ref string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[ref]; ok {
		e.img = img
		c.lru.moveToFront(e.node)
		return
	}

	for c.lru.len >= c.capacity {
		oldest, ok := c.lru.removeOldest()
		if !ok {
			break
		}
		delete(c.entries, oldest)
	}

	c.entries[ref] = &entry{img: img, node: c.lru.pushFront(ref)}
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.len
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Len: c.lru.len, Hits: c.hits, Misses: c.misses}
}

// lruNode is a node in a doubly-linked LRU list.
type lruNode struct {
	key        string
	prev, next *lruNode
}

// lruList orders keys by recency. The head is the most recently used.
// Not safe for concurrent use; Cache holds its mutex around every call.
type lruList struct {
	head, tail *lruNode
	len        int
}

func (l *lruList) pushFront(key string) *lruNode {
	n := &lruNode{key: key}
	l.linkFront(n)
	return n
}

func (l *lruList) moveToFront(n *lruNode) {
	if n == l.head {
		return
	}
	l.unlink(n)
	l.linkFront(n)
}

func (l *lruList) removeOldest() (string, bool) {
	if l.tail == nil {
		return "", false
	}
	n := l.tail
	l.unlink(n)
	return n.key, true
}

func (l *lruList) linkFront(n *lruNode) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.len++
}

func (l *lruList) unlink(n *lruNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}
