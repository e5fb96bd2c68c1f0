// Package cache provides a small TTL cache for resolved chat member names so
// repeated /total commands do not re-query the chat transport for every user.
package cache

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// MemberCache caches display names keyed by (chat, user) with TTL expiry and
// size-based LRU eviction.
type MemberCache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time
}

type memberItem struct {
	key       string
	name      string
	expiresAt time.Time
}

func NewMemberCache(maxSize int, ttl time.Duration) *MemberCache {
	return &MemberCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

func memberKey(chatID, userID int64) string {
	return fmt.Sprintf("%d:%d", chatID, userID)
}

// Get returns the cached display name for a chat member, if present and fresh.
func (c *MemberCache) Get(chatID, userID int64) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[memberKey(chatID, userID)]
	if !exists {
		return "", false
	}

	item := elem.Value.(*memberItem)
	if c.now().After(item.expiresAt) {
		c.removeElement(elem)
		return "", false
	}

	c.lru.MoveToFront(elem)
	return item.name, true
}

// Set stores the display name for a chat member.
func (c *MemberCache) Set(chatID, userID int64, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := memberKey(chatID, userID)
	item := &memberItem{
		key:       key,
		name:      name,
		expiresAt: c.now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *MemberCache) removeElement(elem *list.Element) {
	item := elem.Value.(*memberItem)
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

// Size returns the current number of cached names.
func (c *MemberCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
