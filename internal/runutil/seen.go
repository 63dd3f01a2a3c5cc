package runutil

import "github.com/golang/groupcache/lru"

// DefaultSeenCap bounds a Seen set built without a capacity.
const DefaultSeenCap = 200_000

// Seen remembers recently met candidate keys so duplicates can be skipped.
// Meeting a key again refreshes it; the key met longest ago is forgotten
// once capacity is exceeded. Seen is not safe for concurrent use.
type Seen[K comparable] struct {
	c *lru.Cache
}

func NewSeen[K comparable](capacity int) *Seen[K] {
	if capacity <= 0 {
		capacity = DefaultSeenCap
	}
	return &Seen[K]{c: lru.New(capacity)}
}

// Met records k and reports whether it was already remembered.
func (s *Seen[K]) Met(k K) bool {
	if _, ok := s.c.Get(k); ok {
		return true
	}
	s.c.Add(k, struct{}{})
	return false
}

func (s *Seen[K]) Len() int { return s.c.Len() }
