package idmap

import (
	"hash/fnv"
	"sync"
)

// DefaultShardCount is the compiled-in shard count used when the caller does
// not override it. A small power of two, matching the original's
// MAP_SIZE_THREAD constant.
const DefaultShardCount = 8

// shard is one independently-locked slice of the logical key space.
type shard struct {
	mu sync.Mutex
	m  map[string]string
}

// Map is the sharded node_key → owner_key map. The zero value is not usable;
// construct with New.
type Map struct {
	shards []*shard
}

// New returns a Map with shardCount independently-locked shards. shardCount
// must be at least 1; New panics otherwise, since a zero-shard map could
// never route a key.
func New(shardCount int) *Map {
	if shardCount < 1 {
		panic("idmap: shardCount must be >= 1")
	}
	shards := make([]*shard, shardCount)
	for i := range shards {
		shards[i] = &shard{m: make(map[string]string)}
	}
	return &Map{shards: shards}
}

// shardFor routes key to one of the map's shards using FNV-1a, a fast
// non-cryptographic hash with good distribution across random keys. The
// reference implementation's "last character mod S" hash collapses every key
// sharing a final character onto one shard; FNV-1a avoids that adversarial
// skew while remaining stable within a run, which is all correctness
// requires.
func (m *Map) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return m.shards[h.Sum32()%uint32(len(m.shards))]
}

// TryClaim inserts key → owner only if key is currently absent from its
// shard, and reports whether the insert happened. Safe for unlimited
// concurrent callers, including concurrent calls racing on the same key —
// exactly one will observe true.
func (m *Map) TryClaim(key, owner string) bool {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[key]; exists {
		return false
	}
	s.m[key] = owner
	return true
}

// Get returns the current owner of key and whether one has been assigned.
// Safe to call concurrently with TryClaim.
func (m *Map) Get(key string) (string, bool) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.m[key]
	return owner, ok
}

// Len returns the total number of claimed keys across all shards. Intended
// for diagnostics and tests, not for the hot broadcast path.
func (m *Map) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.Lock()
		n += len(s.m)
		s.mu.Unlock()
	}
	return n
}

// ShardCount reports how many shards back this map.
func (m *Map) ShardCount() int {
	return len(m.shards)
}
