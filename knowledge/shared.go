package knowledge

import (
	"connect4/game"
	"sync"
)

const shardCount = 32

type shard struct {
	sync.Mutex
	entries map[game.Key]Stats
}

// Shared is a knowledge base that many searches can read and merge into at
// once. Keys are spread over independently locked shards by their hash.
type Shared struct {
	shards [shardCount]shard
}

func NewShared() *Shared {
	s := &Shared{}
	for i := range s.shards {
		s.shards[i].entries = make(map[game.Key]Stats)
	}
	return s
}

// NewSharedFrom copies an existing store into a new shared one.
func NewSharedFrom(store *Store) *Shared {
	s := NewShared()
	for k, v := range store.entries {
		sh := s.shard(k)
		sh.entries[k] = v
	}
	return s
}

func (s *Shared) shard(key game.Key) *shard {
	return &s.shards[key.Hash()%shardCount]
}

func (s *Shared) Lookup(key game.Key) (Stats, bool) {
	sh := s.shard(key)
	sh.Lock()
	defer sh.Unlock()

	stats, ok := sh.entries[key]
	return stats, ok
}

func (s *Shared) Merge(key game.Key, wins float64, visits int) {
	sh := s.shard(key)
	sh.Lock()
	defer sh.Unlock()

	stats := sh.entries[key]
	stats.Wins += wins
	stats.Visits += visits
	sh.entries[key] = stats
}

func (s *Shared) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.Lock()
		n += len(sh.entries)
		sh.Unlock()
	}
	return n
}

// Snapshot copies the current contents into a single-owner store.
func (s *Shared) Snapshot() *Store {
	store := NewStore()
	for i := range s.shards {
		sh := &s.shards[i]
		sh.Lock()
		for k, v := range sh.entries {
			store.entries[k] = v
		}
		sh.Unlock()
	}
	return store
}
