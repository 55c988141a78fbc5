package knowledge

import (
	"bytes"
	"connect4/game"

	"golang.org/x/exp/slices"
)

// Stats is the accumulated outcome of a position: Wins is credited from
// the perspective of the player who moved into it.
type Stats struct {
	Wins   float64
	Visits int
}

// Base is the lookup and merge surface a search writes through.
type Base interface {
	Lookup(key game.Key) (Stats, bool)
	Merge(key game.Key, wins float64, visits int)
	Len() int
	Snapshot() *Store
}

// Store is a knowledge base owned by a single goroutine.
type Store struct {
	entries map[game.Key]Stats
}

func NewStore() *Store {
	return &Store{entries: make(map[game.Key]Stats)}
}

func (s *Store) Lookup(key game.Key) (Stats, bool) {
	stats, ok := s.entries[key]
	return stats, ok
}

// Merge adds a delta to the entry for key, creating it when absent.
func (s *Store) Merge(key game.Key, wins float64, visits int) {
	stats := s.entries[key]
	stats.Wins += wins
	stats.Visits += visits
	s.entries[key] = stats
}

func (s *Store) Len() int {
	return len(s.entries)
}

// Snapshot returns an independent copy of the store.
func (s *Store) Snapshot() *Store {
	copied := NewStore()
	for k, v := range s.entries {
		copied.entries[k] = v
	}
	return copied
}

// Entry is a key with its statistics.
type Entry struct {
	Key game.Key
	Stats
}

// Entries lists the store by descending visits. Equal visit counts are
// ordered by key so the listing is deterministic.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.entries))
	for k, v := range s.entries {
		entries = append(entries, Entry{Key: k, Stats: v})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		if a.Visits != b.Visits {
			return b.Visits - a.Visits
		}
		return bytes.Compare(a.Key[:], b.Key[:])
	})
	return entries
}

// Prune keeps the maxStates most visited entries with at least minVisits
// visits. A non-positive maxStates keeps every qualifying entry.
func (s *Store) Prune(minVisits, maxStates int) *Store {
	pruned := NewStore()
	for _, e := range s.Entries() {
		if e.Visits < minVisits {
			break
		}
		if maxStates > 0 && pruned.Len() >= maxStates {
			break
		}
		pruned.entries[e.Key] = e.Stats
	}
	return pruned
}
