// meta/meta.go
package meta

import "time"

// EPISODES defines the number of games in one training cycle.
const EPISODES = 50

// TIME_BUDGET defines the per-move search budget handed to Mount.
const TIME_BUDGET = time.Second

// WORKERS defines the number of games played concurrently while training.
const WORKERS = 1

// KNOWLEDGE_PATH defines where the knowledge store lives by default.
const KNOWLEDGE_PATH = "knowledge.kb"

// MIN_VISITS and MAX_STATES bound the knowledge kept after a cycle.
const (
	MIN_VISITS = 3
	MAX_STATES = 40000
)
