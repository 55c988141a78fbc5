package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration      time.Duration
	Episodes      int
	Cutoff        int
	FullPlayouts  int
	KnowledgeHits int
	TreeSize      int
	MaxDepth      int
}

type MoveMetric struct {
	Step      int
	Player    int // +1 or -1
	Column    int
	Heuristic string // Empty when the move came from search
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         int // 0 on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(cutoff int)
	AddEpisode()
	AddFullPlayout()
	AddKnowledgeHit()
	ObserveTree(size, depth int)
	Complete() SearchMetric
}

type collector struct {
	cutoff        int
	startTime     time.Time
	episodes      atomic.Int32
	fullPlayouts  atomic.Int32
	knowledgeHits atomic.Int32
	treeSize      atomic.Int32
	maxDepth      atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(cutoff int) {
	m.startTime = time.Now()
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.knowledgeHits.Store(0)
	m.treeSize.Store(0)
	m.maxDepth.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddKnowledgeHit() {
	m.knowledgeHits.Add(1)
}

func (m *collector) ObserveTree(size, depth int) {
	m.treeSize.Store(int32(size))
	if int32(depth) > m.maxDepth.Load() {
		m.maxDepth.Store(int32(depth))
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:      time.Since(m.startTime),
		Episodes:      int(m.episodes.Load()),
		Cutoff:        m.cutoff,
		FullPlayouts:  int(m.fullPlayouts.Load()),
		KnowledgeHits: int(m.knowledgeHits.Load()),
		TreeSize:      int(m.treeSize.Load()),
		MaxDepth:      int(m.maxDepth.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(cutoff int)            {}
func (m *dummyCollector) AddEpisode()                 {}
func (m *dummyCollector) AddFullPlayout()             {}
func (m *dummyCollector) AddKnowledgeHit()            {}
func (m *dummyCollector) ObserveTree(size, depth int) {}
func (m *dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
