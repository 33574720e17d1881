package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration     time.Duration
	Episodes     int
	FullPlayouts int
	Cutoff       int
	TreeSize     int
	StopReason   string
	RootPlayouts int
	BestQ        float64
	Bootstrap    bool // decided by the opening rule, no search
	Fallback     bool // search failed, a random legal action was played
}

type MoveMetric struct {
	Step   int
	Player int // Seat
	Action string
	SearchMetric
}

type GameMetric struct {
	ID         string
	Players    int
	Winner     int // Seat, -1 when the game was stopped early
	Scores     []int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(cutoff int)
	AddFullPlayout()
	AddEpisode()
	Complete(treeSize int, reason string) SearchMetric
}

type collector struct {
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(cutoff int) {
	m.startTime = time.Now()
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete(treeSize int, reason string) SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		TreeSize:     treeSize,
		StopReason:   reason,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(cutoff int) {}
func (m *dummyCollector) AddFullPlayout()  {}
func (m *dummyCollector) AddEpisode()      {}
func (m *dummyCollector) Complete(treeSize int, reason string) SearchMetric {
	return SearchMetric{TreeSize: treeSize, StopReason: reason}
}
