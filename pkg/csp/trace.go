package csp

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// SearchStats is a snapshot of solver statistics: nodes explored, backtracks,
// solutions found, propagation count and peak queue size, plus wall-clock
// search time.
type SearchStats struct {
	NodesExplored    int64
	Backtracks       int64
	SolutionsFound   int64
	PropagationCount int64
	PeakQueueSize    int64
	SearchTime       time.Duration
}

// String renders the statistics as an aligned multi-line report.
func (s *SearchStats) String() string {
	return fmt.Sprintf(
		"Search Statistics:\n"+
			"  Nodes Explored: %d\n"+
			"  Backtracks:     %d\n"+
			"  Solutions:      %d\n"+
			"  Propagations:   %d\n"+
			"  Peak Queue:     %d\n"+
			"  Search Time:    %v\n",
		s.NodesExplored, s.Backtracks, s.SolutionsFound,
		s.PropagationCount, s.PeakQueueSize, s.SearchTime,
	)
}

// SearchTrace provides lock-free statistics collection and structured
// logging for a single solve call. All counters use atomic operations so a
// *SearchTrace stays safe if a caller reads Stats concurrently with a
// running solve.
type SearchTrace struct {
	stats     SearchStats
	startTime time.Time
	logger    zerolog.Logger
}

// NewSearchTrace creates a trace that logs through logger. A zero-value
// zerolog.Logger is accepted and behaves as a no-op sink.
func NewSearchTrace(logger zerolog.Logger) *SearchTrace {
	return &SearchTrace{startTime: time.Now(), logger: logger}
}

// Stats returns a consistent snapshot of the current statistics. Safe to
// call on a nil trace.
func (t *SearchTrace) Stats() *SearchStats {
	if t == nil {
		return &SearchStats{}
	}
	return &SearchStats{
		NodesExplored:    atomic.LoadInt64(&t.stats.NodesExplored),
		Backtracks:       atomic.LoadInt64(&t.stats.Backtracks),
		SolutionsFound:   atomic.LoadInt64(&t.stats.SolutionsFound),
		PropagationCount: atomic.LoadInt64(&t.stats.PropagationCount),
		PeakQueueSize:    atomic.LoadInt64(&t.stats.PeakQueueSize),
		SearchTime:       t.stats.SearchTime,
	}
}

// RecordNode records visiting one search-tree node.
func (t *SearchTrace) RecordNode() {
	if t == nil {
		return
	}
	atomic.AddInt64(&t.stats.NodesExplored, 1)
}

// RecordBacktrack records one backtracking step and logs it at debug level.
func (t *SearchTrace) RecordBacktrack(variable string) {
	if t == nil {
		return
	}
	atomic.AddInt64(&t.stats.Backtracks, 1)
	t.logger.Debug().Str("variable", variable).Msg("backtrack")
}

// RecordSolution records a solution being found.
func (t *SearchTrace) RecordSolution() {
	if t == nil {
		return
	}
	n := atomic.AddInt64(&t.stats.SolutionsFound, 1)
	t.logger.Info().Int64("count", n).Msg("solution found")
}

// RecordPropagation records one revision step (one arc revised by AC-3, or
// one constraint revised by GAC) and raises PeakQueueSize to queueSize if
// it is larger.
func (t *SearchTrace) RecordPropagation(queueSize int) {
	if t == nil {
		return
	}
	atomic.AddInt64(&t.stats.PropagationCount, 1)
	size64 := int64(queueSize)
	for {
		old := atomic.LoadInt64(&t.stats.PeakQueueSize)
		if size64 <= old {
			break
		}
		if atomic.CompareAndSwapInt64(&t.stats.PeakQueueSize, old, size64) {
			break
		}
	}
}

// Finish stamps the elapsed wall-clock search time. Call once, after the
// solve call returns.
func (t *SearchTrace) Finish() {
	if t == nil {
		return
	}
	t.stats.SearchTime = time.Since(t.startTime)
	t.logger.Debug().Str("stats", t.Stats().String()).Msg("search finished")
}
