// Package statsutil provides the phase-timing and fill-rate diagnostics
// shared across the three parties. None of this influences the
// protocol's output; it is purely operational logging support.
package statsutil

import (
	"log"
	"math"
	"time"

	"github.com/montanaflynn/stats"
)

// ExpectedFilledBuckets returns the expected number of distinct
// non-empty buckets after n independent insertions into m buckets:
// m*(1-((m-1)/m)^n). This is the same birthday-paradox quantity the
// Linear-Counting estimator inverts; here it is used only as a
// sanity-check diagnostic against the actual touched-bucket count.
func ExpectedFilledBuckets(m, n float64) float64 {
	if m <= 0 {
		return 0
	}
	return m * (1 - math.Pow((m-1)/m, n))
}

// FillRateSummary returns the mean and standard deviation of a set of
// observed touched-bucket counts (one per provider shard), used to log
// how far an actual run strays from ExpectedFilledBuckets across
// shards, in the same spirit as a Chernoff-bound sanity check.
func FillRateSummary(counts []float64) (mean, stddev float64, err error) {
	mean, err = stats.Mean(counts)
	if err != nil {
		return 0, 0, err
	}
	stddev, err = stats.StandardDeviation(counts)
	if err != nil {
		return 0, 0, err
	}
	return mean, stddev, nil
}

// Stopwatch measures elapsed wall-clock time for one phase.
type Stopwatch struct {
	start time.Time
}

// NewStopwatch starts a stopwatch.
func NewStopwatch() Stopwatch {
	return Stopwatch{start: time.Now()}
}

// Reset restarts the stopwatch.
func (s *Stopwatch) Reset() { s.start = time.Now() }

// Elapsed returns the time since the stopwatch started or was last reset.
func (s *Stopwatch) Elapsed() time.Duration { return time.Since(s.start) }

// Timer logs the elapsed time since start using logger, tagged with name.
func Timer(start time.Time, logger *log.Logger, name string) {
	logger.Printf("%s took %s\n", name, time.Since(start))
}
