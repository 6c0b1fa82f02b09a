package core

import "time"

// ProgressCallback is called to report scan progress.
// Phases: "walking", "hashing", "done".
type ProgressCallback func(phase string, current, total int, message string)

// progressInterval limits how often a phase reports intermediate progress
const progressInterval = 100 * time.Millisecond

// rateMeter estimates events per second, smoothed over the last few samples
type rateMeter struct {
	window  []float64
	next    int
	filled  bool
	last    time.Time
	lastN   int
	current float64
}

func newRateMeter(samples int, now time.Time) *rateMeter {
	return &rateMeter{window: make([]float64, samples), last: now}
}

// observe records that n events have happened in total by now and returns
// the smoothed rate
func (r *rateMeter) observe(n int, now time.Time) float64 {
	elapsed := now.Sub(r.last).Seconds()
	if elapsed <= 0 {
		return r.current
	}

	r.window[r.next] = float64(n-r.lastN) / elapsed
	r.next = (r.next + 1) % len(r.window)
	if r.next == 0 {
		r.filled = true
	}
	r.last, r.lastN = now, n

	count := r.next
	if r.filled {
		count = len(r.window)
	}
	sum := 0.0
	for _, v := range r.window[:count] {
		sum += v
	}
	r.current = sum / float64(count)
	return r.current
}
