package aspen

import "time"

// frameStats derives the measured frame rate from tick deltas. The rate is
// recomputed every half second so readers see a steady number instead of
// per-frame jitter.
type frameStats struct {
	elapsed time.Duration
	frames  int
	rate    float64
}

func (s *frameStats) record(delta time.Duration) {
	s.elapsed += delta
	s.frames++
	if s.elapsed < 500*time.Millisecond {
		return
	}
	s.rate = float64(s.frames) / s.elapsed.Seconds()
	s.elapsed = 0
	s.frames = 0
}

// FrameRate returns the measured frames per second, averaged over the last
// completed half-second window. Zero until the first window completes.
func (g *Game) FrameRate() float64 {
	return g.stats.rate
}
