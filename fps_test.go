package aspen

import (
	"testing"
	"time"
)

func TestFrameStats(t *testing.T) {
	var stats frameStats
	// 30 frames at ~16.7ms cross the half-second window.
	for i := 0; i < 30; i++ {
		stats.record(time.Second / 60)
	}
	if !approxEqual(stats.rate, 60, 0.5) {
		t.Errorf("rate = %f, want about 60", stats.rate)
	}
	if stats.frames != 0 || stats.elapsed != 0 {
		t.Error("window did not reset after recomputing the rate")
	}
}

func TestFrameRateZeroBeforeFirstWindow(t *testing.T) {
	state := &hostState{}
	game, _, _ := newTestGame(state)
	if game.FrameRate() != 0 {
		t.Errorf("FrameRate() = %f before any ticks, want 0", game.FrameRate())
	}
	game.tick(tick)
	if game.FrameRate() != 0 {
		t.Errorf("FrameRate() = %f after one tick, want 0", game.FrameRate())
	}
}
