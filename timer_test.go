package aspen

import (
	"testing"
	"time"
)

func TestFrameTimerPostsTicks(t *testing.T) {
	queue := &recordQueue{}
	timer := startFrameTimer(200, queue)
	time.Sleep(50 * time.Millisecond)
	timer.Stop()

	ticks := queue.take()
	if len(ticks) < 2 {
		t.Fatalf("timer posted %d events in 50ms at 200fps, want at least 2", len(ticks))
	}
	for _, event := range ticks {
		tick, ok := event.(TimerEvent)
		if !ok {
			t.Fatalf("timer posted %T, want TimerEvent", event)
		}
		if tick.Delta < 0 {
			t.Errorf("tick delta = %v, want non-negative", tick.Delta)
		}
	}
}

func TestFrameTimerStopIsIdempotentAcrossGame(t *testing.T) {
	queue := &recordQueue{}
	game := NewGame(NewResourceDescriptor(RenderTargetDescriptor{}), 60, &hostState{})
	game.Bind(queue, newFakeRenderer())
	game.HandleEvent(ResumedEvent{})
	if game.timer == nil {
		t.Fatal("resume did not start the frame timer")
	}
	game.Stop()
	if game.timer != nil {
		t.Error("timer still set after Stop")
	}
	game.Stop()
}

func TestFrameTimerStopsPromptly(t *testing.T) {
	queue := &recordQueue{}
	timer := startFrameTimer(1, queue)
	done := make(chan struct{})
	go func() {
		timer.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return within a second")
	}
}
