package aspen

import "time"

// frameTimer is the only background activity in the engine: a goroutine that
// posts a TimerEvent roughly every 1/targetFPS seconds. It communicates with
// the simulation exclusively through the thread-safe queue and touches no
// shared state.
type frameTimer struct {
	stop chan struct{}
	done chan struct{}
}

// startFrameTimer launches the tick goroutine. Each tick carries the time
// elapsed since the previous one was posted.
func startFrameTimer(targetFPS int, queue EventQueue) *frameTimer {
	t := &frameTimer{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	frame := time.Duration(float64(time.Second) / float64(targetFPS))
	go func() {
		defer close(t.done)
		last := time.Now()
		for {
			queue.Post(TimerEvent{Delta: time.Since(last)})
			last = time.Now()
			select {
			case <-t.stop:
				return
			case <-time.After(frame):
			}
		}
	}()
	return t
}

// Stop terminates the tick goroutine and waits for it to exit.
func (t *frameTimer) Stop() {
	close(t.stop)
	<-t.done
}
