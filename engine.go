package vitals

import (
	"context"
	"sync"
	"time"
)

const (
	cycleSinkTimeout = 10 * time.Second
	finalSinkTimeout = 30 * time.Second
)

// engine drives the periodic reduction cycle: an initial warm-up delay,
// then one reduction plus sink fan-out every Freq.
type engine struct {
	r      *Recorder
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func newEngine(r *Recorder) *engine {
	return &engine{r: r, stopCh: make(chan struct{})}
}

func (e *engine) start() {
	e.wg.Add(1)
	go e.loop()
}

func (e *engine) stop() {
	close(e.stopCh)
	e.wg.Wait()
}

func (e *engine) loop() {
	defer e.wg.Done()

	// Warm-up grace period so producers can start before the first cycle.
	delay := time.NewTimer(e.r.cfg.Delay)
	defer delay.Stop()
	select {
	case <-e.stopCh:
		e.runOnce(finalSinkTimeout)
		return
	case <-delay.C:
	}

	ticker := time.NewTicker(e.r.cfg.Freq)
	defer ticker.Stop()
	for {
		select {
		case <-e.stopCh:
			e.runOnce(finalSinkTimeout)
			return
		case <-ticker.C:
			e.runOnce(cycleSinkTimeout)
		}
	}
}

// runOnce performs one cycle with sink delivery. Errors are already logged
// and counted inside deliver; a failed sink never skews the timer.
func (e *engine) runOnce(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	snap := e.r.Cycle()
	_ = e.r.deliver(ctx, snap)
}
