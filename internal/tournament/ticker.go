package tournament

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// TickInterval is the wall-clock period between clock ticks.
const TickInterval = time.Second

// Tick is delivered once per interval while the ticker runs. Generation
// identifies the run that produced it.
type Tick struct {
	Generation uint64
}

// Ticker produces one Tick per second on a channel until stopped. Each Start
// begins a new generation; ticks from earlier generations may still sit in
// the channel after Stop and must be discarded with Current.
type Ticker struct {
	clock  quartz.Clock
	logger *log.Logger
	ticks  chan Tick

	mu         sync.Mutex
	cancel     context.CancelFunc
	generation uint64
}

// NewTicker creates a stopped ticker driven by clock.
func NewTicker(clock quartz.Clock, logger *log.Logger) *Ticker {
	return &Ticker{
		clock:  clock,
		logger: logger.WithPrefix("ticker"),
		ticks:  make(chan Tick, 1),
	}
}

// C returns the channel ticks are delivered on. It is never closed.
func (t *Ticker) C() <-chan Tick {
	return t.ticks
}

// Start begins ticking. The first tick arrives one interval later. Starting a
// running ticker does nothing.
func (t *Ticker) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		return
	}

	t.generation++
	gen := t.generation
	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.clock.TickerFunc(runCtx, TickInterval, func() error {
		if err := runCtx.Err(); err != nil {
			return err
		}
		select {
		case t.ticks <- Tick{Generation: gen}:
		case <-runCtx.Done():
			return runCtx.Err()
		}
		return nil
	}, "ticker")

	t.logger.Debug("Started", "generation", gen)
}

// Stop halts ticking immediately. Stopping a stopped ticker does nothing.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel == nil {
		return
	}
	t.cancel()
	t.cancel = nil
	t.logger.Debug("Stopped", "generation", t.generation)
}

// Running reports whether the ticker is started.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

// Current reports whether tick belongs to the active run.
func (t *Ticker) Current(tick Tick) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil && tick.Generation == t.generation
}
