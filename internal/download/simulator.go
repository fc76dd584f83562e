package download

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const labelProcessing = "Processing..."

// SimulatorConfig controls the pacing of a ProgressSimulator.
type SimulatorConfig struct {
	// Interval between ticks.
	Interval time.Duration

	// Start is the value the display shows when the simulator starts.
	Start float64

	// Step is the maximum increment per tick; each tick adds rand()*Step.
	Step float64

	// Cap is the value the simulation never exceeds.
	Cap float64
}

// ProgressSimulator advances a progress display on a fixed interval while a
// request is outstanding. The values carry no meaning beyond perceived progress.
//
// A simulator is started with StartProgressSimulator and must be stopped
// with Stop. Stop cancels the ticker and waits for the tick goroutine, so no
// tick can reach the sink once Stop has returned.
type ProgressSimulator struct {
	cancel context.CancelFunc
	group  *errgroup.Group
	done   chan struct{}
	once   sync.Once
}

// StartProgressSimulator begins ticking into sink until ctx ends or Stop is called.
func StartProgressSimulator(ctx context.Context, cfg SimulatorConfig, sink ProgressSink, rnd func() float64) *ProgressSimulator {
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)

	s := &ProgressSimulator{
		cancel: cancel,
		group:  g,
		done:   make(chan struct{}),
	}

	g.Go(func() error {
		defer close(s.done)

		// Without a positive interval the display stays at Start.
		if cfg.Interval <= 0 {
			<-ctx.Done()
			return nil
		}

		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		value := cfg.Start
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if value >= cfg.Cap {
					continue
				}
				value = min(value+rnd()*cfg.Step, cfg.Cap)
				sink.SetProgress(value, labelProcessing)
			}
		}
	})

	return s
}

// Stop cancels the simulator and waits for its goroutine to exit. It is safe
// to call more than once.
func (s *ProgressSimulator) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.group.Wait()
	})
}

// Running reports whether the tick goroutine is still alive.
func (s *ProgressSimulator) Running() bool {
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}
