package watcher

import (
	"context"
	"time"

	"github.com/mkarlsen/moodgraph/pkg/logging"
)

// Debouncer batches rapid file events: a flush fires after quietPeriod
// without new events, or at maxWait after the first event of a batch,
// whichever comes first.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer wraps an event channel with debouncing.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 10),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Start begins processing in the background.
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

// Output returns the channel of debounced, deduplicated events.
func (d *Debouncer) Output() <-chan ChangeEvent {
	return d.output
}

func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		quietC   <-chan time.Time
		maxC     <-chan time.Time
		quietT   *time.Timer
		maxT     *time.Timer
		pending  = make(map[string]struct{})
		ordering []string
	)

	flush := func() {
		if quietT != nil {
			quietT.Stop()
			quietT, quietC = nil, nil
		}
		if maxT != nil {
			maxT.Stop()
			maxT, maxC = nil, nil
		}
		if len(ordering) == 0 {
			return
		}
		logging.Debug("flushing layout changes", "count", len(ordering))
		d.output <- ChangeEvent{
			Paths:     ordering,
			Timestamp: time.Now(),
		}
		pending = make(map[string]struct{})
		ordering = nil
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case ev, ok := <-d.input:
			if !ok {
				flush()
				return
			}
			for _, p := range ev.Paths {
				if _, seen := pending[p]; seen {
					continue
				}
				pending[p] = struct{}{}
				ordering = append(ordering, p)
			}

			if quietT == nil {
				quietT = time.NewTimer(d.quietPeriod)
				quietC = quietT.C
			} else {
				if !quietT.Stop() {
					<-quietT.C
				}
				quietT.Reset(d.quietPeriod)
			}
			if maxT == nil {
				maxT = time.NewTimer(d.maxWait)
				maxC = maxT.C
			}

		case <-quietC:
			quietT = nil
			quietC = nil
			flush()

		case <-maxC:
			maxT = nil
			maxC = nil
			flush()
		}
	}
}
