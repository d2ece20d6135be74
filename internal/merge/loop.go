// Package merge implements the red/blue state-merging phase that turns an
// onward prefix-tree transducer into the smallest consistent one.
package merge

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/ostia/internal/automaton"
	"github.com/aretw0/ostia/internal/logging"
	"github.com/aretw0/ostia/pkg/domain"
)

// Options configures a merge run.
type Options struct {
	Hooks  domain.LifecycleHooks
	Logger *slog.Logger
}

// Result summarises a completed merge run.
type Result struct {
	Red          []automaton.StateID
	FoldAttempts int
	Merges       int
	Promotions   int
	Duration     time.Duration
}

// Run drains the blue frontier of a. Each blue state is folded into the
// earliest red state that accepts it, or promoted to red when none does.
// The context is only consulted between two blue states; an error is
// returned solely when it is cancelled.
func Run(ctx context.Context, a *automaton.Arena, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	start := time.Now()

	res := &Result{Red: []automaton.StateID{a.Root()}}
	isRed := map[automaton.StateID]bool{a.Root(): true}
	queue := automaton.Children(a, a.Root())

	for head := 0; head < len(queue); head++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := queue[head]
		blue := b.Resolve(a)
		automaton.Invariant(!isRed[blue], "Run", "frontier state %d is already red", blue)

		merged := false
		for _, red := range res.Red {
			res.FoldAttempts++
			reached, ok := Fold(a, red, b)
			enqueued := 0
			if ok {
				for _, rb := range reached {
					if isRed[rb.Parent] {
						queue = append(queue, rb)
						enqueued++
					}
				}
			}
			logger.Debug("fold", "red", red, "blue", blue, "ok", ok, "reached", enqueued)
			if opts.Hooks.OnFold != nil {
				opts.Hooks.OnFold(ctx, &domain.FoldEvent{
					EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFold},
					Red:       int(red),
					Blue:      int(blue),
					Success:   ok,
					Reached:   enqueued,
				})
			}
			if ok {
				res.Merges++
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		queue = append(queue, automaton.Children(a, blue)...)
		res.Red = append(res.Red, blue)
		isRed[blue] = true
		res.Promotions++
		logger.Debug("promote", "state", blue, "red", len(res.Red))
		if opts.Hooks.OnPromote != nil {
			opts.Hooks.OnPromote(ctx, &domain.PromoteEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPromote},
				State:     int(blue),
				RedCount:  len(res.Red),
			})
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}
