package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSample   EventType = "sample"
	EventFold     EventType = "fold"
	EventPromote  EventType = "promote"
	EventComplete EventType = "complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// SampleEvent is emitted after a sample has been inserted into the prefix tree.
type SampleEvent struct {
	EventBase
	Index     int `json:"index"`
	InputLen  int `json:"input_len"`
	OutputLen int `json:"output_len"`
	States    int `json:"states"`
}

// FoldEvent is emitted for every attempt to fold a blue state into a red state.
type FoldEvent struct {
	EventBase
	Red     int  `json:"red"`
	Blue    int  `json:"blue"`
	Success bool `json:"success"`
	Reached int  `json:"reached,omitempty"` // new blue candidates exposed by a successful fold
}

// PromoteEvent is emitted when a blue state is accepted as a new red state.
type PromoteEvent struct {
	EventBase
	State    int `json:"state"`
	RedCount int `json:"red_count"`
}

// CompleteEvent is emitted once the blue queue has drained.
type CompleteEvent struct {
	EventBase
	RedStates    int           `json:"red_states"`
	FoldAttempts int           `json:"fold_attempts"`
	Merges       int           `json:"merges"`
	Duration     time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for learner observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnSample   func(context.Context, *SampleEvent)
	OnFold     func(context.Context, *FoldEvent)
	OnPromote  func(context.Context, *PromoteEvent)
	OnComplete func(context.Context, *CompleteEvent)
}

// Chain returns hooks that invoke h first and then next.
func (h LifecycleHooks) Chain(next LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnSample:   chain(h.OnSample, next.OnSample),
		OnFold:     chain(h.OnFold, next.OnFold),
		OnPromote:  chain(h.OnPromote, next.OnPromote),
		OnComplete: chain(h.OnComplete, next.OnComplete),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
