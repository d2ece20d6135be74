package ostia

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/ostia/internal/logging"
	"github.com/aretw0/ostia/internal/merge"
	"github.com/aretw0/ostia/internal/ptt"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/sample"
)

// Learner is the high-level entry point for inferring transducers.
// A Learner holds configuration only and may be reused.
type Learner struct {
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	name   string
}

// Option defines a functional option for configuring the Learner.
type Option func(*Learner)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(l *Learner) {
		l.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the learner.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Learner) {
		l.logger = logger
	}
}

// WithName labels learned transducers and log lines.
func WithName(name string) Option {
	return func(l *Learner) {
		l.name = name
	}
}

// NewLearner creates a Learner.
func NewLearner(opts ...Option) *Learner {
	l := &Learner{}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = logging.NewNop()
	}
	if l.name != "" {
		l.logger = l.logger.With("model", l.name)
	}
	return l
}

// Stats describes one learning run.
type Stats struct {
	Samples      int           `json:"samples"`
	PTTStates    int           `json:"ptt_states"`
	RedStates    int           `json:"red_states"`
	FoldAttempts int           `json:"fold_attempts"`
	Merges       int           `json:"merges"`
	Promotions   int           `json:"promotions"`
	Duration     time.Duration `json:"duration"`
}

// Learn infers the smallest onward subsequential transducer consistent with
// samples over input symbols [0, alphabetSize).
//
// It fails with *domain.AlphabetRangeError or *domain.SampleConflictError
// when the sample is malformed, and with ctx.Err() if ctx is cancelled while
// states are being merged.
func (l *Learner) Learn(ctx context.Context, alphabetSize int, samples []domain.Sample) (*Transducer, Stats, error) {
	bld, err := ptt.New(alphabetSize)
	if err != nil {
		return nil, Stats{}, err
	}
	for i, s := range samples {
		if err := bld.Insert(s); err != nil {
			return nil, Stats{}, fmt.Errorf("sample %d: %w", i, err)
		}
		if l.hooks.OnSample != nil {
			l.hooks.OnSample(ctx, &domain.SampleEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSample},
				Index:     i,
				InputLen:  len(s.Input),
				OutputLen: len(s.Output),
				States:    bld.Arena().Len(),
			})
		}
	}

	arena := bld.Arena()
	stats := Stats{Samples: bld.Samples(), PTTStates: arena.Len()}

	res, err := merge.Run(ctx, arena, merge.Options{Hooks: l.hooks, Logger: l.logger})
	if err != nil {
		return nil, Stats{}, err
	}
	stats.RedStates = len(res.Red)
	stats.FoldAttempts = res.FoldAttempts
	stats.Merges = res.Merges
	stats.Promotions = res.Promotions
	stats.Duration = res.Duration

	if l.hooks.OnComplete != nil {
		l.hooks.OnComplete(ctx, &domain.CompleteEvent{
			EventBase:    domain.EventBase{Timestamp: time.Now(), Type: domain.EventComplete},
			RedStates:    stats.RedStates,
			FoldAttempts: stats.FoldAttempts,
			Merges:       stats.Merges,
			Duration:     stats.Duration,
		})
	}
	l.logger.Info("learned transducer",
		"samples", stats.Samples,
		"ptt_states", stats.PTTStates,
		"red_states", stats.RedStates,
		"folds", stats.FoldAttempts,
		"merges", stats.Merges,
	)

	return &Transducer{
		arena:     arena,
		id:        uuid.NewString(),
		name:      l.name,
		createdAt: time.Now().UTC(),
	}, stats, nil
}

// LearnSet encodes a sample set and learns from it. String sets attach their
// alphabets to the result so that Translate works.
func (l *Learner) LearnSet(ctx context.Context, set *sample.Set) (*Transducer, Stats, error) {
	enc, err := set.Encode()
	if err != nil {
		return nil, Stats{}, err
	}
	t, stats, err := l.Learn(ctx, enc.AlphabetSize, enc.Samples)
	if err != nil {
		return nil, Stats{}, err
	}
	t.input, t.output = enc.Input, enc.Output
	if t.name == "" {
		t.name = set.Name
	}
	return t, stats, nil
}

// Learn is a shorthand for NewLearner().Learn without statistics.
func Learn(ctx context.Context, alphabetSize int, samples []domain.Sample) (*Transducer, error) {
	t, _, err := NewLearner().Learn(ctx, alphabetSize, samples)
	return t, err
}
