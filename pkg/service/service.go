// Package service is the use-case layer shared by the HTTP and MCP adapters:
// it learns transducers into a ModelStore and serves transductions from it.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/internal/logging"
	"github.com/aretw0/ostia/internal/presentation/graph"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/observability"
	"github.com/aretw0/ostia/pkg/ports"
	"github.com/aretw0/ostia/pkg/sample"
)

// Service learns, stores and applies transducers. Learned transducers are
// immutable, so loaded ones are cached by ID.
type Service struct {
	store   ports.ModelStore
	learner *ostia.Learner
	metrics *observability.Metrics
	logger  *slog.Logger

	mu    sync.RWMutex
	cache map[string]*ostia.Transducer
}

// Option configures a Service.
type Option func(*Service)

// WithLearner replaces the default learner.
func WithLearner(l *ostia.Learner) Option {
	return func(s *Service) {
		s.learner = l
	}
}

// WithMetrics records apply outcomes.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service over store.
func New(store ports.ModelStore, opts ...Option) *Service {
	s := &Service{store: store, cache: make(map[string]*ostia.Transducer)}
	for _, opt := range opts {
		opt(s)
	}
	if s.learner == nil {
		s.learner = ostia.NewLearner()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s
}

// Summary describes a stored model.
type Summary struct {
	ID           string       `json:"id" jsonschema_description:"Model identifier"`
	Name         string       `json:"name,omitempty" jsonschema_description:"Model name"`
	States       int          `json:"states" jsonschema_description:"Number of states"`
	AlphabetSize int          `json:"alphabet_size" jsonschema_description:"Number of input symbols"`
	Stats        *ostia.Stats `json:"stats,omitempty" jsonschema_description:"Learning statistics, present right after learning"`
}

// Learn infers a transducer from set and stores it.
func (s *Service) Learn(ctx context.Context, set *sample.Set) (Summary, error) {
	t, stats, err := s.learner.LearnSet(ctx, set)
	if err != nil {
		return Summary{}, err
	}
	model := t.Model()
	if err := s.store.Save(ctx, model); err != nil {
		return Summary{}, fmt.Errorf("failed to save model: %w", err)
	}

	s.mu.Lock()
	s.cache[t.ID()] = t
	s.mu.Unlock()

	s.logger.Info("model learned", "id", t.ID(), "name", t.Name(), "states", stats.RedStates)
	return Summary{ID: t.ID(), Name: t.Name(), States: t.States(), AlphabetSize: t.AlphabetSize(), Stats: &stats}, nil
}

// Transducer loads a stored transducer.
func (s *Service) Transducer(ctx context.Context, id string) (*ostia.Transducer, error) {
	s.mu.RLock()
	t, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return t, nil
	}

	model, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err = ostia.FromModel(model)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[id] = t
	s.mu.Unlock()
	return t, nil
}

// Describe returns the summary of a stored model.
func (s *Service) Describe(ctx context.Context, id string) (Summary, error) {
	t, err := s.Transducer(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	return Summary{ID: t.ID(), Name: t.Name(), States: t.States(), AlphabetSize: t.AlphabetSize()}, nil
}

// List returns the IDs of stored models.
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// Delete removes a model.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.cache, id)
	s.mu.Unlock()
	return s.store.Delete(ctx, id)
}

// Translate applies a string transducer to input. An undefined transduction
// is reported with ok=false rather than an error.
func (s *Service) Translate(ctx context.Context, id, input string) (output string, ok bool, err error) {
	clean, err := SanitizeInput(input)
	if err != nil {
		s.observe(observability.ApplyError)
		return "", false, err
	}
	t, err := s.Transducer(ctx, id)
	if err != nil {
		s.observe(observability.ApplyError)
		return "", false, err
	}

	output, err = t.Translate(clean)
	switch {
	case err == nil:
		s.observe(observability.ApplyDefined)
		return output, true, nil
	case isUndefined(err):
		s.observe(observability.ApplyUndefined)
		return "", false, nil
	}
	s.observe(observability.ApplyError)
	return "", false, err
}

// Apply runs a symbol sequence through a stored transducer.
func (s *Service) Apply(ctx context.Context, id string, input domain.Sequence) (domain.Sequence, bool, error) {
	t, err := s.Transducer(ctx, id)
	if err != nil {
		s.observe(observability.ApplyError)
		return nil, false, err
	}
	for i, sym := range input {
		if int(sym) < 0 || int(sym) >= t.AlphabetSize() {
			s.observe(observability.ApplyError)
			return nil, false, &domain.AlphabetRangeError{Symbol: sym, Position: i, Size: t.AlphabetSize()}
		}
	}
	out, ok := t.Apply(input)
	if ok {
		s.observe(observability.ApplyDefined)
	} else {
		s.observe(observability.ApplyUndefined)
	}
	return out, ok, nil
}

// Graph renders a stored model as Mermaid. When trace is non-empty the
// states visited while reading it are highlighted.
func (s *Service) Graph(ctx context.Context, id, trace string) (string, error) {
	t, err := s.Transducer(ctx, id)
	if err != nil {
		return "", err
	}
	model := t.Model()
	if trace == "" {
		return graph.GenerateMermaid(model, nil), nil
	}

	in, _ := t.Alphabets()
	if in == nil {
		return "", ostia.ErrNoAlphabet
	}
	seq, err := in.Encode(trace)
	if err != nil {
		return "", err
	}
	overlay, _ := graph.Trace(model, seq)
	return graph.GenerateMermaid(model, overlay), nil
}

func (s *Service) observe(result string) {
	if s.metrics != nil {
		s.metrics.ObserveApply(result)
	}
}
