package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/ostia/pkg/domain"
)

// LoggingHooks logs every lifecycle event. Samples and folds are logged at
// debug level since there is one per sample and per fold attempt.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSample: func(ctx context.Context, e *domain.SampleEvent) {
			logger.DebugContext(ctx, "sample_inserted",
				"index", e.Index,
				"input_len", e.InputLen,
				"states", e.States,
			)
		},
		OnFold: func(ctx context.Context, e *domain.FoldEvent) {
			logger.DebugContext(ctx, "fold",
				"red", e.Red,
				"blue", e.Blue,
				"success", e.Success,
			)
		},
		OnPromote: func(ctx context.Context, e *domain.PromoteEvent) {
			logger.DebugContext(ctx, "promote", "state", e.State, "red_count", e.RedCount)
		},
		OnComplete: func(ctx context.Context, e *domain.CompleteEvent) {
			logger.InfoContext(ctx, "learn_complete",
				"red_states", e.RedStates,
				"fold_attempts", e.FoldAttempts,
				"merges", e.Merges,
				"duration", e.Duration,
			)
		},
	}
}
