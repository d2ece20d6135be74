/*
Package observability turns learner lifecycle hooks into Prometheus metrics
and structured log lines.

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.Hooks().Chain(observability.LoggingHooks(logger))
	learner := ostia.NewLearner(ostia.WithLifecycleHooks(hooks))
*/
package observability
