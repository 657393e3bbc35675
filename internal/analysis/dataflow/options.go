package dataflow

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultMaxIterations bounds the number of flow point visits of one run.
const DefaultMaxIterations = 100_000

type options struct {
	maxIterations int
	logger        *zap.Logger
	tracer        trace.Tracer
}

// Option configures an Engine.
type Option func(*options)

// WithMaxIterations sets the iteration cap. Values below 1 keep the default.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

func defaultOptions() options {
	return options{
		maxIterations: DefaultMaxIterations,
		logger:        zap.NewNop(),
		tracer:        otel.Tracer("fileflow.dataflow"),
	}
}
