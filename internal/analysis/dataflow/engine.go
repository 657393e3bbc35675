package dataflow

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/gnolang/fileflow/internal/analysis/cfg"
)

// ErrNoFixedPoint is returned when a run exceeds its iteration cap.
var ErrNoFixedPoint = errors.New("no fixed point within iteration limit")

// contextCheckInterval is how often the work-list loop checks ctx.
const contextCheckInterval = 128

// Result summarizes one run.
type Result struct {
	// Iterations counts flow point visits (work-list pops).
	Iterations int
	// Propagations counts successors queued because a value changed.
	Propagations int
	// FlowPoints is the number of flow points reachable from the entries.
	FlowPoints int
}

// Engine computes the fixed point of one domain over a graph.
type Engine[T any] struct {
	key    *cfg.Key[T]
	domain Domain[T]
	opts   options
}

// NewEngine creates an engine storing domain values under key.
func NewEngine[T any](key *cfg.Key[T], domain Domain[T], opts ...Option) *Engine[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[T]{key: key, domain: domain, opts: o}
}

// Key returns the key the engine stores its values under.
func (e *Engine[T]) Key() *cfg.Key[T] { return e.key }

// Value returns the current value at fp after a run.
func (e *Engine[T]) Value(fp *cfg.FlowPoint) (T, bool) {
	return cfg.Domain(fp, e.key)
}

// Original returns the entry value at fp after a run.
func (e *Engine[T]) Original(fp *cfg.FlowPoint) (T, bool) {
	return cfg.OriginalDomain(fp, e.key)
}

// Run iterates the domain from entries until no value changes.
//
// Previous values of this domain and the analyzed markers are cleared on
// every flow point reachable from entries before the run starts, so a graph
// can be analyzed again without calling Reset. Values of other domains are
// left untouched.
func (e *Engine[T]) Run(ctx context.Context, entries ...*cfg.FlowPoint) (Result, error) {
	var res Result
	if len(entries) == 0 {
		return res, nil
	}

	ctx, span := e.opts.tracer.Start(ctx, "dataflow.Engine.Run",
		trace.WithAttributes(
			attribute.String("domain", e.key.Name()),
			attribute.Int("entries", len(entries)),
		),
	)
	defer span.End()

	logger := e.opts.logger.With(zap.String("domain", e.key.Name()))

	isEntry := make(map[*cfg.FlowPoint]bool, len(entries))
	reachable := make(map[*cfg.FlowPoint]struct{})
	for _, entry := range entries {
		isEntry[entry] = true
		for _, fp := range entry.AllFlowPoints() {
			if _, ok := reachable[fp]; ok {
				continue
			}
			reachable[fp] = struct{}{}
			cfg.ClearDomain(fp, e.key)
			fp.SetAnalyzed(false)
		}
	}
	res.FlowPoints = len(reachable)

	worklist := make([]*cfg.FlowPoint, 0, len(entries))
	inWorklist := make(map[*cfg.FlowPoint]bool, len(reachable))
	for _, entry := range entries {
		if inWorklist[entry] {
			continue
		}
		worklist = append(worklist, entry)
		inWorklist[entry] = true
	}

	for len(worklist) > 0 {
		if res.Iterations%contextCheckInterval == 0 && ctx.Err() != nil {
			span.AddEvent("context_cancelled", trace.WithAttributes(
				attribute.Int("iterations", res.Iterations),
			))
			return res, ctx.Err()
		}
		if res.Iterations >= e.opts.maxIterations {
			err := fmt.Errorf("domain %s: %w (%d iterations over %d flow points)",
				e.key.Name(), ErrNoFixedPoint, res.Iterations, res.FlowPoints)
			span.RecordError(err)
			span.SetStatus(codes.Error, "no fixed point")
			logger.Error("Analysis did not converge",
				zap.Int("iterations", res.Iterations),
				zap.Int("flow_points", res.FlowPoints))
			return res, err
		}
		res.Iterations++

		fp := worklist[0]
		worklist = worklist[1:]
		inWorklist[fp] = false

		in := e.computeIn(fp, isEntry[fp])
		prev, hadPrev := cfg.Domain(fp, e.key)

		cfg.SetOriginalDomain(fp, e.key, in)
		out := e.domain.Transfer(fp, in)
		cfg.SetDomain(fp, e.key, out)

		if fp.Analyzed() && hadPrev && e.domain.Equal(prev, out) {
			continue
		}
		fp.SetAnalyzed(true)

		for _, succ := range fp.Successors() {
			if inWorklist[succ] {
				continue
			}
			worklist = append(worklist, succ)
			inWorklist[succ] = true
			res.Propagations++
		}
	}

	span.AddEvent("fixed_point_reached", trace.WithAttributes(
		attribute.Int("iterations", res.Iterations),
		attribute.Int("propagations", res.Propagations),
		attribute.Int("flow_points", res.FlowPoints),
	))
	logger.Debug("Fixed point reached",
		zap.Int("iterations", res.Iterations),
		zap.Int("propagations", res.Propagations),
		zap.Int("flow_points", res.FlowPoints))

	return res, nil
}

// computeIn merges the current values of the predecessors of fp that already
// have one. Entry flow points start from the initial value.
func (e *Engine[T]) computeIn(fp *cfg.FlowPoint, entry bool) T {
	var (
		joined T
		has    bool
	)
	if entry {
		joined, has = e.domain.Initial(), true
	}
	for _, pred := range fp.Predecessors() {
		v, ok := cfg.Domain(pred, e.key)
		if !ok {
			continue
		}
		if !has {
			joined, has = v, true
			continue
		}
		joined = e.domain.Merge(joined, v)
	}
	if !has {
		return e.domain.Initial()
	}
	return joined
}
