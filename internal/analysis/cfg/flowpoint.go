package cfg

// FlowPoint is a node of the control flow graph.
type FlowPoint struct {
	id  int
	ctx *Context

	incoming EdgeList
	outgoing EdgeList

	// current and original values, keyed by domain slot
	domains map[slot]any

	// scratch markers, not part of the graph shape
	visited  bool
	analyzed bool
}

// ID returns the id issued by the graph that created fp.
func (fp *FlowPoint) ID() int { return fp.id }

func (fp *FlowPoint) Context() *Context { return fp.ctx }

// Text returns the label of the flow point context.
func (fp *FlowPoint) Text() string { return fp.ctx.Text() }

func (fp *FlowPoint) String() string { return fp.ctx.Text() }

// Incoming returns the list of edges ending at fp.
func (fp *FlowPoint) Incoming() *EdgeList { return &fp.incoming }

// Outgoing returns the list of edges starting at fp.
func (fp *FlowPoint) Outgoing() *EdgeList { return &fp.outgoing }

// AddFlowPoint links fp to target and returns target, so straight-line code
// can be built by chaining calls. Branches call it twice on the same flow
// point, "then" first.
//
// At most two outgoing edges per flow point is a contract for the caller and
// is not checked here. Neither is membership of target in the same graph.
func (fp *FlowPoint) AddFlowPoint(target *FlowPoint) *FlowPoint {
	e := &Edge{source: fp, target: target}
	fp.outgoing.add(e)
	target.incoming.add(e)
	return target
}

// Successors returns the targets of the outgoing edges in order.
func (fp *FlowPoint) Successors() []*FlowPoint {
	out := make([]*FlowPoint, 0, fp.outgoing.Len())
	for _, e := range fp.outgoing.edges {
		out = append(out, e.target)
	}
	return out
}

// Predecessors returns the sources of the incoming edges in order.
func (fp *FlowPoint) Predecessors() []*FlowPoint {
	out := make([]*FlowPoint, 0, fp.incoming.Len())
	for _, e := range fp.incoming.edges {
		out = append(out, e.source)
	}
	return out
}

// Analyzed reports whether fp completed analysis in the current run.
func (fp *FlowPoint) Analyzed() bool { return fp.analyzed }

func (fp *FlowPoint) SetAnalyzed(analyzed bool) { fp.analyzed = analyzed }

// Visited is a marker left for traversals written outside this package.
// The traversals in this package keep their own visited sets.
func (fp *FlowPoint) Visited() bool { return fp.visited }

func (fp *FlowPoint) SetVisited(visited bool) { fp.visited = visited }
