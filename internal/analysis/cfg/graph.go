package cfg

// Graph issues flow point ids for one graph-building session and keeps every
// flow point it created, indexed by id.
type Graph struct {
	points []*FlowPoint
}

func NewGraph() *Graph {
	return &Graph{}
}

// NewFlowPoint creates a flow point labeled text. An empty text gets the
// DefaultText label.
func (g *Graph) NewFlowPoint(text string) *FlowPoint {
	if text == "" {
		return g.NewFlowPointWithContext(nil)
	}
	return g.NewFlowPointWithContext(NewContext(text))
}

// NewFlowPointWithContext creates a flow point owning ctx. A nil ctx is
// replaced by a placeholder context.
func (g *Graph) NewFlowPointWithContext(ctx *Context) *FlowPoint {
	if ctx == nil {
		ctx = NewContext(DefaultText)
	}
	fp := &FlowPoint{
		id:  len(g.points),
		ctx: ctx,
	}
	ctx.attach(fp)
	g.points = append(g.points, fp)
	return fp
}

// FlowPoint returns the flow point with the given id, or nil.
func (g *Graph) FlowPoint(id int) *FlowPoint {
	if id < 0 || id >= len(g.points) {
		return nil
	}
	return g.points[id]
}

// FlowPoints returns every flow point of the graph in id order, reachable or not.
func (g *Graph) FlowPoints() []*FlowPoint {
	out := make([]*FlowPoint, len(g.points))
	copy(out, g.points)
	return out
}

func (g *Graph) Len() int { return len(g.points) }
