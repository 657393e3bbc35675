package cfg

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// walk visits every flow point reachable from fp through outgoing edges in
// depth-first pre-order, each exactly once. The visited set is local to the
// call, so walks are re-entrant and never leave markers behind.
func (fp *FlowPoint) walk(visit func(*FlowPoint)) {
	seen := make(map[*FlowPoint]struct{})
	stack := []*FlowPoint{fp}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := seen[cur]; ok {
			continue
		}
		seen[cur] = struct{}{}
		visit(cur)

		// push in reverse so the first outgoing edge is explored first
		for i := len(cur.outgoing.edges) - 1; i >= 0; i-- {
			next := cur.outgoing.edges[i].target
			if _, ok := seen[next]; !ok {
				stack = append(stack, next)
			}
		}
	}
}

// AllFlowPoints returns fp and every flow point reachable from it, in
// depth-first pre-order.
func (fp *FlowPoint) AllFlowPoints() []*FlowPoint {
	var all []*FlowPoint
	fp.walk(func(cur *FlowPoint) {
		all = append(all, cur)
	})
	return all
}

// Reset clears the analyzed and visited markers of fp and of every flow
// point reachable from it. Every reachable node is cleared regardless of its
// current markers; flow points not reachable from fp are left alone.
func (fp *FlowPoint) Reset() {
	fp.walk(func(cur *FlowPoint) {
		cur.analyzed = false
		cur.visited = false
	})
}

// Print writes the text representation of fp and its reachable flow points
// to standard output.
func (fp *FlowPoint) Print() {
	_ = fp.Fprint(os.Stdout)
}

// Fprint writes one line per reachable flow point, in pre-order:
//
//	mkdir a => { rm a, touch b }
func (fp *FlowPoint) Fprint(w io.Writer) error {
	var err error
	fp.walk(func(cur *FlowPoint) {
		if err != nil {
			return
		}
		children := make([]string, 0, cur.outgoing.Len())
		for _, e := range cur.outgoing.edges {
			children = append(children, e.target.String())
		}
		if len(children) == 0 {
			_, err = fmt.Fprintf(w, "%s => { }\n", cur)
			return
		}
		_, err = fmt.Fprintf(w, "%s => { %s }\n", cur, strings.Join(children, ", "))
	})
	return err
}

// PrintDot writes the reachable graph in GraphViz DOT format. Nodes are
// labeled "<id>: <text>" so that equal texts stay distinct.
func (fp *FlowPoint) PrintDot(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph mgraph {\n")
	b.WriteString("\tmode=\"heir\";\n")
	b.WriteString("\tsplines=\"ortho\";\n\n")
	fp.walk(func(cur *FlowPoint) {
		if cur.outgoing.Len() == 0 && cur.incoming.Len() == 0 {
			fmt.Fprintf(&b, "\t%s\n", dotLabel(cur))
			return
		}
		for _, e := range cur.outgoing.edges {
			fmt.Fprintf(&b, "\t%s -> %s\n", dotLabel(cur), dotLabel(e.target))
		}
	})
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func dotLabel(fp *FlowPoint) string {
	text := strings.ReplaceAll(fp.String(), `"`, `\"`)
	return fmt.Sprintf("\"%d: %s\"", fp.id, text)
}
