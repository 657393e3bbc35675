// Package graphfile builds control flow graphs from YAML descriptions.
//
// A description lists flow points in order. Each one has a unique name, the
// text of its command, and up to two successors; the first successor of a
// branch is its "then" edge:
//
//	name: cleanup
//	entry: [start]
//	nodes:
//	  - name: start
//	    text: mkdir out
//	    next: [check]
//	  - name: check
//	    text: test -f out/lock
//	    next: [wait, done]
//	    nolint: "//nolint:path-presence"
//
// A top level nolint annotation applies to every flow point.
package graphfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/fileflow/internal/analysis/cfg"
	"github.com/gnolang/fileflow/internal/nolint"
)

// MaxSuccessors is the largest fan-out a flow point may have.
const MaxSuccessors = 2

var (
	ErrNoEntry          = errors.New("graph has no entry")
	ErrDuplicateNode    = errors.New("duplicate node name")
	ErrUnknownNode      = errors.New("unknown node")
	ErrTooManySuccessor = errors.New("too many successors")
	ErrEmptyName        = errors.New("node without name")
)

// Description is the YAML form of a graph.
type Description struct {
	Name   string   `yaml:"name"`
	Entry  []string `yaml:"entry"`
	Nolint string   `yaml:"nolint,omitempty"`
	Nodes  []Node   `yaml:"nodes"`
}

// Node is the YAML form of one flow point.
type Node struct {
	Name   string   `yaml:"name"`
	Text   string   `yaml:"text,omitempty"`
	Next   []string `yaml:"next,omitempty"`
	Nolint string   `yaml:"nolint,omitempty"`
}

// Graph is a built description.
type Graph struct {
	Name    string
	Graph   *cfg.Graph
	Entries []*cfg.FlowPoint
	Nolint  *nolint.Manager

	byName map[string]*cfg.FlowPoint
	names  map[*cfg.FlowPoint]string
}

// Lookup returns the flow point declared with name.
func (g *Graph) Lookup(name string) (*cfg.FlowPoint, bool) {
	fp, ok := g.byName[name]
	return fp, ok
}

// NameOf returns the declared name of fp.
func (g *Graph) NameOf(fp *cfg.FlowPoint) string {
	return g.names[fp]
}

// Load reads and builds the description stored at path.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Parse decodes and builds a YAML description.
func Parse(data []byte) (*Graph, error) {
	var desc Description
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("error decoding graph: %w", err)
	}
	return Build(desc)
}

// Build creates the flow points of desc in declaration order, so ids follow
// the file, then links them in the order of each node's next list.
func Build(desc Description) (*Graph, error) {
	g := &Graph{
		Name:   desc.Name,
		Graph:  cfg.NewGraph(),
		Nolint: nolint.NewManager(),
		byName: make(map[string]*cfg.FlowPoint, len(desc.Nodes)),
		names:  make(map[*cfg.FlowPoint]string, len(desc.Nodes)),
	}

	if desc.Nolint != "" {
		if err := g.Nolint.AddGraph(desc.Nolint); err != nil {
			return nil, err
		}
	}

	for _, n := range desc.Nodes {
		if n.Name == "" {
			return nil, ErrEmptyName
		}
		if _, ok := g.byName[n.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, n.Name)
		}
		text := n.Text
		if text == "" {
			text = n.Name
		}
		fp := g.Graph.NewFlowPoint(text)
		g.byName[n.Name] = fp
		g.names[fp] = n.Name
		if n.Nolint != "" {
			if err := g.Nolint.AddFlowPoint(fp.ID(), n.Nolint); err != nil {
				return nil, fmt.Errorf("%s: %w", n.Name, err)
			}
		}
	}

	for _, n := range desc.Nodes {
		if len(n.Next) > MaxSuccessors {
			return nil, fmt.Errorf("%w: %s has %d", ErrTooManySuccessor, n.Name, len(n.Next))
		}
		src := g.byName[n.Name]
		for _, next := range n.Next {
			dst, ok := g.byName[next]
			if !ok {
				return nil, fmt.Errorf("%w: %s (successor of %s)", ErrUnknownNode, next, n.Name)
			}
			src.AddFlowPoint(dst)
		}
	}

	entries := desc.Entry
	if len(entries) == 0 && len(desc.Nodes) > 0 {
		entries = []string{desc.Nodes[0].Name}
	}
	if len(entries) == 0 {
		return nil, ErrNoEntry
	}
	for _, name := range entries {
		fp, ok := g.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: entry %s", ErrUnknownNode, name)
		}
		g.Entries = append(g.Entries, fp)
	}

	return g, nil
}
