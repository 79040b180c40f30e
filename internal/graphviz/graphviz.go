// Package graphviz renders autodiff computation graphs in Graphviz DOT format.
//
// Every value becomes a record node showing its label, data and gradient.
// Every derived value gets an extra operation node ("+", "*", "tanh", ...)
// between it and its operands:
//
//	x1 ──┐
//	     * ──> x1*w1 ──┐
//	w1 ──┘             + ──> n
//	...
package graphviz

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// node is a DOT node with a stable name and attributes.
type node struct {
	id    int64
	name  string
	attrs encoding.Attributes
}

func (n *node) ID() int64                        { return n.id }
func (n *node) DOTID() string                    { return n.name }
func (n *node) Attributes() []encoding.Attribute { return n.attrs }

// Graph is a DOT-encodable view of a computation graph.
type Graph struct {
	*simple.DirectedGraph
	graphAttrs encoding.Attributes
	nodeAttrs  encoding.Attributes
}

// DOTAttributers implements dot.Attributers.
func (g *Graph) DOTAttributers() (graph, node, edge encoding.Attributer) {
	return &g.graphAttrs, &g.nodeAttrs, nil
}

// Build converts the graph reachable from root.
//
// Node names follow tape order: the i-th value is "v<i>" and its operation
// node is "v<i>_<kind>", so the output is stable for a given expression.
func Build(root *autodiff.Value) *Graph {
	g := &Graph{
		DirectedGraph: simple.NewDirectedGraph(),
		graphAttrs:    encoding.Attributes{{Key: "rankdir", Value: "LR"}},
		nodeAttrs:     encoding.Attributes{{Key: "fontname", Value: "Helvetica"}},
	}

	values := autodiff.NewTape(root).Values()
	nodes := make(map[*autodiff.Value]*node, len(values))

	for i, v := range values {
		vn := &node{
			id:   int64(2 * i),
			name: fmt.Sprintf("v%d", i),
			attrs: encoding.Attributes{
				{Key: "shape", Value: "record"},
				{Key: "label", Value: recordLabel(v)},
			},
		}
		g.AddNode(vn)
		nodes[v] = vn

		if v.IsLeaf() {
			continue
		}
		on := &node{
			id:    int64(2*i + 1),
			name:  fmt.Sprintf("v%d_%s", i, v.Kind()),
			attrs: encoding.Attributes{{Key: "label", Value: v.Kind().Symbol()}},
		}
		g.AddNode(on)
		g.SetEdge(g.NewEdge(on, vn))
		for _, operand := range v.Operands() {
			// Operands precede their consumers on the tape.
			g.SetEdge(g.NewEdge(nodes[operand], on))
		}
	}

	return g
}

// recordEscaper escapes the characters that are structural in record labels.
var recordEscaper = strings.NewReplacer(
	`|`, `\|`,
	`{`, `\{`,
	`}`, `\}`,
	`<`, `\<`,
	`>`, `\>`,
)

// recordLabel formats the record shown for a value.
func recordLabel(v *autodiff.Value) string {
	return fmt.Sprintf("{ %s | data %.4f | grad %.4f }", recordEscaper.Replace(v.Label()), v.Data(), v.Grad())
}

// Marshal returns the DOT encoding of the graph reachable from root.
func Marshal(root *autodiff.Value, name string) ([]byte, error) {
	b, err := dot.Marshal(Build(root), name, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "graphviz: marshal")
	}
	return b, nil
}

// Write writes the DOT encoding of the graph reachable from root to w.
func Write(w io.Writer, root *autodiff.Value, name string) error {
	b, err := Marshal(root, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return errors.Wrap(err, "graphviz: write")
	}
	return nil
}
