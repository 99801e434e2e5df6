// Package visualize renders the call trees of scripts as diagrams.
package visualize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emicklei/dot"

	"github.com/l7mp/frameops/pkg/expression"
	"github.com/l7mp/frameops/pkg/session"
	"github.com/l7mp/frameops/pkg/util"
)

// LiteralMaxLen bounds the length of literal labels.
const LiteralMaxLen = 24

// NodeKind is the kind of a call tree node.
type NodeKind string

const (
	KindCall     NodeKind = "call"
	KindLiteral  NodeKind = "literal"
	KindFrameRef NodeKind = "frame"
)

// Generator renders a graph.
type Generator interface {
	Generate(g *Graph) string
}

// Graph represents the visualization graph of a script.
type Graph struct {
	Name        string
	Assignments []AssignmentNode
	// Inputs are the frames referenced but not assigned by the script.
	Inputs []string
	// Entries are the assignments that consume no other assignment.
	Entries     []string
	Connections []Connection
}

// AssignmentNode is a single assignment and its call tree.
type AssignmentNode struct {
	Name string
	Tree TreeNode
}

// TreeNode is a node of a call tree.
type TreeNode struct {
	ID       string
	Kind     NodeKind
	Label    string
	Children []TreeNode
}

// Connection represents an assignment consuming the result of another one.
type Connection struct {
	From, To string
}

// BuildGraph constructs a visualization graph from a script.
func BuildGraph(name string, script session.Script) *Graph {
	names := make([]string, 0, len(script))
	for n := range script {
		names = append(names, n)
	}
	sort.Strings(names)

	g := &Graph{
		Name:        name,
		Assignments: make([]AssignmentNode, 0, len(names)),
		Inputs:      []string{},
		Entries:     session.Entries(script),
		Connections: []Connection{},
	}

	inputs := map[string]bool{}
	for _, n := range names {
		exp := script[n]
		g.Assignments = append(g.Assignments, AssignmentNode{Name: n, Tree: buildTree(n, &exp)})

		for _, ref := range exp.FrameRefs() {
			if _, ok := script[ref]; ok {
				g.Connections = append(g.Connections, Connection{From: ref, To: n})
			} else if !inputs[ref] {
				inputs[ref] = true
				g.Inputs = append(g.Inputs, ref)
			}
		}
	}
	sort.Strings(g.Inputs)

	return g
}

func buildTree(id string, e *expression.Expression) TreeNode {
	switch {
	case e.Op == expression.OpFrame:
		name, _ := e.Literal.(string)
		return TreeNode{ID: id, Kind: KindFrameRef, Label: name}
	case e.IsLiteral():
		return TreeNode{ID: id, Kind: KindLiteral, Label: util.Truncate(e.String(), LiteralMaxLen)}
	}

	ops := e.Operands()
	node := TreeNode{ID: id, Kind: KindCall, Label: strings.TrimPrefix(e.Op, "@"),
		Children: make([]TreeNode, len(ops))}
	for i := range ops {
		node.Children[i] = buildTree(fmt.Sprintf("%s/%d", id, i), &ops[i])
	}
	return node
}

func assignmentID(name string) string { return "=" + name }
func inputID(name string) string      { return "<" + name }

// BuildDotGraph creates a dot.Graph from the visualization graph.
// This unified graph can then be rendered in different formats (DOT, Mermaid, etc.).
func BuildDotGraph(g *Graph) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "LR")
	graph.Attr("newrank", "true")
	graph.Attr("label", g.Name)
	graph.Attr("labelloc", "t")
	graph.Attr("fontsize", "16")

	entry := map[string]bool{}
	for _, e := range g.Entries {
		entry[e] = true
	}

	assigned := map[string]bool{}
	for _, a := range g.Assignments {
		assigned[a.Name] = true
		n := graph.Node(assignmentID(a.Name)).
			Attr("label", a.Name).
			Attr("shape", "box").
			Attr("style", "filled").
			Attr("fillcolor", "lightblue").
			Attr("color", "darkblue").
			Attr("penwidth", "2").
			Attr("fontname", "helvetica")
		if entry[a.Name] {
			n.Attr("peripheries", "2")
		}
	}

	for _, in := range g.Inputs {
		graph.Node(inputID(in)).
			Attr("label", in).
			Attr("shape", "ellipse").
			Attr("style", "filled").
			Attr("fillcolor", "lightgreen")
	}

	// frame references are drawn as edges from the producing node
	producer := func(name string) dot.Node {
		if assigned[name] {
			return graph.Node(assignmentID(name))
		}
		return graph.Node(inputID(name))
	}

	var draw func(n TreeNode) dot.Node
	draw = func(n TreeNode) dot.Node {
		switch n.Kind {
		case KindFrameRef:
			return producer(n.Label)
		case KindLiteral:
			return graph.Node(n.ID).
				Attr("label", n.Label).
				Attr("shape", "plaintext").
				Attr("fontname", "courier")
		}

		node := graph.Node(n.ID).
			Attr("label", n.Label).
			Attr("shape", "box").
			Attr("style", "filled,rounded").
			Attr("fillcolor", "lightyellow").
			Attr("fontname", "helvetica")
		for i, c := range n.Children {
			e := graph.Edge(draw(c), node)
			if c.Kind == KindFrameRef && assigned[c.Label] {
				e.Attr("style", "dashed").Attr("color", "blue")
			}
			if len(n.Children) > 1 {
				e.Attr("label", fmt.Sprintf("%d", i)).Attr("fontsize", "10")
			}
		}
		return node
	}

	for _, a := range g.Assignments {
		graph.Edge(draw(a.Tree), graph.Node(assignmentID(a.Name)))
	}

	return graph
}
