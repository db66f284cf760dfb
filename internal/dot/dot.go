package dot

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/pkg/errors"

	automaton "github.com/geange/dfamin"
)

// Graphviz canonical DOT: the graph as built, without layout attributes.
const canonFormat graphviz.Format = "canon"

// Edge all symbols leading from one state to the same target.
type Edge struct {
	Target  int
	Symbols []rune
}

// Label joins the symbols of the edge with commas.
func (e Edge) Label() string {
	b := &strings.Builder{}
	for i, r := range e.Symbols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Edges groups the transitions of state by target. Edges are ordered by target, symbols keep the
// alphabet order.
func Edges(d *automaton.DFA, state int) []Edge {
	byTarget := make(map[int]*Edge)
	for i := 0; i < d.GetNumSymbols(); i++ {
		target := d.Transition(state, i)
		e, ok := byTarget[target]
		if !ok {
			e = &Edge{Target: target}
			byTarget[target] = e
		}
		e.Symbols = append(e.Symbols, d.Symbol(i))
	}

	edges := make([]Edge, 0, len(byTarget))
	for _, e := range byTarget {
		edges = append(edges, *e)
	}
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// Render writes d to w as a Graphviz digraph. Final states are drawn as double circles and an
// unlabelled arrow points at the initial state.
func Render(d *automaton.DFA, w io.Writer) error {
	g := graphviz.New()
	defer g.Close()

	graph, err := g.Graph(graphviz.Directed)
	if err != nil {
		return errors.Wrap(err, "can not create graph")
	}
	defer graph.Close()
	graph.SetRankDir(cgraph.LRRank)

	nodes := make([]*cgraph.Node, d.GetNumStates())
	for s := range nodes {
		node, err := graph.CreateNode(nodeName(s))
		if err != nil {
			return errors.Wrapf(err, "can not create node for state %d", s)
		}
		node.SetLabel(strconv.Itoa(s))
		if d.IsAccept(s) {
			node.SetShape(cgraph.DoubleCircleShape)
		} else {
			node.SetShape(cgraph.CircleShape)
		}
		nodes[s] = node
	}

	if len(nodes) > 0 {
		start, err := graph.CreateNode("start")
		if err != nil {
			return errors.Wrap(err, "can not create start node")
		}
		start.SetShape(cgraph.PointShape)
		if _, err := graph.CreateEdge("start", start, nodes[0]); err != nil {
			return errors.Wrap(err, "can not create start edge")
		}
	}

	for s, from := range nodes {
		for _, e := range Edges(d, s) {
			edge, err := graph.CreateEdge(nodeName(s)+"-"+nodeName(e.Target), from, nodes[e.Target])
			if err != nil {
				return errors.Wrapf(err, "can not create edge %d -> %d", s, e.Target)
			}
			edge.SetLabel(e.Label())
		}
	}

	if err := g.Render(graph, canonFormat, w); err != nil {
		return errors.Wrap(err, "can not render graph")
	}
	return nil
}

func nodeName(state int) string {
	return "q" + strconv.Itoa(state)
}
