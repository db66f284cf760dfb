package dot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	automaton "github.com/geange/dfamin"
)

func newDFA(t *testing.T) *automaton.DFA {
	t.Helper()
	d, err := automaton.NewDFA([]rune("abc"), [][]int{
		{1, 1, 0},
		{1, 1, 1},
	}, []int{1})
	require.NoError(t, err)
	return d
}

func TestEdges(t *testing.T) {
	d := newDFA(t)

	edges := Edges(d, 0)
	assert.Equal(t, []Edge{
		{Target: 0, Symbols: []rune{'c'}},
		{Target: 1, Symbols: []rune{'a', 'b'}},
	}, edges)
	assert.Equal(t, "a,b", edges[1].Label())

	edges = Edges(d, 1)
	assert.Len(t, edges, 1)
	assert.Equal(t, "a,b,c", edges[0].Label())
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(newDFA(t), &buf))

	out := buf.String()
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, "q0")
	assert.Contains(t, out, "q1")
	assert.Contains(t, out, "doublecircle")
	assert.Contains(t, out, "a,b")
	assert.NotContains(t, out, "_draw_")
	assert.NotContains(t, out, "pos=")
}

func TestRender_NoStates(t *testing.T) {
	d, err := automaton.NewDFA([]rune("a"), nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(d, &buf))
	assert.Contains(t, buf.String(), "digraph")
	assert.NotContains(t, buf.String(), "start")
}
