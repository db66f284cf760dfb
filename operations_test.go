package automaton

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	alphabet := []rune("ab")

	empty, err := defaultAutomata.MakeEmpty(alphabet)
	assert.Nil(t, err)
	assert.True(t, IsEmpty(empty))

	noStates, err := NewDFA(alphabet, nil, nil)
	assert.Nil(t, err)
	assert.True(t, IsEmpty(noStates))

	emptyString, err := defaultAutomata.MakeEmptyString(alphabet)
	assert.Nil(t, err)
	assert.False(t, IsEmpty(emptyString))

	word, err := defaultAutomata.MakeString(alphabet, "abab")
	assert.Nil(t, err)
	assert.False(t, IsEmpty(word))

	// The only final state is unreachable.
	unreachableFinal, err := NewDFA(alphabet, [][]int{
		{0, 0},
		{1, 1},
	}, []int{1})
	assert.Nil(t, err)
	assert.True(t, IsEmpty(unreachableFinal))
	assert.True(t, IsEmpty(Minimize(unreachableFinal)))
}

func TestIsomorphic(t *testing.T) {
	a, err := NewDFA([]rune("ab"), [][]int{
		{1, 2},
		{0, 2},
		{2, 2},
	}, []int{1})
	assert.Nil(t, err)

	t.Run("same automaton", func(t *testing.T) {
		assert.True(t, Isomorphic(a, a))
	})

	t.Run("renumbered", func(t *testing.T) {
		// 1 and 2 swapped.
		b, err := NewDFA([]rune("ab"), [][]int{
			{2, 1},
			{1, 1},
			{0, 1},
		}, []int{2})
		assert.Nil(t, err)
		assert.True(t, Isomorphic(a, b))
		assert.True(t, Isomorphic(b, a))
	})

	t.Run("different accept", func(t *testing.T) {
		b, err := NewDFA([]rune("ab"), [][]int{
			{1, 2},
			{0, 2},
			{2, 2},
		}, []int{2})
		assert.Nil(t, err)
		assert.False(t, Isomorphic(a, b))
	})

	t.Run("different transitions", func(t *testing.T) {
		b, err := NewDFA([]rune("ab"), [][]int{
			{1, 2},
			{1, 2},
			{2, 2},
		}, []int{1})
		assert.Nil(t, err)
		assert.False(t, Isomorphic(a, b))
	})

	t.Run("different alphabet order", func(t *testing.T) {
		b, err := NewDFA([]rune("ba"), [][]int{
			{2, 1},
			{2, 0},
			{2, 2},
		}, []int{1})
		assert.Nil(t, err)
		assert.False(t, Isomorphic(a, b))
	})

	t.Run("different size", func(t *testing.T) {
		b, err := NewDFA([]rune("ab"), [][]int{{0, 0}}, nil)
		assert.Nil(t, err)
		assert.False(t, Isomorphic(a, b))
	})

	t.Run("unreachable state", func(t *testing.T) {
		b, err := NewDFA([]rune("a"), [][]int{{0}, {1}}, nil)
		assert.Nil(t, err)
		assert.False(t, Isomorphic(b, b))
	})

	t.Run("minimized random automata", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for i := 0; i < 50; i++ {
			m := Minimize(randomDFA(rng, 6, []rune("xy")))
			assert.True(t, Isomorphic(m, Minimize(m)))
		}
	})
}
