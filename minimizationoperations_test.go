package automaton

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allStrings returns every string over alphabet of length at most maxLen.
func allStrings(alphabet []rune, maxLen int) []string {
	result := []string{""}
	level := []string{""}
	for n := 0; n < maxLen; n++ {
		next := make([]string, 0, len(level)*len(alphabet))
		for _, prefix := range level {
			for _, r := range alphabet {
				next = append(next, prefix+string(r))
			}
		}
		result = append(result, next...)
		level = next
	}
	return result
}

func assertSameLanguage(t *testing.T, want, got *DFA, maxLen int) {
	t.Helper()
	for _, s := range allStrings(want.Alphabet(), maxLen) {
		if !assert.Equalf(t, Run(want, s), Run(got, s), "Run(%q)", s) {
			return
		}
	}
}

func TestMinimize_Scenarios(t *testing.T) {
	t.Run("equivalent final states collapse", func(t *testing.T) {
		// 2 and 3 are both final and go back to 0 on every symbol.
		d := newTestDFA(t, "ab", [][]int{
			{1, 2},
			{3, 1},
			{0, 0},
			{0, 0},
		}, 2, 3)

		m := Minimize(d)
		assert.Equal(t, 3, m.GetNumStates())
		assert.Equal(t, "2\na b\n3\n"+
			"0 a 1\n0 b 2\n"+
			"1 a 2\n1 b 1\n"+
			"2 a 0\n2 b 0\n"+
			"1\n2\n", m.String())
		assertSameLanguage(t, d, m, 6)
	})

	t.Run("unreachable state is dropped", func(t *testing.T) {
		d := newTestDFA(t, "a", [][]int{
			{1},
			{0},
			{2},
		}, 1, 2)

		m := Minimize(d)
		assert.Equal(t, 2, m.GetNumStates())
		assert.Equal(t, "1\na\n2\n0 a 1\n1 a 0\n1\n1\n", m.String())
		assertSameLanguage(t, d, m, 6)
	})

	t.Run("minimal automaton keeps its states", func(t *testing.T) {
		// Number of a's modulo 3, b does nothing.
		d := newTestDFA(t, "ab", [][]int{
			{1, 0},
			{2, 1},
			{0, 2},
		}, 0)

		m := Minimize(d)
		assert.Equal(t, d.GetNumStates(), m.GetNumStates())
		assert.True(t, Isomorphic(d, m))
		assert.Equal(t, d.String(), m.String())
	})
}

func TestMinimize_ZeroStates(t *testing.T) {
	d, err := NewDFA([]rune("ab"), nil, nil)
	require.NoError(t, err)

	m, stats := MinimizeWithStats(d)
	assert.Equal(t, 0, m.GetNumStates())
	assert.Equal(t, []rune("ab"), m.Alphabet())
	assert.Equal(t, Stats{}, stats)
}

func TestMinimize_DoesNotModifyInput(t *testing.T) {
	d, err := Parse(strings.NewReader(sampleInput))
	require.NoError(t, err)
	before := d.String()

	m := Minimize(d)
	assert.Equal(t, 3, m.GetNumStates())
	assert.Equal(t, before, d.String())
}

func TestMinimize_UnreachableNeverMerged(t *testing.T) {
	// State 2 behaves exactly like state 1 but cannot be reached; state 3 is an unreachable final sink.
	d := newTestDFA(t, "ab", [][]int{
		{1, 0},
		{1, 1},
		{1, 1},
		{3, 3},
	}, 1, 2, 3)

	m, stats := MinimizeWithStats(d)
	assert.Equal(t, Stats{
		States:             4,
		Reachable:          2,
		Classes:            2,
		ReachabilityPasses: stats.ReachabilityPasses,
		MarkingPasses:      stats.MarkingPasses,
	}, stats)
	assert.Equal(t, 2, m.GetNumStates())
	assert.Equal(t, []int{1}, m.FinalStates())
	assertSameLanguage(t, d, m, 5)
}

func TestMinimize_LeaderIsLowestState(t *testing.T) {
	// 1, 2 and 3 all move to the final sink 4, but only 3 is reachable.
	d := newTestDFA(t, "x", [][]int{
		{3},
		{4},
		{4},
		{4},
		{4},
	}, 4)

	reachable, _ := reachableStates(d)
	marks, _ := distinguishable(d, reachable)
	classes, leaders := equivalenceClasses(d, reachable, marks)

	assert.Equal(t, []int{0, 3, 4}, leaders)
	for s, want := range map[int]int{0: 0, 3: 1, 4: 2} {
		id, ok := classes[s].Get()
		assert.True(t, ok)
		assert.Equal(t, want, id, "class of state %d", s)
	}
	for _, s := range []int{1, 2} {
		_, ok := classes[s].Get()
		assert.False(t, ok, "state %d is unreachable", s)
	}
}

func TestMinimize_MergeChain(t *testing.T) {
	// Even-length strings, with each parity duplicated: 0 and 2 are even, 1 and 3 are odd.
	d := newTestDFA(t, "ab", [][]int{
		{1, 3},
		{2, 0},
		{3, 1},
		{0, 2},
	}, 0, 2)

	m := Minimize(d)
	assert.Equal(t, 2, m.GetNumStates())
	assert.Equal(t, []int{0}, m.FinalStates())
	assert.Equal(t, 1, m.Step(0, 'a'))
	assert.Equal(t, 1, m.Step(0, 'b'))
	assert.Equal(t, 0, m.Step(1, 'a'))
	assert.Equal(t, 0, m.Step(1, 'b'))
	assertSameLanguage(t, d, m, 6)
}

func Test_reachableStates(t *testing.T) {
	// 0 -> 2 -> 4 -> 1; 3 only reaches itself and 1.
	d := newTestDFA(t, "a", [][]int{
		{2},
		{1},
		{4},
		{1},
		{1},
	})

	reachable, passes := reachableStates(d)
	assert.Equal(t, uint(4), reachable.Count())
	assert.False(t, reachable.Test(3))
	assert.GreaterOrEqual(t, passes, 2)
}

func Test_distinguishable(t *testing.T) {
	d, err := Parse(strings.NewReader(sampleInput))
	require.NoError(t, err)

	reachable, _ := reachableStates(d)
	marks, passes := distinguishable(d, reachable)
	assert.GreaterOrEqual(t, passes, 1)

	for p := 0; p < d.GetNumStates(); p++ {
		for q := 0; q < d.GetNumStates(); q++ {
			assert.Equal(t, marks[p].Test(uint(q)), marks[q].Test(uint(p)), "symmetry of (%d, %d)", p, q)
		}
		assert.False(t, marks[p].Test(uint(p)))
	}

	assert.False(t, marks[2].Test(3))
	assert.True(t, marks[0].Test(1))
	assert.True(t, marks[0].Test(2))
	assert.True(t, marks[1].Test(3))
}

func TestMinimize_RandomProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(20240601))
	alphabets := [][]rune{[]rune("a"), []rune("ab"), []rune("abc")}

	for i := 0; i < 200; i++ {
		alphabet := alphabets[i%len(alphabets)]
		d := randomDFA(rng, 1+rng.Intn(9), alphabet)

		m, stats := MinimizeWithStats(d)

		// Same language.
		assertSameLanguage(t, d, m, 5)

		// Still total over the same alphabet.
		assert.Equal(t, alphabet, m.Alphabet())
		for s := 0; s < m.GetNumStates(); s++ {
			for j := range alphabet {
				target := m.Transition(s, j)
				assert.True(t, target >= 0 && target < m.GetNumStates())
			}
		}

		// Never bigger than the reachable part.
		assert.Equal(t, m.GetNumStates(), stats.Classes)
		assert.LessOrEqual(t, stats.Classes, stats.Reachable)
		assert.LessOrEqual(t, stats.Reachable, d.GetNumStates())

		// Idempotent.
		assert.True(t, Isomorphic(m, Minimize(m)), "minimizing twice changed %s", d)

		// Every pair of surviving states is distinguishable.
		reachable, _ := reachableStates(m)
		assert.Equal(t, uint(m.GetNumStates()), reachable.Count())
		marks, _ := distinguishable(m, reachable)
		for p := 0; p < m.GetNumStates(); p++ {
			for q := p + 1; q < m.GetNumStates(); q++ {
				assert.True(t, marks[p].Test(uint(q)), "states %d and %d of %s are equivalent", p, q, m)
			}
		}
	}
}

func TestMinimize_StringAutomata(t *testing.T) {
	alphabet := []rune("ab")
	for _, s := range []string{"", "a", "ab", "abba", "bbb"} {
		d, err := defaultAutomata.MakeString(alphabet, s)
		require.NoError(t, err)

		m := Minimize(d)
		// A chain of len(s)+1 states plus the dead state is already minimal.
		assert.Equal(t, len(s)+2, m.GetNumStates(), "MakeString(%q)", s)
		assert.True(t, Run(m, s))
		assert.False(t, Run(m, s+"a"))
	}
}
