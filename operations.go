package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// IsEmpty
// Returns true if the given automaton accepts no strings.
func IsEmpty(d *DFA) bool {
	if d.GetNumStates() == 0 {
		// Common case: no states
		return true
	}
	if d.IsAccept(0) {
		// Accepts the empty string
		return false
	}

	workList := make([]int, 0)
	seen := bitset.New(uint(d.GetNumStates()))
	workList = append(workList, 0)
	seen.Set(0)

	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]
		if d.IsAccept(state) {
			return false
		}
		for i := 0; i < d.GetNumSymbols(); i++ {
			dest := d.Transition(state, i)
			if !seen.Test(uint(dest)) {
				workList = append(workList, dest)
				seen.Set(uint(dest))
			}
		}
	}
	return true
}

// Isomorphic
// Returns true if a and b are the same automaton up to a renumbering of states: same alphabet in the
// same order, and a bijection between their states that maps state 0 to state 0 and preserves
// transitions and accept status. Every state of both automata must be reachable from state 0 for the
// bijection to be found.
func Isomorphic(a, b *DFA) bool {
	if a.GetNumStates() != b.GetNumStates() || !slices.Equal(a.alphabet, b.alphabet) {
		return false
	}
	numStates := a.GetNumStates()
	if numStates == 0 {
		return true
	}

	forward := make(map[int]int, numStates)
	backward := make(map[int]int, numStates)
	forward[0], backward[0] = 0, 0

	workList := []int{0}
	for len(workList) > 0 {
		p := workList[0]
		workList = workList[1:]
		q := forward[p]

		if a.IsAccept(p) != b.IsAccept(q) {
			return false
		}

		for i := 0; i < a.GetNumSymbols(); i++ {
			ta, tb := a.Transition(p, i), b.Transition(q, i)
			if mapped, ok := forward[ta]; ok {
				if mapped != tb {
					return false
				}
				continue
			}
			if _, ok := backward[tb]; ok {
				return false
			}
			forward[ta], backward[tb] = tb, ta
			workList = append(workList, ta)
		}
	}

	return len(forward) == numStates
}
