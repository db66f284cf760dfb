package automaton

import (
	"github.com/bits-and-blooms/bitset"
)

// Stats Describes one minimization run.
type Stats struct {
	States             int // states of the input automaton
	Reachable          int // states reachable from state 0
	Classes            int // states of the minimized automaton
	ReachabilityPasses int
	MarkingPasses      int
}

// Minimize
// Returns the minimal DFA accepting the same language as d. States unreachable from state 0 are
// dropped, the remaining states are merged into Myhill-Nerode equivalence classes using the
// table-filling algorithm, and each class becomes one state numbered in order of its lowest original
// state. The alphabet is unchanged and d itself is not modified.
func Minimize(d *DFA) *DFA {
	m, _ := MinimizeWithStats(d)
	return m
}

// MinimizeWithStats Same as Minimize, also reporting what the run did.
func MinimizeWithStats(d *DFA) (*DFA, Stats) {
	reachable, reachPasses := reachableStates(d)
	marks, markPasses := distinguishable(d, reachable)
	classes, leaders := equivalenceClasses(d, reachable, marks)

	return rebuild(d, classes, leaders), Stats{
		States:             d.GetNumStates(),
		Reachable:          int(reachable.Count()),
		Classes:            len(leaders),
		ReachabilityPasses: reachPasses,
		MarkingPasses:      markPasses,
	}
}

// Returns the states reachable from state 0 and the number of passes it took. Every pass expands each
// reachable state that has not been expanded yet; the set only grows, so it stops after a pass that
// expands nothing.
func reachableStates(d *DFA) (*bitset.BitSet, int) {
	numStates := d.GetNumStates()
	reachable := bitset.New(uint(numStates))
	if numStates == 0 {
		return reachable, 0
	}

	visited := bitset.New(uint(numStates))
	reachable.Set(0)

	passes := 0
	for expanded := true; expanded; {
		expanded = false
		passes++
		for s, ok := reachable.NextSet(0); ok; s, ok = reachable.NextSet(s + 1) {
			if visited.Test(s) {
				continue
			}
			visited.Set(s)
			expanded = true
			for i := 0; i < d.GetNumSymbols(); i++ {
				reachable.Set(uint(d.Transition(int(s), i)))
			}
		}
	}
	return reachable, passes
}

// Computes the distinguishability relation over reachable states. marks[p] has bit q set iff p and q
// are distinguishable; rows of unreachable states are nil. The successors of a reachable state are
// reachable, so lookups never land on a nil row.
func distinguishable(d *DFA, reachable *bitset.BitSet) ([]*bitset.BitSet, int) {
	numStates := d.GetNumStates()
	numSymbols := d.GetNumSymbols()

	marks := make([]*bitset.BitSet, numStates)
	if reachable.None() {
		return marks, 0
	}
	for p, ok := reachable.NextSet(0); ok; p, ok = reachable.NextSet(p + 1) {
		marks[p] = bitset.New(uint(numStates))
	}

	// Base case: final and non-final states are distinguishable.
	for p, ok := reachable.NextSet(0); ok; p, ok = reachable.NextSet(p + 1) {
		for q, ok := reachable.NextSet(p + 1); ok; q, ok = reachable.NextSet(q + 1) {
			if d.IsAccept(int(p)) != d.IsAccept(int(q)) {
				marks[p].Set(q)
				marks[q].Set(p)
			}
		}
	}

	passes := 0
	for changed := true; changed; {
		changed = false
		passes++
		for x, ok := reachable.NextSet(0); ok; x, ok = reachable.NextSet(x + 1) {
			for y, ok := reachable.NextSet(x + 1); ok; y, ok = reachable.NextSet(y + 1) {
				if marks[x].Test(y) {
					continue
				}
				for i := 0; i < numSymbols; i++ {
					tx := d.Transition(int(x), i)
					ty := d.Transition(int(y), i)
					if marks[tx].Test(uint(ty)) {
						marks[x].Set(y)
						marks[y].Set(x)
						changed = true
						break
					}
				}
			}
		}
	}
	return marks, passes
}

// classRef Is the equivalence class of a state; ok is false for states that belong to no class
// because they are unreachable.
type classRef struct {
	id int
	ok bool
}

func (c classRef) Get() (int, bool) {
	return c.id, c.ok
}

// Partitions the reachable states into classes. States are taken in index order; each one not yet
// in a class opens a new class and pulls in every later unassigned reachable state that is not
// distinguishable from it. leaders[c] is the lowest original state of class c.
func equivalenceClasses(d *DFA, reachable *bitset.BitSet, marks []*bitset.BitSet) ([]classRef, []int) {
	classes := make([]classRef, d.GetNumStates())
	leaders := make([]int, 0)

	for s, ok := reachable.NextSet(0); ok; s, ok = reachable.NextSet(s + 1) {
		if classes[s].ok {
			continue
		}

		id := len(leaders)
		leaders = append(leaders, int(s))
		classes[s] = classRef{id: id, ok: true}

		for p, ok := reachable.NextSet(s + 1); ok; p, ok = reachable.NextSet(p + 1) {
			if !classes[p].ok && !marks[s].Test(p) {
				classes[p] = classRef{id: id, ok: true}
			}
		}
	}
	return classes, leaders
}

// Builds the minimized automaton: one state per class, with the transitions and accept status of the
// class leader mapped through the class table.
func rebuild(d *DFA, classes []classRef, leaders []int) *DFA {
	numSymbols := d.GetNumSymbols()
	transitions := make([]int, len(leaders)*numSymbols)
	isAccept := bitset.New(uint(len(leaders)))

	for c, leader := range leaders {
		for i := 0; i < numSymbols; i++ {
			target, ok := classes[d.Transition(leader, i)].Get()
			if !ok {
				panic("automaton: successor of a reachable state has no class")
			}
			transitions[c*numSymbols+i] = target
		}
		if d.IsAccept(leader) {
			isAccept.Set(uint(c))
		}
	}

	// The alphabet is never modified after construction, so it is shared with d.
	return &DFA{
		alphabet:    d.alphabet,
		symbols:     d.symbols,
		numStates:   len(leaders),
		transitions: transitions,
		isAccept:    isAccept,
	}
}
