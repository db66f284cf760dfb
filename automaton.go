package automaton

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"
)

// DFA Represents a deterministic finite automaton over a fixed, ordered alphabet. States are integers
// 0..GetNumStates()-1 and state 0 is always the initial state. The transition function is total: every
// state has exactly one transition for every symbol of the alphabet. A DFA never changes once it is
// built; create one with Builder, NewDFA or Parse.
type DFA struct {
	// Symbols in declaration order; the position of a symbol is its index in the transition table.
	alphabet []rune
	symbols  map[rune]int

	numStates int

	// Row-major transition table: the target of state s on symbol index i is transitions[s*len(alphabet)+i].
	transitions []int

	isAccept *bitset.BitSet
}

// NewDFA Builds a DFA from a dense table, where table[s][i] is the target of state s on alphabet[i],
// and the list of final states.
func NewDFA(alphabet []rune, table [][]int, finals []int) (*DFA, error) {
	b, err := NewBuilder(alphabet)
	if err != nil {
		return nil, err
	}
	b.CreateStates(len(table))

	for s, row := range table {
		if len(row) != len(alphabet) {
			return nil, malformed(0, "state %d has %d transitions, want %d", s, len(row), len(alphabet))
		}
		for i, dest := range row {
			if err := b.AddTransition(s, alphabet[i], dest); err != nil {
				return nil, err
			}
		}
	}

	for _, f := range finals {
		if err := b.SetAccept(f, true); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// GetNumStates How many states this automaton has.
func (d *DFA) GetNumStates() int {
	return d.numStates
}

// GetNumSymbols Size of the alphabet.
func (d *DFA) GetNumSymbols() int {
	return len(d.alphabet)
}

// Alphabet Returns a copy of the alphabet in declaration order.
func (d *DFA) Alphabet() []rune {
	alphabet := make([]rune, len(d.alphabet))
	copy(alphabet, d.alphabet)
	return alphabet
}

// Symbol Returns the symbol at the given alphabet index.
func (d *DFA) Symbol(index int) rune {
	return d.alphabet[index]
}

// SymbolIndex Returns the alphabet index of symbol, and false if symbol is not part of the alphabet.
func (d *DFA) SymbolIndex(symbol rune) (int, bool) {
	i, ok := d.symbols[symbol]
	return i, ok
}

// Transition Returns the target of state on the symbol with the given alphabet index.
func (d *DFA) Transition(state, symbolIndex int) int {
	return d.transitions[state*len(d.alphabet)+symbolIndex]
}

// Step Performs lookup in transitions.
// Returns: destination state, -1 if symbol is not part of the alphabet
func (d *DFA) Step(state int, symbol rune) int {
	i, ok := d.symbols[symbol]
	if !ok {
		return -1
	}
	return d.Transition(state, i)
}

// IsAccept Returns true if this state is an accept state.
func (d *DFA) IsAccept(state int) bool {
	return d.isAccept.Test(uint(state))
}

// GetNumFinalStates How many accept states this automaton has.
func (d *DFA) GetNumFinalStates() int {
	return int(d.isAccept.Count())
}

// FinalStates Returns the accept states in ascending order.
func (d *DFA) FinalStates() []int {
	finals := make([]int, 0, d.isAccept.Count())
	for s, ok := d.isAccept.NextSet(0); ok && s < uint(d.numStates); s, ok = d.isAccept.NextSet(s + 1) {
		finals = append(finals, int(s))
	}
	return finals
}

// Builder Collects states, accept marks and transitions and checks that they form a total DFA. Each
// (state, symbol) pair takes exactly one transition; Finish fails if any pair is left without one.
type Builder struct {
	alphabet []rune
	symbols  map[rune]int

	numStates int

	// Same layout as DFA.transitions; -1 until the transition is added.
	transitions []int

	isAccept *bitset.BitSet
}

// NewBuilder Creates a builder over alphabet. Symbols must be distinct valid runes and must not be
// white space, which separates tokens in the text format.
func NewBuilder(alphabet []rune) (*Builder, error) {
	symbols := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		if !utf8.ValidRune(r) || unicode.IsSpace(r) {
			return nil, malformed(0, "invalid symbol %q in alphabet", r)
		}
		if _, ok := symbols[r]; ok {
			return nil, malformed(0, "duplicate symbol %q in alphabet", r)
		}
		symbols[r] = i
	}

	own := make([]rune, len(alphabet))
	copy(own, alphabet)
	return &Builder{
		alphabet: own,
		symbols:  symbols,
		isAccept: bitset.New(0),
	}, nil
}

// CreateState Create a new state.
func (b *Builder) CreateState() int {
	state := b.numStates
	b.numStates++
	for range b.alphabet {
		b.transitions = append(b.transitions, -1)
	}
	return state
}

// CreateStates Creates n new states.
func (b *Builder) CreateStates(n int) {
	if n <= 0 {
		return
	}
	b.numStates += n
	if len(b.alphabet) > 0 {
		b.transitions = append(b.transitions, slices.Repeat([]int{-1}, n*len(b.alphabet))...)
	}
}

// GetNumStates How many states have been created so far.
func (b *Builder) GetNumStates() int {
	return b.numStates
}

// SetAccept Set or clear this state as an accept state.
func (b *Builder) SetAccept(state int, accept bool) error {
	if state < 0 || state >= b.numStates {
		return malformed(0, "final state %d out of range [0, %d)", state, b.numStates)
	}
	b.isAccept.SetTo(uint(state), accept)
	return nil
}

// IsAccept Returns true if this state is an accept state.
func (b *Builder) IsAccept(state int) bool {
	return b.isAccept.Test(uint(state))
}

// AddTransition Add the transition source --symbol--> dest.
func (b *Builder) AddTransition(source int, symbol rune, dest int) error {
	i, err := b.checkTransition(b.numStates, source, symbol, dest)
	if err != nil {
		return err
	}

	slot := source*len(b.alphabet) + i
	if b.transitions[slot] != -1 {
		return malformed(0, "state %d already has a transition on %q", source, symbol)
	}
	b.transitions[slot] = dest
	return nil
}

// Returns the index of symbol if source --symbol--> dest is a valid transition among numStates states.
func (b *Builder) checkTransition(numStates, source int, symbol rune, dest int) (int, error) {
	i, ok := b.symbols[symbol]
	if !ok {
		return 0, malformed(0, "symbol %q is not in the alphabet", symbol)
	}
	if source < 0 || source >= numStates {
		return 0, malformed(0, "state %d out of range [0, %d)", source, numStates)
	}
	if dest < 0 || dest >= numStates {
		return 0, malformed(0, "state %d out of range [0, %d)", dest, numStates)
	}
	return i, nil
}

// Finish Checks that the transition function is total and returns the finished DFA. The builder must
// not be used afterwards.
func (b *Builder) Finish() (*DFA, error) {
	for slot, dest := range b.transitions {
		if dest == -1 {
			state, i := slot/len(b.alphabet), slot%len(b.alphabet)
			return nil, malformed(0, "state %d has no transition on %q", state, b.alphabet[i])
		}
	}

	return &DFA{
		alphabet:    b.alphabet,
		symbols:     b.symbols,
		numStates:   b.numStates,
		transitions: b.transitions,
		isAccept:    b.isAccept,
	}, nil
}
