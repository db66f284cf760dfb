package automaton

// Automata Constructors for small, total automata over a caller-supplied alphabet.
type Automata struct {
}

// MakeEmpty
// Returns a new automaton with the empty language: a single non-accepting state looping on every symbol.
func (*Automata) MakeEmpty(alphabet []rune) (*DFA, error) {
	b, err := NewBuilder(alphabet)
	if err != nil {
		return nil, err
	}
	s := b.CreateState()
	if err := loop(b, s); err != nil {
		return nil, err
	}
	return b.Finish()
}

// MakeEmptyString
// Returns a new automaton that accepts only the empty string.
func (*Automata) MakeEmptyString(alphabet []rune) (*DFA, error) {
	b, err := NewBuilder(alphabet)
	if err != nil {
		return nil, err
	}
	s := b.CreateState()
	dead := b.CreateState()
	if err := b.SetAccept(s, true); err != nil {
		return nil, err
	}
	for _, r := range alphabet {
		if err := b.AddTransition(s, r, dead); err != nil {
			return nil, err
		}
	}
	if err := loop(b, dead); err != nil {
		return nil, err
	}
	return b.Finish()
}

// MakeAnyString
// Returns a new automaton that accepts all strings over the alphabet.
func (*Automata) MakeAnyString(alphabet []rune) (*DFA, error) {
	b, err := NewBuilder(alphabet)
	if err != nil {
		return nil, err
	}
	s := b.CreateState()
	if err := b.SetAccept(s, true); err != nil {
		return nil, err
	}
	if err := loop(b, s); err != nil {
		return nil, err
	}
	return b.Finish()
}

// MakeString
// Returns a new automaton that accepts exactly s. Every symbol of s must be in the alphabet.
func (*Automata) MakeString(alphabet []rune, s string) (*DFA, error) {
	b, err := NewBuilder(alphabet)
	if err != nil {
		return nil, err
	}

	word := []rune(s)
	for pos, r := range word {
		if _, ok := b.symbols[r]; !ok {
			return nil, malformed(0, "symbol %q at position %d is not in the alphabet", r, pos)
		}
	}

	b.CreateStates(len(word) + 1)
	dead := b.CreateState()

	for state := 0; state <= len(word); state++ {
		for _, r := range alphabet {
			dest := dead
			if state < len(word) && word[state] == r {
				dest = state + 1
			}
			if err := b.AddTransition(state, r, dest); err != nil {
				return nil, err
			}
		}
	}
	if err := b.SetAccept(len(word), true); err != nil {
		return nil, err
	}
	if err := loop(b, dead); err != nil {
		return nil, err
	}
	return b.Finish()
}

func loop(b *Builder, state int) error {
	for _, r := range b.alphabet {
		if err := b.AddTransition(state, r, state); err != nil {
			return err
		}
	}
	return nil
}
