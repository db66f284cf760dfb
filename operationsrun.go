package automaton

// Run Returns true if d accepts s. A symbol outside the alphabet rejects the string.
func Run(d *DFA, s string) bool {
	if d.GetNumStates() == 0 {
		return false
	}
	state := 0
	for _, v := range s {
		nextState := d.Step(state, v)
		if nextState == -1 {
			return false
		}
		state = nextState
	}
	return d.IsAccept(state)
}
