package automaton

import (
	"bufio"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Longest accepted input line. The final-state list of a large automaton is a single line.
const maxLineSize = 16 << 20

// Largest state count Parse accepts.
const maxStates = 1 << 24

// Parse Reads an automaton in the text format
//
//	<numterminals>
//	<symbol_1> ... <symbol_numterminals>
//	<numstates>
//	<state> <symbol> <target_state>       (numstates * numterminals lines)
//	<numfinalstates>
//	<final_state_1> ... <final_state_numfinalstates>
//
// Tokens are separated by blanks and blank lines are ignored, so an empty symbol or final-state list
// may be omitted. Transition lines may come in any order but every (state, symbol) pair must appear
// exactly once. Any mismatch between the declared counts and the data is a *MalformedInputError.
func Parse(r io.Reader) (*DFA, error) {
	lr := newLineReader(r)

	numSymbols, err := lr.count("number of terminals")
	if err != nil {
		return nil, err
	}
	var alphabet []rune
	if numSymbols > 0 {
		fields, err := lr.fields("terminals")
		if err != nil {
			return nil, err
		}
		if len(fields) != numSymbols {
			return nil, malformed(lr.line, "declared %d terminals, found %d", numSymbols, len(fields))
		}
		alphabet = make([]rune, 0, len(fields))
		for _, f := range fields {
			symbol, err := lr.symbol(f)
			if err != nil {
				return nil, err
			}
			alphabet = append(alphabet, symbol)
		}
	}

	b, err := NewBuilder(alphabet)
	if err != nil {
		return nil, atLine(err, lr.line)
	}

	numStates, err := lr.count("number of states")
	if err != nil {
		return nil, err
	}
	if numStates > maxStates {
		return nil, malformed(lr.line, "declared %d states, at most %d are supported", numStates, maxStates)
	}
	if numSymbols > 0 && numStates > math.MaxInt/numSymbols {
		return nil, malformed(lr.line, "declared %d states over %d terminals, too many transitions", numStates, numSymbols)
	}

	// States are created once all transition lines have been read, so memory follows the input and
	// not the declared counts.
	type pending struct {
		line         int
		source, dest int
		symbol       rune
	}
	var transitions []pending
	for i := 0; i < numStates*numSymbols; i++ {
		fields, err := lr.fields("transition")
		if err != nil {
			return nil, err
		}
		if len(fields) != 3 {
			return nil, malformed(lr.line, "want '<state> <symbol> <target_state>', found %d fields", len(fields))
		}
		source, err := lr.integer(fields[0])
		if err != nil {
			return nil, err
		}
		symbol, err := lr.symbol(fields[1])
		if err != nil {
			return nil, err
		}
		dest, err := lr.integer(fields[2])
		if err != nil {
			return nil, err
		}
		if _, err := b.checkTransition(numStates, source, symbol, dest); err != nil {
			return nil, atLine(err, lr.line)
		}
		transitions = append(transitions, pending{line: lr.line, source: source, dest: dest, symbol: symbol})
	}

	b.CreateStates(numStates)
	for _, t := range transitions {
		if err := b.AddTransition(t.source, t.symbol, t.dest); err != nil {
			return nil, atLine(err, t.line)
		}
	}

	numFinal, err := lr.count("number of final states")
	if err != nil {
		return nil, err
	}
	if numFinal > numStates {
		return nil, malformed(lr.line, "declared %d final states but only %d states", numFinal, numStates)
	}
	if numFinal > 0 {
		fields, err := lr.fields("final states")
		if err != nil {
			return nil, err
		}
		if len(fields) != numFinal {
			return nil, malformed(lr.line, "declared %d final states, found %d", numFinal, len(fields))
		}
		for _, f := range fields {
			state, err := lr.integer(f)
			if err != nil {
				return nil, err
			}
			if err := b.SetAccept(state, true); err != nil {
				return nil, atLine(err, lr.line)
			}
		}
		if got := int(b.isAccept.Count()); got != numFinal {
			return nil, malformed(lr.line, "final states contain duplicates")
		}
	}

	if _, ok, err := lr.next(); err != nil {
		return nil, err
	} else if ok {
		return nil, malformed(lr.line, "unexpected content after final states")
	}

	d, err := b.Finish()
	if err != nil {
		return nil, atLine(err, lr.line)
	}
	return d, nil
}

// ParseFile Opens filename and parses it with Parse.
func ParseFile(filename string) (*DFA, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &IOError{Op: "open", Path: filename, Err: err}
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = filename
		}
		return nil, err
	}
	return d, nil
}

// String Renders d in the text format read by Parse.
func (d *DFA) String() string {
	return string(d.appendText(nil))
}

// WriteTo Writes d to w in the text format read by Parse.
func (d *DFA) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.appendText(nil))
	return int64(n), err
}

func (d *DFA) appendText(buf []byte) []byte {
	buf = strconv.AppendInt(buf, int64(len(d.alphabet)), 10)
	buf = append(buf, '\n')
	for i, r := range d.alphabet {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = utf8.AppendRune(buf, r)
	}
	buf = append(buf, '\n')

	buf = strconv.AppendInt(buf, int64(d.numStates), 10)
	buf = append(buf, '\n')
	for s := 0; s < d.numStates; s++ {
		for i, r := range d.alphabet {
			buf = strconv.AppendInt(buf, int64(s), 10)
			buf = append(buf, ' ')
			buf = utf8.AppendRune(buf, r)
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(d.Transition(s, i)), 10)
			buf = append(buf, '\n')
		}
	}

	finals := d.FinalStates()
	buf = strconv.AppendInt(buf, int64(len(finals)), 10)
	buf = append(buf, '\n')
	for i, s := range finals {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(s), 10)
	}
	return append(buf, '\n')
}

type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineReader{scanner: scanner}
}

// Returns the fields of the next non-blank line, or false at end of input.
func (r *lineReader) next() ([]string, bool, error) {
	for r.scanner.Scan() {
		r.line++
		if fields := strings.Fields(r.scanner.Text()); len(fields) > 0 {
			return fields, true, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, false, malformed(r.line+1, "line longer than %d bytes", maxLineSize)
		}
		return nil, false, &IOError{Op: "read", Err: err}
	}
	return nil, false, nil
}

func (r *lineReader) fields(what string) ([]string, error) {
	fields, ok, err := r.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, malformed(r.line+1, "unexpected end of input, expected %s", what)
	}
	return fields, nil
}

func (r *lineReader) count(what string) (int, error) {
	fields, err := r.fields(what)
	if err != nil {
		return 0, err
	}
	if len(fields) != 1 {
		return 0, malformed(r.line, "expected %s, found %d fields", what, len(fields))
	}
	n, err := r.integer(fields[0])
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, malformed(r.line, "%s is negative: %d", what, n)
	}
	return n, nil
}

func (r *lineReader) integer(token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, malformed(r.line, "%q is not an integer", token)
	}
	return n, nil
}

func (r *lineReader) symbol(token string) (rune, error) {
	symbol, size := utf8.DecodeRuneInString(token)
	if (symbol == utf8.RuneError && size <= 1) || size != len(token) {
		return 0, malformed(r.line, "%q is not a single symbol", token)
	}
	return symbol, nil
}

// Attaches a line number to a *MalformedInputError raised by the builder.
func atLine(err error, line int) error {
	var me *MalformedInputError
	if errors.As(err, &me) && me.Line == 0 {
		me.Line = line
	}
	return err
}
