package program

import "testing"

// num encodes a Whitespace number parameter: sign, MSB-first binary
// digits (no leading zeros), terminator.
func num(n int64) []byte {
	sign := byte(' ')
	v := n
	if n < 0 {
		sign = '\t'
		v = -v
	}
	var digits []byte
	started := false
	for i := 63; i >= 0; i-- {
		bit := (v >> uint(i)) & 1
		if bit == 1 {
			started = true
		}
		if started {
			if bit == 1 {
				digits = append(digits, '\t')
			} else {
				digits = append(digits, ' ')
			}
		}
	}
	out := []byte{sign}
	out = append(out, digits...)
	return append(out, '\n')
}

func label(bits string) []byte {
	out := make([]byte, 0, len(bits)+1)
	for _, c := range bits {
		if c == '0' {
			out = append(out, ' ')
		} else {
			out = append(out, '\t')
		}
	}
	return append(out, '\n')
}

func push(n int64) []byte     { return append([]byte{' ', ' '}, num(n)...) }
func mark(bits string) []byte { return append([]byte{'\n', ' ', ' '}, label(bits)...) }
func end() []byte             { return []byte{'\n', '\n', '\n'} }

func join(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestLoadRecordsLabelPosition(t *testing.T) {
	src := join(mark("01"), push(5), end())
	prog, err := Load(src)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	pos, ok := prog.Labels["01"]
	if !ok {
		t.Fatalf("label \"01\" not recorded")
	}
	if pos != len(mark("01")) {
		t.Errorf("label position got: %d expected: %d", pos, len(mark("01")))
	}
}

func TestLoadSkipsParametersOfOtherInstructions(t *testing.T) {
	// A push whose number parameter happens to contain the same bit
	// pattern a label terminator would use must not be mistaken for one.
	src := join(push(0), mark("1"), end())
	prog, err := Load(src)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(prog.Labels) != 1 {
		t.Fatalf("Labels got: %d expected: 1", len(prog.Labels))
	}
	if _, ok := prog.Labels["1"]; !ok {
		t.Errorf("expected label \"1\" to be recorded")
	}
}

func TestLoadLaterDuplicateLabelWins(t *testing.T) {
	src := join(mark("0"), push(1), mark("0"), push(2), end())
	prog, err := Load(src)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	firstMark := len(mark("0"))
	secondMark := firstMark + len(push(1)) + len(mark("0"))
	if prog.Labels["0"] != secondMark {
		t.Errorf("got: %d expected later definition: %d", prog.Labels["0"], secondMark)
	}
}

func TestLoadUnknownOpcodeIsFatal(t *testing.T) {
	if _, err := Load([]byte("\t\t\n")); err == nil {
		t.Errorf("expected an error for an undefined opcode")
	}
}
