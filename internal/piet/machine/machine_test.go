package machine

import (
	"testing"

	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/piet/color"
	"github.com/rcornwell/esomachine/internal/piet/grid"
)

type recordIO struct {
	chars []int64
	nums  []int64
}

func (r *recordIO) OutChar(v int64) error { r.chars = append(r.chars, v); return nil }
func (r *recordIO) OutNum(v int64) error  { r.nums = append(r.nums, v); return nil }
func (r *recordIO) InChar() (int64, bool) { return 0, false }
func (r *recordIO) InNum() (int64, bool)  { return 0, false }

func TestStepCapHaltsCleanly(t *testing.T) {
	g := grid.New(1, 1, []color.Color{color.Compose(0, 1)})
	io := &recordIO{}
	m := New(g, Options{StepCap: 3, IO: io})
	if err := m.Run(); !machineerr.Is(err, machineerr.StepCapExceeded) {
		t.Fatalf("Run returned: %v expected: StepCapExceeded", err)
	}
	if m.StepCount() != 3 {
		t.Errorf("StepCount got: %d expected: 3", m.StepCount())
	}
}

func TestPushThenOutCharPrints(t *testing.T) {
	// light red x3 (block size 3), red x2: the light-red->red
	// transition decodes to push, pushing the light red block's size.
	// Then a light magenta codel: the red->light-magenta transition
	// decodes to out_char, popping and printing that 3.
	a := color.Compose(0, 0)
	b := color.Compose(0, 1)
	c := color.Compose(5, 0)
	cells := []color.Color{a, a, a, b, b, c, color.Black}
	g := grid.New(len(cells), 1, cells)
	io := &recordIO{}
	m := New(g, Options{IO: io})

	if halted, err := m.Step(); halted || err != nil {
		t.Fatalf("step 1: halted=%v err=%v", halted, err)
	}
	if v, ok := m.Stack().Peek(0); !ok || v != 3 {
		t.Fatalf("after push, stack top got: %d,%v expected: 3,true", v, ok)
	}
	if halted, err := m.Step(); halted || err != nil {
		t.Fatalf("step 2: halted=%v err=%v", halted, err)
	}
	if len(io.chars) != 1 || io.chars[0] != 3 {
		t.Fatalf("chars got: %v expected: [3]", io.chars)
	}
}

func TestStackCapIsFatal(t *testing.T) {
	// Each transition below decodes to push (dh=0, dl=1), so the second
	// codel boundary tries to push a second value onto an already-full
	// stack.
	a := color.Compose(0, 0)
	b := color.Compose(0, 1)
	c := color.Compose(0, 2)
	cells := []color.Color{a, b, c, color.Black}
	g := grid.New(len(cells), 1, cells)
	io := &recordIO{}
	m := New(g, Options{StackCap: 1, IO: io})
	if err := m.Run(); !machineerr.Is(err, machineerr.StackOverflowCap) {
		t.Errorf("Run returned: %v expected: StackOverflowCap", err)
	}
}

func TestTraceHookFiresPerCommand(t *testing.T) {
	// red at (0,0), an L-shaped yellow block around it. Once inside the
	// yellow block no DP/CC exit codel borders red, so after the first
	// transition all eight exit attempts fail and the program terminates.
	red, yellow := color.Compose(0, 1), color.Compose(1, 1)
	g := grid.New(2, 2, []color.Color{red, yellow, yellow, yellow})
	io := &recordIO{}
	m := New(g, Options{IO: io})
	var traces []Trace
	m.OnTrace = func(tr Trace) { traces = append(traces, tr) }
	if err := m.Run(); !machineerr.Is(err, machineerr.Terminated) {
		t.Fatalf("Run returned: %v expected: Terminated", err)
	}
	if len(traces) == 0 {
		t.Fatalf("expected at least one trace record")
	}
	if traces[0].Step != 1 {
		t.Errorf("first trace Step got: %d expected: 1", traces[0].Step)
	}
}
