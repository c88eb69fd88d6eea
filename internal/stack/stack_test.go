package stack

import "testing"

func TestPushPop(t *testing.T) {
	s := New()
	if _, ok := s.Pop(); ok {
		t.Errorf("Pop on empty stack returned ok")
	}
	s.Push(1)
	s.Push(2)
	s.Push(3)
	if n := s.Len(); n != 3 {
		t.Errorf("Len got: %d expected: %d", n, 3)
	}
	v, ok := s.Pop()
	if !ok || v != 3 {
		t.Errorf("Pop got: %d, %v expected: %d, %v", v, ok, 3, true)
	}
}

func TestPeek(t *testing.T) {
	s := New()
	s.Push(10)
	s.Push(20)
	s.Push(30)
	v, ok := s.Peek(0)
	if !ok || v != 30 {
		t.Errorf("Peek(0) got: %d, %v expected: %d, %v", v, ok, 30, true)
	}
	v, ok = s.Peek(2)
	if !ok || v != 10 {
		t.Errorf("Peek(2) got: %d, %v expected: %d, %v", v, ok, 10, true)
	}
	if _, ok := s.Peek(3); ok {
		t.Errorf("Peek(3) returned ok on a 3-item stack")
	}
	if _, ok := s.Peek(-1); ok {
		t.Errorf("Peek(-1) returned ok")
	}
}

func TestDup(t *testing.T) {
	s := New()
	s.Dup() // no-op on empty
	if n := s.Len(); n != 0 {
		t.Errorf("Dup on empty stack changed length to: %d", n)
	}
	s.Push(5)
	s.Dup()
	if got := s.Snapshot(); len(got) != 2 || got[0] != 5 || got[1] != 5 {
		t.Errorf("Dup got: %v expected: [5 5]", got)
	}
}

func TestSwap(t *testing.T) {
	s := New()
	s.Push(1)
	s.Swap() // no-op, only one item
	if got := s.Snapshot(); len(got) != 1 || got[0] != 1 {
		t.Errorf("Swap with one item got: %v", got)
	}
	s.Push(2)
	s.Swap()
	if got := s.Snapshot(); got[0] != 2 || got[1] != 1 {
		t.Errorf("Swap got: %v expected: [2 1]", got)
	}
}

func TestRollPositive(t *testing.T) {
	s := New()
	for _, v := range []int64{1, 2, 3, 4, 5} {
		s.Push(v)
	}
	s.Roll(4, 1)
	got := s.Snapshot()
	want := []int64{1, 5, 2, 3, 4}
	if !equal(got, want) {
		t.Errorf("Roll(4,1) got: %v expected: %v", got, want)
	}
}

func TestRollIdentity(t *testing.T) {
	s := New()
	for _, v := range []int64{1, 2, 3, 4, 5} {
		s.Push(v)
	}
	before := s.Snapshot()
	s.Roll(3, 0)
	after := s.Snapshot()
	if !equal(before, after) {
		t.Errorf("Roll(depth,0) changed stack: before %v after %v", before, after)
	}
}

func TestRollModulo(t *testing.T) {
	for depth := 1; depth <= 5; depth++ {
		for k := -7; k <= 7; k++ {
			a := New()
			b := New()
			for _, v := range []int64{1, 2, 3, 4, 5} {
				a.Push(v)
				b.Push(v)
			}
			a.Roll(depth, k)
			mod := k % depth
			if mod < 0 {
				mod += depth
			}
			b.Roll(depth, mod)
			if !equal(a.Snapshot(), b.Snapshot()) {
				t.Errorf("Roll(%d,%d) != Roll(%d,%d): %v vs %v", depth, k, depth, mod, a.Snapshot(), b.Snapshot())
			}
		}
	}
}

func TestRollOutOfRange(t *testing.T) {
	s := New()
	s.Push(1)
	s.Push(2)
	before := s.Snapshot()
	s.Roll(-1, 1)
	s.Roll(3, 1)
	if !equal(before, s.Snapshot()) {
		t.Errorf("Roll with bad depth mutated stack: %v", s.Snapshot())
	}
}

func TestBoundedPush(t *testing.T) {
	s := NewBounded(2)
	if !s.Push(1) {
		t.Errorf("Push 1 of 2 rejected")
	}
	if !s.Push(2) {
		t.Errorf("Push 2 of 2 rejected")
	}
	if s.Push(3) {
		t.Errorf("Push past ceiling accepted")
	}
	if n := s.Len(); n != 2 {
		t.Errorf("Len got: %d expected: %d", n, 2)
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Push(1)
	s.Push(2)
	s.Clear()
	if n := s.Len(); n != 0 {
		t.Errorf("Clear left Len: %d", n)
	}
}

func equal(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
