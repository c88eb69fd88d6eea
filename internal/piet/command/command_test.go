package command

import (
	"testing"

	"github.com/rcornwell/esomachine/internal/piet/color"
)

func TestTransitionSelfIsNop(t *testing.T) {
	for hue := 0; hue < 6; hue++ {
		for light := 0; light < 3; light++ {
			c := color.Compose(hue, light)
			cmd, ok := Transition(c, c)
			if !ok {
				t.Fatalf("Transition(%v, %v) not ok", c, c)
			}
			if cmd != None {
				t.Errorf("Transition(%v, %v) got: %v expected: %v", c, c, cmd, None)
			}
		}
	}
}

func TestTransitionNonChromatic(t *testing.T) {
	red := color.Compose(0, 1)
	if _, ok := Transition(red, color.White); ok {
		t.Errorf("Transition to White reported ok")
	}
	if _, ok := Transition(color.Black, red); ok {
		t.Errorf("Transition from Black reported ok")
	}
}

func TestTransitionKnownPairs(t *testing.T) {
	red := color.Compose(0, 1)
	yellow := color.Compose(1, 1)
	darkRed := color.Compose(0, 2)
	lightYellow := color.Compose(1, 0)

	cases := []struct {
		from, to color.Color
		want     Command
	}{
		{red, yellow, Add},             // same lightness, hue +1
		{red, darkRed, Push},           // same hue, lightness +1
		{darkRed, red, Pop},            // same hue, lightness +2 (wraps)
		{red, lightYellow, Mul},        // hue +1, lightness +2
	}
	for _, c := range cases {
		got, ok := Transition(c.from, c.to)
		if !ok {
			t.Fatalf("Transition(%v, %v) not ok", c.from, c.to)
		}
		if got != c.want {
			t.Errorf("Transition(%v, %v) got: %v expected: %v", c.from, c.to, got, c.want)
		}
	}
}
