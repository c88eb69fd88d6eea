/*
 * esomachine - Piet hue/lightness transition table.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package command implements the Piet command decoder: given the color
// transition between two chromatic codels, decode which of the 17 Piet
// operations a step executes.
package command

import "github.com/rcornwell/esomachine/internal/piet/color"

// Command is one of the 17 Piet opcodes, or None for a transition the
// language defines as a no-op (equal hue and lightness).
type Command int

const (
	None Command = iota
	Push
	Pop
	Add
	Sub
	Mul
	Div
	Mod
	Not
	Greater
	Pointer
	Switch
	Dup
	Roll
	InNum
	InChar
	OutNum
	OutChar
)

var names = [...]string{
	None: "nop", Push: "push", Pop: "pop", Add: "add", Sub: "sub",
	Mul: "mul", Div: "div", Mod: "mod", Not: "not", Greater: "greater",
	Pointer: "pointer", Switch: "switch", Dup: "dup", Roll: "roll",
	InNum: "in_num", InChar: "in_char", OutNum: "out_num", OutChar: "out_char",
}

func (c Command) String() string {
	if int(c) >= 0 && int(c) < len(names) {
		return names[c]
	}
	return "invalid"
}

// table[deltaHue][deltaLightness] is the fixed 6x3 lookup the Piet
// language reference defines. (0,0) is None.
var table = [6][3]Command{
	{None, Push, Pop},
	{Add, Sub, Mul},
	{Div, Mod, Not},
	{Greater, Pointer, Switch},
	{Dup, Roll, InNum},
	{InChar, OutNum, OutChar},
}

// Transition returns the command for moving from color "from" to color
// "to", or ok=false if either endpoint is not chromatic (White/Black
// transitions never execute a command).
func Transition(from, to color.Color) (cmd Command, ok bool) {
	if !from.IsChromatic() || !to.IsChromatic() {
		return None, false
	}
	fh, fl := color.Decompose(from)
	th, tl := color.Decompose(to)
	dh := ((th - fh) % 6 + 6) % 6
	dl := ((tl - fl) % 3 + 3) % 3
	return table[dh][dl], true
}
