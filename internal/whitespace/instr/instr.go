/*
 * esomachine - Whitespace instruction decoder.
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

// Package instr decodes one Whitespace instruction at a time by walking
// the IMP/opcode prefix tree token by token.
// Both the label-collection pass and the execution pass share this
// decoder, so a parameter a pass does not need is still consumed
// correctly -- skipping it wrong is what causes phantom label matches.
package instr

import (
	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/whitespace/lexer"
)

// Op identifies one of the twenty-four Whitespace instructions.
type Op int

const (
	Push Op = iota
	Dup
	Swap
	Discard
	Copy
	Slide
	Add
	Sub
	Mul
	Div
	Mod
	Store
	Load
	Mark
	Call
	Jump
	Jz
	Jn
	Return
	End
	OutChar
	OutNum
	InChar
	InNum
)

var names = [...]string{
	Push: "push", Dup: "dup", Swap: "swap", Discard: "discard",
	Copy: "copy", Slide: "slide", Add: "add", Sub: "sub", Mul: "mul",
	Div: "div", Mod: "mod", Store: "store", Load: "load", Mark: "mark",
	Call: "call", Jump: "jump", Jz: "jz", Jn: "jn", Return: "return",
	End: "end", OutChar: "out_char", OutNum: "out_num", InChar: "in_char",
	InNum: "in_num",
}

func (o Op) String() string {
	if int(o) >= 0 && int(o) < len(names) {
		return names[o]
	}
	return "invalid"
}

// Instr is one decoded instruction plus whichever parameter its opcode
// takes, if any.
type Instr struct {
	Op    Op
	Num   int64       // Push, Copy, Slide.
	Label lexer.Label // Mark, Call, Jump, Jz, Jn.
	Pos   int         // byte offset of the start of this instruction.
	After int         // byte offset immediately after it, parameter included.
}

// Decode reads one instruction from l, including its parameter if the
// opcode has one. An end-of-input mid prefix/parameter is
// machineerr.UnexpectedEOF; a prefix with no matching opcode is
// machineerr.UnknownInstr.
func Decode(l *lexer.Lexer) (Instr, error) {
	start := l.Pos()
	op, err := decodeOp(l)
	if err != nil {
		return Instr{}, err
	}
	in := Instr{Op: op, Pos: start}

	switch op {
	case Push, Copy, Slide:
		n, err := l.Number()
		if err != nil {
			return Instr{}, err
		}
		in.Num = n
	case Mark, Call, Jump, Jz, Jn:
		lbl, err := l.Label()
		if err != nil {
			return Instr{}, err
		}
		in.Label = lbl
	}
	in.After = l.Pos()
	return in, nil
}

func next(l *lexer.Lexer) (lexer.Token, error) {
	tok, ok := l.Next()
	if !ok {
		return 0, machineerr.UnexpectedEOF
	}
	return tok, nil
}

func decodeOp(l *lexer.Lexer) (Op, error) {
	imp, err := next(l)
	if err != nil {
		return 0, err
	}
	switch imp {
	case lexer.Space:
		return decodeStack(l)
	case lexer.Tab:
		sub, err := next(l)
		if err != nil {
			return 0, err
		}
		switch sub {
		case lexer.Space:
			return decodeArith(l)
		case lexer.Tab:
			return decodeHeap(l)
		case lexer.LF:
			return decodeIO(l)
		}
	case lexer.LF:
		return decodeFlow(l)
	}
	return 0, machineerr.UnknownInstr
}

func decodeStack(l *lexer.Lexer) (Op, error) {
	tok, err := next(l)
	if err != nil {
		return 0, err
	}
	switch tok {
	case lexer.Space:
		return Push, nil
	case lexer.Tab:
		tok2, err := next(l)
		if err != nil {
			return 0, err
		}
		switch tok2 {
		case lexer.Space:
			return Copy, nil
		case lexer.LF:
			return Slide, nil
		}
	case lexer.LF:
		tok2, err := next(l)
		if err != nil {
			return 0, err
		}
		switch tok2 {
		case lexer.Space:
			return Dup, nil
		case lexer.Tab:
			return Swap, nil
		case lexer.LF:
			return Discard, nil
		}
	}
	return 0, machineerr.UnknownInstr
}

func decodeArith(l *lexer.Lexer) (Op, error) {
	a, err := next(l)
	if err != nil {
		return 0, err
	}
	b, err := next(l)
	if err != nil {
		return 0, err
	}
	switch {
	case a == lexer.Space && b == lexer.Space:
		return Add, nil
	case a == lexer.Space && b == lexer.Tab:
		return Sub, nil
	case a == lexer.Space && b == lexer.LF:
		return Mul, nil
	case a == lexer.Tab && b == lexer.Space:
		return Div, nil
	case a == lexer.Tab && b == lexer.Tab:
		return Mod, nil
	}
	return 0, machineerr.UnknownInstr
}

func decodeHeap(l *lexer.Lexer) (Op, error) {
	tok, err := next(l)
	if err != nil {
		return 0, err
	}
	switch tok {
	case lexer.Space:
		return Store, nil
	case lexer.Tab:
		return Load, nil
	}
	return 0, machineerr.UnknownInstr
}

func decodeIO(l *lexer.Lexer) (Op, error) {
	a, err := next(l)
	if err != nil {
		return 0, err
	}
	b, err := next(l)
	if err != nil {
		return 0, err
	}
	switch {
	case a == lexer.Space && b == lexer.Space:
		return OutChar, nil
	case a == lexer.Space && b == lexer.Tab:
		return OutNum, nil
	case a == lexer.Tab && b == lexer.Space:
		return InChar, nil
	case a == lexer.Tab && b == lexer.Tab:
		return InNum, nil
	}
	return 0, machineerr.UnknownInstr
}

func decodeFlow(l *lexer.Lexer) (Op, error) {
	a, err := next(l)
	if err != nil {
		return 0, err
	}
	switch a {
	case lexer.Space:
		b, err := next(l)
		if err != nil {
			return 0, err
		}
		switch b {
		case lexer.Space:
			return Mark, nil
		case lexer.Tab:
			return Call, nil
		case lexer.LF:
			return Jump, nil
		}
	case lexer.Tab:
		b, err := next(l)
		if err != nil {
			return 0, err
		}
		switch b {
		case lexer.Space:
			return Jz, nil
		case lexer.Tab:
			return Jn, nil
		case lexer.LF:
			return Return, nil
		}
	case lexer.LF:
		b, err := next(l)
		if err != nil {
			return 0, err
		}
		if b == lexer.LF {
			return End, nil
		}
	}
	return 0, machineerr.UnknownInstr
}
