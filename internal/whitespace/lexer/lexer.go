/*
 * esomachine - Whitespace token lexer.
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

// Package lexer turns a Whitespace source byte string into its
// three-symbol token stream, skipping any byte that is not space, tab
// or line feed. Numbers and labels are
// decoded directly from the token stream; a label is kept as its raw
// bit string rather than an integer, since Whitespace label identity
// is bit-string identity (leading zeros distinguish labels).
package lexer

import (
	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/util/debug"
)

// Token is one of Whitespace's three significant symbols.
type Token int

const (
	Space Token = iota
	Tab
	LF
)

func (t Token) String() string {
	switch t {
	case Space:
		return "S"
	case Tab:
		return "T"
	case LF:
		return "L"
	}
	return "?"
}

// Lexer reads tokens (and decodes numbers/labels) from a source buffer,
// skipping comment bytes transparently on every read.
type Lexer struct {
	src []byte
	pos int
}

// New returns a Lexer over src. src is not copied or mutated.
func New(src []byte) *Lexer {
	return &Lexer{src: src}
}

// Pos returns the current byte offset into the source, usable as a
// program counter by the two-pass dispatcher.
func (l *Lexer) Pos() int { return l.pos }

// Seek repositions the lexer at a byte offset previously returned by
// Pos, for jumps, calls and returns.
func (l *Lexer) Seek(pos int) { l.pos = pos }

// Next returns the next significant token, skipping comment bytes.
// ok is false at end of input.
func (l *Lexer) Next() (tok Token, ok bool) {
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		l.pos++
		switch b {
		case ' ':
			debug.Tracef(l.pos, debug.Lexer, "token=S")
			return Space, true
		case '\t':
			debug.Tracef(l.pos, debug.Lexer, "token=T")
			return Tab, true
		case '\n':
			debug.Tracef(l.pos, debug.Lexer, "token=L")
			return LF, true
		}
	}
	return 0, false
}

// Label is a decoded label bit string: S=0, T=1 digits preserved in
// order, compared by value (two labels with different leading zeros
// are distinct labels).
type Label string

// Number decodes a Whitespace number parameter: a sign bit, MSB-first
// binary digits, and an L terminator. An empty digit sequence (sign bit
// immediately followed by L) decodes to 0.
func (l *Lexer) Number() (int64, error) {
	sign, ok := l.Next()
	if !ok {
		return 0, machineerr.UnexpectedEOF
	}

	var digits []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return 0, machineerr.UnexpectedEOF
		}
		if tok == LF {
			break
		}
		digits = append(digits, tok)
	}

	var magnitude int64
	for _, d := range digits {
		magnitude <<= 1
		if d == Tab {
			magnitude |= 1
		}
	}
	if sign == Tab {
		magnitude = -magnitude
	}
	debug.Tracef(l.pos, debug.Lexer, "number=%d", magnitude)
	return magnitude, nil
}

// Label decodes a Whitespace label parameter: a bit string terminated
// by L, kept verbatim so leading zeros are preserved.
func (l *Lexer) Label() (Label, error) {
	var digits []byte
	for {
		tok, ok := l.Next()
		if !ok {
			return "", machineerr.UnexpectedEOF
		}
		if tok == LF {
			break
		}
		if tok == Space {
			digits = append(digits, '0')
		} else {
			digits = append(digits, '1')
		}
	}
	lbl := Label(digits)
	debug.Tracef(l.pos, debug.Lexer, "label=%s", lbl)
	return lbl, nil
}
