/*
 * esomachine - Whitespace label table (pass 1).
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

// Package program implements the Whitespace first pass: scan the whole
// token stream once, recording where every mark instruction leaves the
// reader positioned, without executing anything.
// Every instruction's parameter must still be decoded correctly during
// this scan or a later instruction's bit pattern can be mistaken for a
// label terminator -- a phantom label match.
package program

import (
	"github.com/rcornwell/esomachine/internal/whitespace/instr"
	"github.com/rcornwell/esomachine/internal/whitespace/lexer"
)

// Program is a Whitespace source plus its precomputed label table.
type Program struct {
	Source []byte
	Labels map[lexer.Label]int
}

// Load scans src once and builds its label table. A label defined more
// than once keeps the last definition encountered.
func Load(src []byte) (*Program, error) {
	l := lexer.New(src)
	labels := make(map[lexer.Label]int)

	for {
		if _, ok := peekAny(l); !ok {
			break
		}
		in, err := instr.Decode(l)
		if err != nil {
			return nil, err
		}
		if in.Op == instr.Mark {
			labels[in.Label] = in.After
		}
	}

	return &Program{Source: src, Labels: labels}, nil
}

// peekAny reports whether any more significant tokens remain, without
// consuming one, by scanning a throwaway copy of the lexer position.
func peekAny(l *lexer.Lexer) (lexer.Token, bool) {
	save := l.Pos()
	tok, ok := l.Next()
	l.Seek(save)
	return tok, ok
}
