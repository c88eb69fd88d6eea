/*
 * esomachine - Error kinds shared by the Piet and Whitespace engines.
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

// Package machineerr defines the sentinel error kinds shared by the Piet
// and Whitespace engines. Terminated is a successful halt, not a
// failure, and callers should treat it that way.
package machineerr

import "errors"

// Kind identifies one of the error categories a loader or machine can
// report. Kind implements error so it can be wrapped and compared with
// errors.Is.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	InvalidImage     Kind = "invalid image"
	InvalidCodelSize Kind = "invalid codel size"
	UnknownColor     Kind = "unknown color"
	UnknownInstr     Kind = "unknown instruction"
	UnexpectedEOF    Kind = "unexpected end of input"
	UndefinedLabel   Kind = "undefined label"
	DivisionByZero   Kind = "division by zero"
	HeapOutOfBounds  Kind = "heap address out of bounds"
	StackOverflowCap Kind = "stack exceeded configured cap"
	StepCapExceeded  Kind = "step cap exceeded"
	Terminated       Kind = "terminated"
)

// Is reports whether err is, or wraps, the given Kind. Terminated is
// still an error value under errors.Is/errors.As; callers that want to
// treat it as a successful halt should check explicitly, e.g.:
//
//	if errors.Is(err, machineerr.Terminated) { ... success ... }
func Is(err error, kind Kind) bool {
	return errors.Is(err, kind)
}
