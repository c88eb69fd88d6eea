/*
 * esomachine - Hex/decimal formatting helpers.
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

// Package hexfmt formats stack cells, heap addresses and raw bitstrings,
// appending into a strings.Builder the way the rest of the ambient
// stack's formatting helpers do rather than returning and concatenating
// strings. The interactive debugger renders stack snapshots with
// FormatStack; the trace output in the engines formats its own values.
package hexfmt

import "strings"

const hexDigits = "0123456789abcdef"

// FormatHex64 appends the 16 hex digits of v to b.
func FormatHex64(b *strings.Builder, v int64) {
	u := uint64(v)
	for shift := 60; shift >= 0; shift -= 4 {
		b.WriteByte(hexDigits[(u>>uint(shift))&0xf])
	}
}

// FormatSigned appends the decimal representation of v to b.
func FormatSigned(b *strings.Builder, v int64) {
	if v < 0 {
		b.WriteByte('-')
		if v == -v {
			// math.MinInt64 has no positive counterpart; fall back to
			// the unsigned digit string.
			FormatUnsigned(b, uint64(v))
			return
		}
		v = -v
	}
	FormatUnsigned(b, uint64(v))
}

// FormatUnsigned appends the decimal representation of v to b.
func FormatUnsigned(b *strings.Builder, v uint64) {
	if v == 0 {
		b.WriteByte('0')
		return
	}
	var digits [20]byte
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = '0' + byte(v%10)
		v /= 10
	}
	b.Write(digits[i:])
}

// FormatStack appends a space-separated decimal rendering of a stack
// snapshot, top of stack last, to b.
func FormatStack(b *strings.Builder, cells []int64) {
	for i, v := range cells {
		if i != 0 {
			b.WriteByte(' ')
		}
		FormatSigned(b, v)
	}
}

// FormatBits appends a bit string (as produced by the number and label
// decoders) to b using '0'/'1' characters.
func FormatBits(b *strings.Builder, bits string) {
	b.WriteString(bits)
}

// Hex64 returns the 16 hex digit rendering of v.
func Hex64(v int64) string {
	var b strings.Builder
	FormatHex64(&b, v)
	return b.String()
}

// Stack returns a space-separated decimal rendering of a stack
// snapshot, top of stack last.
func Stack(cells []int64) string {
	var b strings.Builder
	FormatStack(&b, cells)
	return b.String()
}
