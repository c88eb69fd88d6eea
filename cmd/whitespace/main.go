/*
 * esomachine - Whitespace interpreter entry point.
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

package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rcornwell/esomachine/internal/console"
	"github.com/rcornwell/esomachine/internal/machineerr"
	"github.com/rcornwell/esomachine/internal/util/debug"
	"github.com/rcornwell/esomachine/internal/util/logger"
	"github.com/rcornwell/esomachine/internal/whitespace/program"
	"github.com/rcornwell/esomachine/internal/whitespace/vm"
)

// stdio is the vm.IO a Whitespace program's I/O instructions drive when
// running from a terminal. InChar/InNum resolve EOF and malformed input
// to fixed sentinels (-1 and 0) rather than propagating an error, since
// Whitespace itself has no such error.
type stdio struct {
	in  *bufio.Reader
	out *bufio.Writer
}

func (s *stdio) OutChar(v int64) error {
	_, err := s.out.WriteByte(byte(v))
	s.out.Flush()
	return err
}

func (s *stdio) OutNum(v int64) error {
	_, err := s.out.WriteString(strconv.FormatInt(v, 10))
	s.out.Flush()
	return err
}

func (s *stdio) InChar() int64 {
	b, err := s.in.ReadByte()
	if err != nil {
		return -1
	}
	return int64(b)
}

func (s *stdio) InNum() int64 {
	line, err := s.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" && err != nil {
		return -1
	}
	v, perr := strconv.ParseInt(line, 10, 64)
	if perr != nil {
		return 0
	}
	return v
}

func main() {
	optSteps := getopt.IntLong("steps", 's', 0, "Step cap (0 for unbounded)")
	optStackCap := getopt.IntLong("stack-cap", 0, 0, "Value stack ceiling (0 for unbounded)")
	optTrace := getopt.BoolLong("trace", 't', "Trace every instruction to the log")
	optInteractive := getopt.BoolLong("interactive", 'i', "Start the interactive step debugger")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: whitespace [options] program.ws")
		os.Exit(1)
	}

	var logOut io.Writer
	if *optLogFile != "" {
		if f, err := os.Create(*optLogFile); err == nil {
			logOut = f
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	if *optTrace {
		programLevel.Set(slog.LevelDebug)
		debug.SetMask(debug.VM | debug.Lexer)
	}
	slog.SetDefault(slog.New(logger.New(logOut, &slog.HandlerOptions{Level: programLevel}, *optTrace)))

	src, err := os.ReadFile(args[0])
	if err != nil {
		slog.Error("reading program: " + err.Error())
		os.Exit(1)
	}

	prog, err := program.Load(src)
	if err != nil {
		slog.Error("loading labels: " + err.Error())
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	v := vm.New(prog, vm.Options{
		StepCap:  *optSteps,
		StackCap: *optStackCap,
		IO:       &stdio{in: bufio.NewReader(os.Stdin), out: out},
	})

	if *optTrace {
		v.OnTrace = func(t vm.Trace) {
			slog.Debug("step", "n", t.Step, "pc", t.PC, "op", t.Op)
		}
	}

	if *optInteractive {
		if err := console.Run(v, "whitespace> "); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	err = v.Run()
	out.Flush()
	if err != nil && !machineerr.Is(err, machineerr.Terminated) && !machineerr.Is(err, machineerr.StepCapExceeded) {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
