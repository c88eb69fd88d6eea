/*
 * esomachine - Piet interpreter entry point.
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
	"github.com/rcornwell/esomachine/internal/piet/color"
	"github.com/rcornwell/esomachine/internal/piet/loader"
	"github.com/rcornwell/esomachine/internal/piet/machine"
	"github.com/rcornwell/esomachine/internal/util/debug"
	"github.com/rcornwell/esomachine/internal/util/logger"
)

// stdio is the exec.IO a Piet program's in/out commands drive when
// running from a terminal: characters and numbers flow to/from the
// process's own stdin/stdout.
type stdio struct {
	in  *bufio.Reader
	out *bufio.Writer
}

func (s *stdio) OutChar(v int64) error {
	_, err := s.out.WriteRune(rune(v))
	s.out.Flush()
	return err
}

func (s *stdio) OutNum(v int64) error {
	_, err := s.out.WriteString(strconv.FormatInt(v, 10))
	s.out.Flush()
	return err
}

func (s *stdio) InChar() (int64, bool) {
	r, _, err := s.in.ReadRune()
	if err != nil {
		return 0, false
	}
	return int64(r), true
}

func (s *stdio) InNum() (int64, bool) {
	line, err := s.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" && err != nil {
		return 0, false
	}
	v, perr := strconv.ParseInt(line, 10, 64)
	if perr != nil {
		return 0, false
	}
	return v, true
}

func parsePolicy(s string) (color.Policy, error) {
	switch strings.ToLower(s) {
	case "strict":
		return color.Strict, nil
	case "white":
		return color.TreatAsWhite, nil
	case "black":
		return color.TreatAsBlack, nil
	default:
		return 0, fmt.Errorf("unknown color policy: %s", s)
	}
}

func main() {
	optCodel := getopt.IntLong("codel", 'k', 0, "Codel size in pixels (0 infers it)")
	optPolicy := getopt.StringLong("policy", 'p', "strict", "Unknown color policy: strict, white, black")
	optSteps := getopt.IntLong("steps", 's', 0, "Step cap (0 for unbounded)")
	optStackCap := getopt.IntLong("stack-cap", 0, 0, "Value stack ceiling (0 for unbounded)")
	optTrace := getopt.BoolLong("trace", 't', "Trace every step to the log")
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
		fmt.Fprintln(os.Stderr, "usage: piet [options] image.png")
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
		debug.SetMask(debug.Nav | debug.Exec)
	}
	slog.SetDefault(slog.New(logger.New(logOut, &slog.HandlerOptions{Level: programLevel}, *optTrace)))

	policy, err := parsePolicy(*optPolicy)
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	g, err := loader.LoadFile(args[0], loader.Options{CodelSize: *optCodel, Policy: policy})
	if err != nil {
		slog.Error("loading image: " + err.Error())
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	m := machine.New(g, machine.Options{
		StepCap:  *optSteps,
		StackCap: *optStackCap,
		IO:       &stdio{in: bufio.NewReader(os.Stdin), out: out},
	})

	if *optTrace {
		m.OnTrace = func(t machine.Trace) {
			slog.Debug("step", "n", t.Step, "x", t.X, "y", t.Y, "dp", t.DP, "cc", t.CC, "cmd", t.Cmd, "stack", t.Stack)
		}
	}

	if *optInteractive {
		if err := console.Run(m, "piet> "); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		return
	}

	err = m.Run()
	out.Flush()
	if err != nil && !machineerr.Is(err, machineerr.Terminated) && !machineerr.Is(err, machineerr.StepCapExceeded) {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
