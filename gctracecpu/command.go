package main

import (
	"fmt"
	"io"
	"regexp"

	"github.com/codeskyblue/go-sh"
	"github.com/pkg/errors"
)

const tracelineregex = `^gc [0-9]+ @`

var traceline *regexp.Regexp

func init() {
	traceline = regexp.MustCompile(tracelineregex)
}

// tracefilter returns a skip test for sumlines that passes only gctrace
// lines. Everything else the child wrote to stderr is copied to other.
func tracefilter(other io.Writer) func(string) bool {
	return func(line string) bool {
		if traceline.MatchString(line) {
			return false
		}
		fmt.Fprintln(other, line)
		return true
	}
}

// runtraced runs args[0] with the remaining args under GODEBUG=gctrace=1
// and sums the CPU breakdown of the trace it writes to stderr. The child's
// stdout and its non-trace stderr lines are copied to other.
func runtraced(args []string, dump, other io.Writer) (float64, error) {
	if len(args) == 0 {
		return 0., errors.Wrap(errUsage, "no command to run")
	}

	cmdargs := make([]interface{}, 0, len(args)-1)
	for _, a := range args[1:] {
		cmdargs = append(cmdargs, a)
	}

	// The child's stdout is copied from another goroutine.
	other = &lockedwriter{w: other}

	pr, pw := io.Pipe()
	session := sh.NewSession()
	session.SetEnv("GODEBUG", "gctrace=1")
	session.Stdout = other
	session.Stderr = pw

	donez := make(chan error, 1)
	go func() {
		err := session.Command(args[0], cmdargs...).Run()
		pw.Close()
		donez <- err
	}()

	total, err := sumlines(pr, dump, tracefilter(other))
	// Unblock the child if we stopped reading early.
	pr.Close()
	runerr := <-donez

	if err != nil {
		return 0., errors.Wrapf(err, "%s", args[0])
	}
	if runerr != nil {
		return 0., errors.Wrapf(runerr, "command %s failed", args[0])
	}
	return total, nil
}
