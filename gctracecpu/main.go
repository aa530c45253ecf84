package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
)

const helptext = `Usage: gctracecpu [-v] [-j n] [file ...]
       gctracecpu [-v] -run command [arg ...]

gctracecpu sums the GC CPU time (the ST+A/D/I+MT "ms cpu" field) of every
GODEBUG=gctrace=1 line read from stdin, the named files or the stderr of
command, and prints the total in milliseconds.
`

var verbose = flag.Bool("v", false, "dump each parsed CPU breakdown to stderr")
var workers = flag.Int("j", 4, "number of files to read at once")
var runcmd = flag.Bool("run", false, "run the arguments as a command with GODEBUG=gctrace=1")

var errUsage = errors.New("usage error")

// usage prints a usage message for this command.
func usage(status int) {
	io.WriteString(os.Stderr, helptext)
	flag.PrintDefaults()
	os.Exit(status)
}

func main() {
	flag.Usage = func() { usage(2) }
	flag.Parse()

	var dump io.Writer
	if *verbose {
		dump = os.Stderr
	}

	total, err := run(flag.Args(), dump)
	if errors.Cause(err) == errUsage {
		log.Println(err)
		usage(2)
	}
	if err != nil {
		log.Fatalf("gctracecpu: %v", err)
	}
	fmt.Println(total)
}

// run picks the input source from the flags and arguments.
func run(args []string, dump io.Writer) (float64, error) {
	switch {
	case *runcmd:
		return runtraced(args, dump, os.Stderr)
	case *workers < 1:
		return 0., errors.Wrapf(errUsage, "-j %d: need at least one worker", *workers)
	case len(args) > 0:
		return sumfiles(args, *workers, dump)
	}
	return aggregate(os.Stdin, dump)
}
