package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
)

const maxline = 1 << 20

// aggregate sums the CPU breakdown of every non-blank line in r. The first
// bad line stops the scan and no partial total is returned. If dump is not
// nil, each parsed breakdown is written to it.
func aggregate(r io.Reader, dump io.Writer) (float64, error) {
	return sumlines(r, dump, isblank)
}

func isblank(line string) bool {
	return len(strings.TrimSpace(line)) == 0
}

// sumlines is aggregate with a caller supplied skip test. Skipped lines
// still count towards the line numbers in errors.
func sumlines(r io.Reader, dump io.Writer, skip func(line string) bool) (float64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxline)

	total := 0.
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if skip(line) {
			continue
		}

		b, err := parseLine(line)
		if err != nil {
			return 0., errors.Wrapf(err, "line %d", n)
		}
		if dump != nil {
			fmt.Fprintf(dump, "line %d: %s\n", n, litter.Sdump(b))
		}
		total += b.Total()
	}
	if err := scanner.Err(); err != nil {
		return 0., err
	}
	return total, nil
}
