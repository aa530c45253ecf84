package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// cpufield is the index of the CPU breakdown in a space separated gctrace
// line:
//
//	gc 1 @0.012s 2%: 0.011+1.2+0.003 ms clock, 0.046+0.28/1.1/0.39+0.013 ms cpu, ...
const cpufield = 7

var (
	errFieldCount = errors.New("field count error")
	errShape      = errors.New("shape error")
	errParse      = errors.New("parse error")
)

// Breakdown is the CPU time split of one collection cycle.
type Breakdown struct {
	STW       float64 // stop-the-world sweep termination
	Assist    float64
	Dedicated float64
	Idle      float64
	MarkTerm  float64
}

// Total sums the components in field order.
func (b Breakdown) Total() float64 {
	return b.STW + b.Assist + b.Dedicated + b.Idle + b.MarkTerm
}

// cpuField returns the breakdown field of line. line is split as is, not
// trimmed.
func cpuField(line string) (string, error) {
	fields := strings.Split(line, " ")
	if len(fields) <= cpufield {
		return "", errors.Wrapf(errFieldCount, "%d fields, want at least %d", len(fields), cpufield+1)
	}
	return fields[cpufield], nil
}

// parseBreakdown converts a field of the shape ST+A/D/I+MT.
func parseBreakdown(field string) (Breakdown, error) {
	var b Breakdown

	phases := strings.Split(field, "+")
	if len(phases) != 3 {
		return b, errors.Wrapf(errShape, "%q has %d '+' parts, want 3", field, len(phases))
	}
	marks := strings.Split(phases[1], "/")
	if len(marks) != 3 {
		return b, errors.Wrapf(errShape, "%q has %d '/' parts, want 3", phases[1], len(marks))
	}

	for _, p := range []struct {
		s   string
		dst *float64
	}{
		{phases[0], &b.STW},
		{marks[0], &b.Assist},
		{marks[1], &b.Dedicated},
		{marks[2], &b.Idle},
		{phases[2], &b.MarkTerm},
	} {
		f, err := strconv.ParseFloat(p.s, 64)
		if err != nil {
			return Breakdown{}, errors.Wrapf(errParse, "can't parse %q in %q", p.s, field)
		}
		*p.dst = f
	}
	return b, nil
}

// parseLine extracts and parses the breakdown of a single trace line.
func parseLine(line string) (Breakdown, error) {
	field, err := cpuField(line)
	if err != nil {
		return Breakdown{}, err
	}
	return parseBreakdown(field)
}
