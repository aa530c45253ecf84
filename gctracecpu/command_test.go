package main

import (
	"bytes"
	"os/exec"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestTracefilter(t *testing.T) {
	tt := []struct {
		input string
		skip  bool
	}{
		{"gc 1 @0.012s 2%: 0.011+1.2+0.003 ms clock, 0.046+0.28/1.1/0.39+0.013 ms cpu, 4->4->0 MB, 4 MB goal, 4 P", false},
		{"gc 112 @3.5s 1%: x", false},
		{"", true},
		{"gc is great", true},
		{"scvg: 0 MB released", true},
		{" gc 1 @0.1s", true},
	}

	var other bytes.Buffer
	skip := tracefilter(&other)
	for i, tv := range tt {
		if got := skip(tv.input); got != tv.skip {
			t.Errorf("%d: %q: got %v, want %v", i, tv.input, got, tv.skip)
		}
	}
	if got, want := other.String(), "\ngc is great\nscvg: 0 MB released\n gc 1 @0.1s\n"; got != want {
		t.Errorf("forwarded %q, want %q", got, want)
	}
}

func needsh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("no sh to run")
	}
}

func TestRuntraced(t *testing.T) {
	needsh(t)

	script := `echo hello
echo "$GODEBUG" >&2
echo "` + traceline7("1+1/1/1+1") + `" >&2
echo "` + traceline7("2+2/2/2+2") + `" >&2`

	var other bytes.Buffer
	got, err := runtraced([]string{"sh", "-c", script}, nil, &other)
	if err != nil {
		t.Fatalf("runtraced: %v", err)
	}
	if want := 15.; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	for _, want := range []string{"hello\n", "gctrace=1\n"} {
		if !strings.Contains(other.String(), want) {
			t.Errorf("forwarded %q is missing %q", other.String(), want)
		}
	}
}

func TestRuntracedFails(t *testing.T) {
	needsh(t)

	var other bytes.Buffer
	if _, err := runtraced([]string{"sh", "-c", "exit 3"}, nil, &other); err == nil {
		t.Errorf("want an error for a failing command")
	}

	bad := `echo "gc 1 @0.1s 1%: 1+1+1 ms clock, 1+2+3 ms cpu" >&2`
	if _, err := runtraced([]string{"sh", "-c", bad}, nil, &other); errors.Cause(err) != errShape {
		t.Errorf("got %v, want %v", err, errShape)
	}

	if _, err := runtraced(nil, nil, &other); errors.Cause(err) != errUsage {
		t.Errorf("got %v, want %v", err, errUsage)
	}
}
