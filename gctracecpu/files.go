package main

import (
	"io"
	"os"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/pkg/errors"
)

type fileresult struct {
	total float64
	err   error
}

// sumfile aggregates the trace in the named file.
func sumfile(fname string, dump io.Writer) (float64, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return 0., err
	}
	defer fd.Close()

	total, err := aggregate(fd, dump)
	if err != nil {
		return 0., errors.Wrapf(err, "%s", fname)
	}
	return total, nil
}

// sumfiles aggregates each of fnames on a pool of workers. Totals are
// combined in argument order and the error of the first failing file in
// that order wins.
func sumfiles(fnames []string, workers int, dump io.Writer) (float64, error) {
	if dump != nil {
		dump = &lockedwriter{w: dump}
	}

	results := make([]fileresult, len(fnames))
	wp := workerpool.New(workers)
	for i, fn := range fnames {
		i, fn := i, fn
		wp.Submit(func() {
			t, err := sumfile(fn, dump)
			results[i] = fileresult{total: t, err: err}
		})
	}
	wp.StopWait()

	total := 0.
	for _, r := range results {
		if r.err != nil {
			return 0., r.err
		}
		total += r.total
	}
	return total, nil
}

// lockedwriter serializes writes from concurrent goroutines.
type lockedwriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedwriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
