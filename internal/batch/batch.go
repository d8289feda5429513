// Package batch evaluates many independent expressions concurrently.
package batch

import (
	"bufio"
	"context"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/rpncalc"
)

// Result is the outcome of one input line.
type Result struct {
	// Line is the 1-based line number in the input.
	Line int
	// Source is the expression text.
	Source string
	// Skipped is set for blank lines and comments, which are not evaluated.
	Skipped bool
	// Value is the result when Err is nil and Skipped is false.
	Value float64
	// Err is the evaluation error, if any.
	Err error
}

// Run evaluates each line with up to jobs concurrent workers. Results are in
// input order. Lines that are blank or start with # are skipped. Run returns
// early with ctx's error if ctx is cancelled; expression errors are reported
// per Result and do not stop the batch.
func Run(ctx context.Context, lines []string, jobs int, opts ...rpncalc.Option) ([]Result, error) {
	results := make([]Result, len(lines))
	if len(lines) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(lines)))
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// Each goroutine owns results[i], so no lock is needed.
			res := Result{Line: i + 1, Source: line}
			if skip(line) {
				res.Skipped = true
			} else {
				res.Value, res.Err = rpncalc.ComputeString(line, opts...)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// MaxLineSize is the longest line ReadLines accepts.
const MaxLineSize = 16 << 20

// ReadLines reads all lines from r without their line endings.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, MaxLineSize)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

// Failed counts results with errors.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func skip(line string) bool {
	s := strings.TrimSpace(line)
	return s == "" || strings.HasPrefix(s, "#")
}
