package toolchain

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"
)

// Result holds the outputs of one differential run.
type Result struct {
	Compiled    Output
	Interpreted Output
}

// DiffTest runs the compiled binary and the interpreter on script
// concurrently. The generated source and binary must be complete on disk
// before it is called.
func (tc *Toolchain) DiffTest(binary, script string) (*Result, error) {
	res := &Result{}
	var g errgroup.Group
	g.Go(func() error {
		out, err := tc.Capture(executable(binary))
		res.Compiled = out
		return err
	})
	g.Go(func() error {
		out, err := tc.Capture(tc.Python, executable(script))
		res.Interpreted = out
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Compare returns a *multierror.Error of *Mismatch values, one per stream
// whose content differs, or nil when both runs agree.
func (r *Result) Compare() error {
	var result *multierror.Error
	if m := compareStream("standard output", r.Compiled.Stdout, r.Interpreted.Stdout); m != nil {
		result = multierror.Append(result, m)
	}
	if m := compareStream("standard error output", r.Compiled.Stderr, r.Interpreted.Stderr); m != nil {
		result = multierror.Append(result, m)
	}
	return result.ErrorOrNil()
}

func compareStream(stream string, compiled, interpreted []byte) *Mismatch {
	if string(compiled) == string(interpreted) {
		return nil
	}
	return &Mismatch{Stream: stream, Compiled: string(compiled), Interpreted: string(interpreted)}
}

// Mismatch is one output stream on which the two runs disagree.
type Mismatch struct {
	Stream      string
	Compiled    string
	Interpreted string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("different %s", m.Stream)
}

// Diff renders a line diff from the interpreter's output ("-") to the
// compiled program's output ("+").
func (m *Mismatch) Diff() string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(m.Interpreted, m.Compiled)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n\\ No newline at end of output\n")
			}
		}
	}
	return sb.String()
}
