package toolchain

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name        string
		compiled    Output
		interpreted Output
		streams     []string
	}{
		{
			name:        "identical",
			compiled:    Output{Stdout: []byte("5! = 120\n")},
			interpreted: Output{Stdout: []byte("5! = 120\n")},
		},
		{
			name:        "stdout differs",
			compiled:    Output{Stdout: []byte("5! = 120\n")},
			interpreted: Output{Stdout: []byte("5! = 121\n")},
			streams:     []string{"standard output"},
		},
		{
			name:        "both differ",
			compiled:    Output{Stdout: []byte("a\n"), Stderr: []byte("TypeError: x\n")},
			interpreted: Output{Stdout: []byte("b\n")},
			streams:     []string{"standard output", "standard error output"},
		},
		{
			name:        "exit codes alone are not compared",
			compiled:    Output{ExitCode: 1},
			interpreted: Output{ExitCode: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Result{Compiled: tt.compiled, Interpreted: tt.interpreted}
			err := r.Compare()
			if len(tt.streams) == 0 {
				assert.NoError(t, err)
				return
			}

			merr, ok := err.(*multierror.Error)
			require.True(t, ok, "error is %T", err)
			var got []string
			for _, e := range merr.Errors {
				m, ok := e.(*Mismatch)
				require.True(t, ok)
				got = append(got, m.Stream)
			}
			assert.Equal(t, tt.streams, got)
		})
	}
}

func TestMismatchDiff(t *testing.T) {
	m := &Mismatch{
		Stream:      "standard output",
		Interpreted: "one\ntwo\nthree\n",
		Compiled:    "one\n2\nthree\n",
	}
	assert.Equal(t, " one\n-two\n+2\n three\n", m.Diff())
	assert.Equal(t, "different standard output", m.Error())
}

func TestMismatchDiffMissingNewline(t *testing.T) {
	m := &Mismatch{Interpreted: "x\n", Compiled: "x"}
	assert.Contains(t, m.Diff(), "No newline at end of output")
}
