package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compy/pkg/compiler"
	"compy/pkg/toolchain"
)

const factorialSource = `def factorial(n) -> int:
    return 1 if n < 2 else n * factorial(n - 1)


print(factorial(5))
`

func TestCompyCmd_Wiring(t *testing.T) {
	cmd := newCompyCmd()

	for _, name := range []string{"config", "logtostderr", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "persistent flag %s", name)
	}
	for _, name := range []string{"test", "silent"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "v", cmd.PersistentFlags().Lookup("verbose").Shorthand)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"emit", "dump"})
}

func TestReadSource_Missing(t *testing.T) {
	_, err := readSource(filepath.Join(t.TempDir(), "nope.py"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has not been found")
	assert.Contains(t, err.Error(), "nope.py")
}

func TestWriteUnit(t *testing.T) {
	em := compiler.NewEmitter()
	em.OpenScope(compiler.EntryPoint).Close()

	path := filepath.Join(t.TempDir(), "out.cc")
	require.NoError(t, writeUnit(em.Finish(), path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#include <std.hh>\n\nvoid compy_main()\n{\n}\n", string(got))

	// No temporary files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestReportDiff(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	res := &toolchain.Result{
		Compiled:    toolchain.Output{Stdout: []byte("120\n")},
		Interpreted: toolchain.Output{Stdout: []byte("120\n")},
	}
	require.NoError(t, reportDiff(&buf, res))
	assert.Contains(t, buf.String(), "=== SUCCESS")

	buf.Reset()
	res.Compiled.Stdout = []byte("121\n")
	err := reportDiff(&buf, res)
	assert.Equal(t, exitStatus(1), err)
	out := buf.String()
	assert.Contains(t, out, "=== FAILED: Different standard output\n")
	assert.Contains(t, out, "=== COMPILER ==============================\n121\n")
	assert.Contains(t, out, "=== INTERPRETER ===========================\n120\n")
	assert.Contains(t, out, "=== DIFF ==================================\n")
	assert.NotContains(t, out, "standard error output")
}

func requirePython(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not found in PATH")
	}
}

func writeSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fact.py")
	require.NoError(t, os.WriteFile(path, []byte(factorialSource), 0o644))
	return path
}

func TestEmitCmd_Stdout(t *testing.T) {
	requirePython(t)
	path := writeSource(t)

	cmd := newCompyCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"emit", "--config", writeConfig(t), "-o", "-", path})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "int factorial(auto n)\n{\n  return ((n) < (2)) ? (1) : ((n) * (factorial((n) - (1))));\n}\n")
	assert.Contains(t, out.String(), "void compy_main()\n{\n  print(factorial(5));\n}\n")
}

func TestEmitCmd_DefaultOutput(t *testing.T) {
	requirePython(t)
	path := writeSource(t)

	cmd := newCompyCmd()
	cmd.SetArgs([]string{"emit", "--config", writeConfig(t), path})
	require.NoError(t, cmd.Execute())

	got, err := os.ReadFile(path + ".cc")
	require.NoError(t, err)
	assert.Contains(t, string(got), "#include <std.hh>\n")
}

func TestDumpCmd(t *testing.T) {
	requirePython(t)
	path := writeSource(t)

	cmd := newCompyCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"dump", "--config", writeConfig(t), path})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Source:\n"+factorialSource)
	assert.Contains(t, out.String(), "AST (2 statements)\nModule(\n")
	assert.Contains(t, out.String(), "Generated C++\n#include <std.hh>\n")
}

// writeConfig isolates a test from any compy.toml in the working directory.
func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "compy.toml")
	require.NoError(t, os.WriteFile(path, []byte("python = \"python3\"\n"), 0o644))
	return path
}

func TestTranslateFile_UnsupportedWritesNothing(t *testing.T) {
	requirePython(t)

	path := filepath.Join(t.TempDir(), "defaults.py")
	require.NoError(t, os.WriteFile(path, []byte("def f(n=1):\n    return n\n\n\nprint(f())\n"), 0o644))

	gopts := &globalOptions{configPath: writeConfig(t)}
	_, _, err := translateFile(gopts, path)

	var uerr *compiler.UnsupportedError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "FunctionDef", uerr.Kind)
	assert.Equal(t, path, uerr.File)

	_, err = os.Stat(path + ".cc")
	assert.True(t, os.IsNotExist(err), "no translation may be written for a failed compile")
}
