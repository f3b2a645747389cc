// Package toolchain drives the external programs around a translation: the
// native C++ compiler, the produced binary and the reference interpreter.
package toolchain

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Toolchain runs external commands. Commands are echoed as "[CMD] ..." to
// Echo unless it is nil.
type Toolchain struct {
	CXX      string
	CXXFlags []string
	Python   string
	// Include is passed as -I so the generated source finds the runtime
	// header.
	Include string

	Stdout io.Writer
	Stderr io.Writer
	Echo   io.Writer

	echoMu sync.Mutex
}

// Output is what a finished process wrote and how it exited.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// ExitError is a command that ran and exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

var cmdColor = color.New(color.FgCyan)

func (tc *Toolchain) command(name string, args ...string) *exec.Cmd {
	if tc.Echo != nil {
		words := make([]string, 0, len(args)+1)
		for _, w := range append([]string{name}, args...) {
			words = append(words, shellQuote(w))
		}
		tc.echoMu.Lock()
		cmdColor.Fprintf(tc.Echo, "[CMD] %s\n", strings.Join(words, " "))
		tc.echoMu.Unlock()
	}
	glog.V(3).Infof("exec %s %v", name, args)
	return exec.Command(name, args...)
}

func (tc *Toolchain) stdout() io.Writer {
	if tc.Stdout == nil {
		return os.Stdout
	}
	return tc.Stdout
}

func (tc *Toolchain) stderr() io.Writer {
	if tc.Stderr == nil {
		return os.Stderr
	}
	return tc.Stderr
}

// Build compiles source into binary.
func (tc *Toolchain) Build(source, binary string) error {
	args := append([]string(nil), tc.CXXFlags...)
	args = append(args, source, "-o", binary)
	if tc.Include != "" {
		args = append(args, "-I"+tc.Include)
	}

	start := time.Now()
	cmd := tc.command(tc.CXX, args...)
	cmd.Stdout = tc.stdout()
	cmd.Stderr = tc.stderr()
	if err := run(cmd); err != nil {
		return errors.Wrapf(err, "compiling %s", source)
	}

	if info, err := os.Stat(binary); err == nil {
		glog.V(3).Infof("built %s (%s) in %v", binary, humanize.Bytes(uint64(info.Size())), time.Since(start))
	}
	return nil
}

// Run executes binary with the process's own stdio. A non-zero exit is
// reported as *ExitError.
func (tc *Toolchain) Run(binary string) error {
	cmd := tc.command(executable(binary))
	cmd.Stdin = os.Stdin
	cmd.Stdout = tc.stdout()
	cmd.Stderr = tc.stderr()
	return run(cmd)
}

// Capture executes a command and collects its output. A non-zero exit is
// not an error; it is recorded in Output.ExitCode.
func (tc *Toolchain) Capture(name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := tc.command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	out := Output{}
	err := run(cmd)
	var exit *ExitError
	if errors.As(err, &exit) {
		out.ExitCode = exit.Code
		err = nil
	}
	out.Stdout = stdout.Bytes()
	out.Stderr = stderr.Bytes()
	return out, err
}

func run(cmd *exec.Cmd) error {
	err := cmd.Run()
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return &ExitError{Command: cmd.Path, Code: exit.ExitCode()}
	}
	if err != nil {
		return errors.Wrapf(err, "running %s", cmd.Path)
	}
	return nil
}

// executable makes a bare file name runnable from the working directory.
func executable(path string) string {
	if filepath.IsAbs(path) || strings.ContainsRune(path, filepath.Separator) {
		return path
	}
	return "." + string(filepath.Separator) + path
}

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9@%+=:,./_-]+$`)

// shellQuote quotes w for display in a POSIX shell.
func shellQuote(w string) string {
	if w == "" {
		return "''"
	}
	if shellSafe.MatchString(w) {
		return w
	}
	return "'" + strings.ReplaceAll(w, "'", `'"'"'`) + "'"
}
