package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"compy/pkg/compiler"
)

// exitStatus makes compy exit with the status of the program it ran.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

var errorColor = color.New(color.FgRed, color.Bold)

// runFunc wraps a command body with compy's error reporting. os.Exit is only
// ever called here, after logs are flushed.
func runFunc(gopts *globalOptions, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := run(cmd, args); err != nil {
			code := reportError(cmd.ErrOrStderr(), err, gopts.logToStderr)
			glog.Flush()
			os.Exit(code)
		}
	}
}

// reportError prints err for the user and returns the exit status.
func reportError(w io.Writer, err error, detailed bool) int {
	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}

	var unsupported *compiler.UnsupportedError
	if errors.As(err, &unsupported) {
		errorColor.Fprint(w, "compy: error: ")
		fmt.Fprintln(w, unsupported.Detail())
		return 1
	}

	errorColor.Fprint(w, "compy: error: ")
	if detailed {
		fmt.Fprintf(w, "%+v\n", err)
	} else {
		fmt.Fprintln(w, err)
	}
	return 1
}
