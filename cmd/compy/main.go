package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newCompyCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalOptions struct {
	configPath  string
	logToStderr bool
	verbose     int
}

func newCompyCmd() *cobra.Command {
	gopts := &globalOptions{}
	var bopts buildOptions

	cmd := &cobra.Command{
		Use:   "compy SOURCE",
		Short: "Python to C++ compiler",
		Long: "compy translates a Python source file into C++, compiles it with the\n" +
			"native compiler and runs the result. With --test the program is also run\n" +
			"by the Python interpreter and both outputs are compared.",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(gopts.logToStderr, gopts.verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			glog.Flush()
		},
		Run: runFunc(gopts, func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, gopts, bopts, args[0])
		}),
	}

	cmd.PersistentFlags().StringVar(&gopts.configPath, "config", "", "Read tool settings from this TOML file (default ./compy.toml)")
	cmd.PersistentFlags().BoolVar(&gopts.logToStderr, "logtostderr", false, "Log to stderr instead of to files")
	cmd.PersistentFlags().IntVarP(&gopts.verbose, "verbose", "v", 0, "Enable verbose logging (e.g., v=3); anything >3 is very verbose")

	cmd.Flags().BoolVar(&bopts.test, "test", false, "Also run the source with the interpreter and compare outputs")
	cmd.Flags().BoolVar(&bopts.silent, "silent", false, "Do not echo the external commands being run")

	cmd.AddCommand(newEmitCmd(gopts))
	cmd.AddCommand(newDumpCmd(gopts))

	return cmd
}

// initLogging routes glog's settings through its standard flags, which is
// the only way glog can be configured.
func initLogging(logToStderr bool, verbose int) {
	if logToStderr {
		_ = flag.Set("logtostderr", "true")
	}
	if verbose > 0 {
		_ = flag.Set("v", strconv.Itoa(verbose))
	}
}
