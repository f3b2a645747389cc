package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"compy/pkg/compiler"
	"compy/pkg/config"
	"compy/pkg/pyast"
	"compy/pkg/support"
	"compy/pkg/toolchain"
	"compy/pkg/utils"
)

type buildOptions struct {
	test   bool
	silent bool
}

var (
	failColor    = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
)

// readSource reads the input file, reporting a missing file the way users
// expect from a compiler.
func readSource(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Errorf("Source file '%s' has not been found", path)
	}
	return src, err
}

// translateFile reads, parses and translates path.
func translateFile(gopts *globalOptions, path string) (*compiler.Unit, config.Config, error) {
	cfg, err := config.Load(gopts.configPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	src, err := readSource(path)
	if err != nil {
		return nil, config.Config{}, err
	}
	unit, err := compiler.Compile(&pyast.Parser{Python: cfg.Python}, path, src)
	if err != nil {
		return nil, config.Config{}, err
	}
	return unit, cfg, nil
}

// writeUnit renders unit to path. The file only appears once it is complete.
func writeUnit(unit *compiler.Unit, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := unit.Render(tmp); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	if info, err := os.Stat(path); err == nil {
		glog.V(1).Infof("wrote %s (%s)", path, humanize.Bytes(uint64(info.Size())))
	}
	return nil
}

func runBuild(cmd *cobra.Command, gopts *globalOptions, opts buildOptions, path string) error {
	unit, cfg, err := translateFile(gopts, path)
	if err != nil {
		return err
	}

	out, err := utils.ArtifactsFor(path, cfg.IncludeDir)
	if err != nil {
		return err
	}
	if err := writeUnit(unit, out.Source); err != nil {
		return err
	}
	if _, err := support.Install(out.Include); err != nil {
		return err
	}

	flags, err := cfg.Flags()
	if err != nil {
		return err
	}
	tc := &toolchain.Toolchain{
		CXX:      cfg.CXX,
		CXXFlags: flags,
		Python:   cfg.Python,
		Include:  out.Include,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	}
	if !opts.silent && !opts.test {
		tc.Echo = cmd.OutOrStdout()
	}

	if err := tc.Build(out.Source, out.Binary); err != nil {
		return err
	}

	if !opts.test {
		err := tc.Run(out.Binary)
		var exit *toolchain.ExitError
		if errors.As(err, &exit) {
			return exitStatus(exit.Code)
		}
		return err
	}

	res, err := tc.DiffTest(out.Binary, path)
	if err != nil {
		return err
	}
	return reportDiff(cmd.OutOrStdout(), res)
}

// reportDiff prints one FAILED section per differing stream, or SUCCESS.
func reportDiff(w io.Writer, res *toolchain.Result) error {
	err := res.Compare()
	if err == nil {
		successColor.Fprintln(w, "=== SUCCESS ===================================")
		return nil
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			m, ok := e.(*toolchain.Mismatch)
			if !ok {
				continue
			}
			failColor.Fprintf(w, "=== FAILED: Different %s\n", m.Stream)
			fmt.Fprintln(w, "=== COMPILER ==============================")
			fmt.Fprintln(w, m.Compiled)
			fmt.Fprintln(w, "=== INTERPRETER ===========================")
			fmt.Fprintln(w, m.Interpreted)
			fmt.Fprintln(w, "=== DIFF ==================================")
			fmt.Fprintln(w, m.Diff())
		}
	}
	return exitStatus(1)
}
