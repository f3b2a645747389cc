package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"compy/pkg/compiler"
	"compy/pkg/config"
	"compy/pkg/pyast"
)

func newDumpCmd(gopts *globalOptions) *cobra.Command {
	var typed bool
	cmd := &cobra.Command{
		Use:   "dump SOURCE",
		Short: "Print every stage of translating SOURCE",
		Long: "Print the source, the syntax tree handed over by the interpreter's\n" +
			"parser and the generated C++. Translation errors are reported after the\n" +
			"stages that succeeded.",
		Args: cobra.ExactArgs(1),
		Run: runFunc(gopts, func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			cfg, err := config.Load(gopts.configPath)
			if err != nil {
				return err
			}
			src, err := readSource(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Source:\n%s\n", src)

			// Parse
			parser := &pyast.Parser{Python: cfg.Python}
			mod, err := parser.Parse(path, src)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "AST (%d statements)\n", len(mod.Body))
			if typed {
				fmt.Fprintln(out, pyast.Sdump(mod))
			} else {
				fmt.Fprintln(out, pyast.Dump(mod))
			}
			fmt.Fprintln(out)

			// Translate
			unit, err := compiler.Translate(path, mod)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Generated C++")
			fmt.Fprint(out, unit)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&typed, "typed", false, "Print the decoded Go node tree instead of the parser's layout")
	return cmd
}
