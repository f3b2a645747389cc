package main

import (
	"github.com/spf13/cobra"

	"compy/pkg/utils"
)

func newEmitCmd(gopts *globalOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "emit SOURCE",
		Short: "Translate SOURCE to C++ without compiling it",
		Long: "Translate SOURCE to C++ and write it to SOURCE.cc, or to the file named\n" +
			"by --output. Use --output=- to print the translation instead.",
		Args: cobra.ExactArgs(1),
		Run: runFunc(gopts, func(cmd *cobra.Command, args []string) error {
			unit, _, err := translateFile(gopts, args[0])
			if err != nil {
				return err
			}

			switch output {
			case "-":
				return unit.Render(cmd.OutOrStdout())
			case "":
				out, err := utils.ArtifactsFor(args[0], "")
				if err != nil {
					return err
				}
				output = out.Source
			}
			return writeUnit(unit, output)
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the translation here (- for stdout)")
	return cmd
}
