package cmd

import (
	"fmt"

	"github.com/meysamhadeli/snackforge/constants/lipgloss"
	"github.com/spf13/cobra"
)

func newOutlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outline <response-file>",
		Short: "List imports, functions, classes and components of each generated file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDependencies, err := handleRootCommand(cmd)
			if err != nil {
				return err
			}

			result, err := loadProject(cmd, rootDependencies, args[0])
			if err != nil {
				return err
			}

			outlines, err := rootDependencies.Analyzer.OutlineFiles(cmd.Context(), result.Files)
			if err != nil {
				return err
			}

			if rootDependencies.Config.OutputFormat != "text" {
				return writeStructured(cmd.OutOrStdout(), rootDependencies.Config.OutputFormat, outlines)
			}

			w := cmd.OutOrStdout()
			for _, outline := range outlines {
				fmt.Fprintln(w, lipgloss.Info.Render(fmt.Sprintf("%s (%s)", outline.RelativePath, outline.Language)))
				for _, element := range outline.Elements {
					fmt.Fprintf(w, "  %s\n", element)
				}
			}
			return nil
		},
	}
}
