package cmd

import (
	"fmt"

	"github.com/meysamhadeli/snackforge/constants/lipgloss"
	"github.com/meysamhadeli/snackforge/project_model/models"
	"github.com/meysamhadeli/snackforge/utils"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <response-file> [path]",
		Short: "Print one generated file with syntax highlighting",
		Long: `The 'show' subcommand prints a single file of the generated project. Without a path it opens the
primary file: App.js, App.tsx, App.ts or App.jsx when present, otherwise the first path.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDependencies, err := handleRootCommand(cmd)
			if err != nil {
				return err
			}

			result, err := loadProject(cmd, rootDependencies, args[0])
			if err != nil {
				return err
			}

			path := models.PrimaryFile(result.Files)
			if len(args) == 2 {
				path = args[1]
			}
			if path == "" {
				return fmt.Errorf("%s has no usable files", args[0])
			}

			content, ok := result.Files[path]
			if !ok {
				return fmt.Errorf("%s has no file %q (files: %v)", args[0], path, result.Files.Paths())
			}

			language := utils.DetectLanguage(path, content)
			fmt.Fprintln(cmd.OutOrStdout(), lipgloss.Info.Render(fmt.Sprintf("%s (%s)", path, language)))
			return utils.HighlightFile(cmd.OutOrStdout(), content, language, rootDependencies.Config.Theme)
		},
	}
}
