package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [response-files...]",
		Short: "Parse saved model responses into projects",
		Long: `The 'parse' subcommand runs each response through extraction, validation, tree indexing,
dependency normalization and preview composition, then prints the files, folder tree, dependencies
and warnings. With no files, or with '-', the response is read from stdin. Conversational replies
are rendered as markdown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDependencies, err := handleRootCommand(cmd)
			if err != nil {
				return err
			}
			return handleParseCommand(cmd, rootDependencies, args)
		},
	}
}

func handleParseCommand(cmd *cobra.Command, rootDependencies *RootDependencies, sources []string) error {
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	// stdin can only be drained once, so every "-" shares one read
	var stdin string
	if slices.Contains(sources, stdinSource) {
		raw, err := readResponse(cmd, stdinSource)
		if err != nil {
			return err
		}
		stdin = raw
	}

	reports := make([]parseReport, len(sources))

	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(4)

	for i, source := range sources {
		i, source := i, source
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw := stdin
			if source != stdinSource {
				content, err := readResponse(cmd, source)
				if err != nil {
					return err
				}
				raw = content
			}
			result, err := rootDependencies.Pipeline.Run(raw)
			reports[i] = newParseReport(source, raw, result, err)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if err := writeReports(cmd.OutOrStdout(), rootDependencies, reports); err != nil {
		return err
	}

	failed := 0
	for _, report := range reports {
		if report.Kind == reportError {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d responses could not be used as a project", failed, len(reports))
	}
	return nil
}
