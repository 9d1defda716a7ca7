package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/meysamhadeli/snackforge/constants/lipgloss"
	"github.com/meysamhadeli/snackforge/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <response-file>",
		Short: "Re-parse a response file every time it changes",
		Long: `The 'watch' subcommand parses the response once, then again each time the file is saved,
until interrupted. Identical file maps reuse the previously derived tree, dependencies and preview
when caching is enabled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDependencies, err := handleRootCommand(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return handleWatchCommand(ctx, cmd, rootDependencies, args[0], debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", utils.DefaultWatchDebounce, "Wait this long after the last change before re-parsing")
	return cmd
}

func handleWatchCommand(ctx context.Context, cmd *cobra.Command, rootDependencies *RootDependencies, source string, debounce time.Duration) error {
	run := func() {
		raw, err := readResponse(cmd, source)
		if err != nil {
			rootDependencies.Logger.Warn("failed to read response", zap.String("source", source), zap.Error(err))
			return
		}

		result, err := rootDependencies.Pipeline.Run(raw)
		if err := writeReports(cmd.OutOrStdout(), rootDependencies, []parseReport{newParseReport(source, raw, result, err)}); err != nil {
			rootDependencies.Logger.Warn("failed to write report", zap.Error(err))
		}

		if rootDependencies.Memo != nil && rootDependencies.Config.OutputFormat == "text" {
			stats := rootDependencies.Memo.PerformanceStats()
			fmt.Fprintln(cmd.OutOrStdout(), lipgloss.Gray.Render(
				fmt.Sprintf("cache: %d/%d hits (%.1f%%), %d entries", stats.CacheHits, stats.TotalRequests, stats.HitRatePercent, stats.Entries)))
		}
	}

	run()
	fmt.Fprintln(cmd.OutOrStdout(), lipgloss.Info.Render(fmt.Sprintf("👀 Watching %s (Ctrl+C to stop)", source)))

	if err := utils.WatchFile(ctx, source, debounce, run); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), lipgloss.Yellow.Render("🔄 Exiting..."))
	return nil
}
