package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/meysamhadeli/snackforge/code_analyzer"
	analyzer_contracts "github.com/meysamhadeli/snackforge/code_analyzer/contracts"
	"github.com/meysamhadeli/snackforge/config"
	"github.com/meysamhadeli/snackforge/constants/lipgloss"
	"github.com/meysamhadeli/snackforge/project_model"
	"github.com/meysamhadeli/snackforge/project_model/contracts"
	"github.com/meysamhadeli/snackforge/project_model/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RootDependencies holds everything a subcommand needs, built once per invocation.
type RootDependencies struct {
	Cwd      string
	Config   *config.Config
	Logger   *zap.Logger
	Memo     *project_model.MemoCache
	Pipeline contracts.IProjectPipeline
	Analyzer analyzer_contracts.ICodeAnalyzer
}

// NewRootCmd builds the snackforge command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "snackforge",
		Short: "Turn saved model responses into previewable React Native projects",
		Long: `snackforge reads the raw text a language model returned for an app request and turns it into a
project: a file map, a folder tree, a normalized dependency manifest and an Expo Snack preview bundle.
Conversational replies are rendered as chat instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if version, _ := cmd.Flags().GetBool("version"); version {
				fmt.Fprintln(cmd.OutOrStdout(), lipgloss.BlueSky.Render(fmt.Sprintf("version: %s", config.DefaultConfig.Version)))
				return nil
			}
			return cmd.Help()
		},
	}

	config.InitFlags(rootCmd)

	rootCmd.AddCommand(
		newParseCmd(),
		newPreviewCmd(),
		newShowCmd(),
		newOutlineCmd(),
		newExportCmd(),
		newWatchCmd(),
	)
	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), lipgloss.Red.Render(fmt.Sprintf("🚫 %v", err)))
		os.Exit(1)
	}
}

func handleRootCommand(cmd *cobra.Command) (*RootDependencies, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	cfg, err := config.LoadConfigs(cmd.Root(), cwd)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	var memo *project_model.MemoCache
	if cfg.EnableCache {
		memo = project_model.NewMemoCache(project_model.DefaultMemoEntries)
	}

	pipeline := project_model.NewPipeline(&project_model.PipelineOptions{
		Extract: project_model.ExtractOptions{ScanEmbeddedObject: cfg.LenientExtraction},
		Build:   project_model.BuildOptions{DecodeEscapedNewlines: cfg.DecodeEscapedNewlines},
		Compose: project_model.ComposeOptions{ExtraAssetExtensions: cfg.AssetExtensions},
		Memo:    memo,
		Logger:  logger,
	})

	return &RootDependencies{
		Cwd:      cwd,
		Config:   cfg,
		Logger:   logger,
		Memo:     memo,
		Pipeline: pipeline,
		Analyzer: code_analyzer.NewCodeAnalyzer(),
	}, nil
}

// newLogger builds a console logger for diagnostics on w.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// snackMeta returns the preview metadata from configuration.
func (deps *RootDependencies) snackMeta() models.SnackMeta {
	return models.SnackMeta{
		Name:        deps.Config.Preview.Name,
		Description: deps.Config.Preview.Description,
		SDKVersion:  deps.Config.Preview.SDKVersion,
	}
}
