package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/meysamhadeli/snackforge/project_model"
	"github.com/meysamhadeli/snackforge/project_model/models"
	"github.com/spf13/cobra"
)

const stdinSource = "-"

// readResponse reads a saved model response from a file, or from stdin for "-".
func readResponse(cmd *cobra.Command, source string) (string, error) {
	if source == stdinSource {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(content), nil
	}

	content, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read response %s: %w", source, err)
	}
	return string(content), nil
}

// loadProject reads a response and runs it through the pipeline, for commands that need a project.
func loadProject(cmd *cobra.Command, deps *RootDependencies, source string) (*models.Result, error) {
	raw, err := readResponse(cmd, source)
	if err != nil {
		return nil, err
	}

	result, err := deps.Pipeline.Run(raw)
	if errors.Is(err, project_model.ErrNotJSON) {
		return nil, fmt.Errorf("%s is a conversational reply, not a project (try 'snackforge parse %s')", source, source)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return result, nil
}
