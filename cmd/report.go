package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/meysamhadeli/snackforge/constants/lipgloss"
	"github.com/meysamhadeli/snackforge/project_model"
	"github.com/meysamhadeli/snackforge/project_model/models"
	"github.com/meysamhadeli/snackforge/utils"
	"gopkg.in/yaml.v3"
)

const (
	reportProject = "project"
	reportChat    = "chat"
	reportError   = "error"
)

// parseReport is the outcome of running one response through the pipeline.
type parseReport struct {
	Source      string         `json:"source" yaml:"source"`
	Kind        string         `json:"kind" yaml:"kind"`
	PrimaryFile string         `json:"primary_file,omitempty" yaml:"primary_file,omitempty"`
	Result      *models.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Chat        string         `json:"chat,omitempty" yaml:"chat,omitempty"`
	Error       string         `json:"error,omitempty" yaml:"error,omitempty"`
}

func newParseReport(source string, raw string, result *models.Result, err error) parseReport {
	switch {
	case err == nil:
		return parseReport{Source: source, Kind: reportProject, PrimaryFile: models.PrimaryFile(result.Files), Result: result}
	case isChat(err):
		return parseReport{Source: source, Kind: reportChat, Chat: raw}
	default:
		return parseReport{Source: source, Kind: reportError, Error: err.Error()}
	}
}

func isChat(err error) bool {
	return errors.Is(err, project_model.ErrNotJSON)
}

// writeStructured encodes v as json or yaml.
func writeStructured(w io.Writer, format string, v interface{}) error {
	switch format {
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}

func writeReports(w io.Writer, deps *RootDependencies, reports []parseReport) error {
	if deps.Config.OutputFormat != "text" {
		return writeStructured(w, deps.Config.OutputFormat, reports)
	}

	for _, report := range reports {
		if err := writeTextReport(w, deps, report); err != nil {
			return err
		}
	}
	return nil
}

func writeTextReport(w io.Writer, deps *RootDependencies, report parseReport) error {
	switch report.Kind {
	case reportChat:
		fmt.Fprintln(w, lipgloss.Info.Render(fmt.Sprintf("💬 %s is a conversational reply", report.Source)))
		rendered, err := utils.RenderChat(report.Chat, deps.Config.Theme, 80)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, rendered)
		return nil

	case reportError:
		fmt.Fprintln(w, lipgloss.Red.Render(fmt.Sprintf("🚫 %s", report.Error)))
		return nil
	}

	result := report.Result
	fmt.Fprintln(w, lipgloss.BoxStyle.Render(fmt.Sprintf("%s\ngeneration %s", report.Source, result.GenerationID)))

	var rows [][]string
	for _, path := range result.Files.Paths() {
		content := result.Files[path]
		rows = append(rows, []string{
			path,
			result.Preview.Files[path].Kind.String(),
			utils.DetectLanguage(path, content),
			fmt.Sprintf("%d", strings.Count(content, "\n")+1),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, lipgloss.Yellow.Render("No usable files in this response."))
	} else {
		table, err := utils.RenderTable([]string{"Path", "Type", "Language", "Lines"}, rows)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, table)

		tree, err := utils.RenderTree(result.Tree, ".")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, tree)
		fmt.Fprintln(w, lipgloss.Green.Render(fmt.Sprintf("Primary file: %s", report.PrimaryFile)))
	}

	if len(result.Dependencies) == 0 {
		fmt.Fprintln(w, lipgloss.Gray.Render("No dependencies declared."))
	} else {
		names := make([]string, 0, len(result.Dependencies))
		for name := range result.Dependencies {
			names = append(names, name)
		}
		sort.Strings(names)

		depRows := make([][]string, 0, len(names))
		for _, name := range names {
			depRows = append(depRows, []string{name, result.Dependencies[name]})
		}
		table, err := utils.RenderTable([]string{"Package", "Version"}, depRows)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, table)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintln(w, lipgloss.Yellow.Render(fmt.Sprintf("⚠ %s", warning)))
	}
	return nil
}
