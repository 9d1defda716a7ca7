package project_model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/meysamhadeli/snackforge/project_model/models"
)

// Stage names tag each Warning with the pipeline stage that produced it.
const (
	StageExtract      = "extract"
	StageBuild        = "build"
	StageIndex        = "index"
	StageDependencies = "dependencies"
)

// BuildOptions tunes content handling in Build.
type BuildOptions struct {
	// DecodeEscapedNewlines turns literal `\n` sequences into real newlines, for models that
	// double-escape file contents.
	DecodeEscapedNewlines bool
}

// Build validates the document shape and returns the usable files.
// The optional file_tree field is never consulted; the key set always comes from files.
func Build(doc models.ProjectDocument, opts BuildOptions) (models.FileMap, []models.Warning, error) {
	raw := bytes.TrimSpace(doc.Raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil, &ShapeError{Kind: ShapeNotObject, Detail: jsonKind(raw)}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, &ShapeError{Kind: ShapeNotObject, Detail: err.Error()}
	}

	rawFiles, ok := fields["files"]
	if !ok {
		return nil, nil, &ShapeError{Kind: ShapeMissingFiles}
	}
	rawFiles = bytes.TrimSpace(rawFiles)
	if len(rawFiles) == 0 || rawFiles[0] != '{' {
		return nil, nil, &ShapeError{Kind: ShapeFilesNotObject, Detail: jsonKind(rawFiles)}
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(rawFiles, &entries); err != nil {
		return nil, nil, &ShapeError{Kind: ShapeFilesNotObject, Detail: err.Error()}
	}

	paths := make([]string, 0, len(entries))
	for path := range entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	files := make(models.FileMap, len(entries))
	var warnings []models.Warning

	for _, path := range paths {
		if reason := invalidPathReason(path); reason != "" {
			warnings = append(warnings, models.Warning{Stage: StageBuild, Path: path, Message: reason})
			continue
		}

		value := bytes.TrimSpace(entries[path])
		if len(value) == 0 || value[0] != '"' {
			warnings = append(warnings, models.Warning{
				Stage:   StageBuild,
				Path:    path,
				Message: fmt.Sprintf("content is %s, not a string", jsonKind(value)),
			})
			continue
		}

		var content string
		if err := json.Unmarshal(value, &content); err != nil {
			warnings = append(warnings, models.Warning{Stage: StageBuild, Path: path, Message: err.Error()})
			continue
		}
		if opts.DecodeEscapedNewlines {
			content = strings.ReplaceAll(content, `\n`, "\n")
		}
		files[path] = content
	}

	return files, warnings, nil
}

// dropInvalidPaths removes the keys Build would reject, with a warning for each.
// files is returned as is when every key is usable.
func dropInvalidPaths(files models.FileMap) (models.FileMap, []models.Warning) {
	var warnings []models.Warning
	for _, path := range files.Paths() {
		if reason := invalidPathReason(path); reason != "" {
			warnings = append(warnings, models.Warning{Stage: StageBuild, Path: path, Message: reason})
		}
	}
	if len(warnings) == 0 {
		return files, nil
	}

	usable := make(models.FileMap, len(files)-len(warnings))
	for path, content := range files {
		if invalidPathReason(path) == "" {
			usable[path] = content
		}
	}
	return usable, warnings
}

// invalidPathReason returns why a key cannot be used as a relative path, or "" when it can.
func invalidPathReason(path string) string {
	switch {
	case path == "":
		return "empty path"
	case strings.HasPrefix(path, "/"):
		return "absolute path"
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return "path escapes the project root"
		}
	}
	return ""
}

func jsonKind(raw []byte) string {
	if len(raw) == 0 {
		return "empty"
	}
	switch raw[0] {
	case '{':
		return "an object"
	case '[':
		return "an array"
	case '"':
		return "a string"
	case 'n':
		return "null"
	case 't', 'f':
		return "a boolean"
	default:
		return "a number"
	}
}
