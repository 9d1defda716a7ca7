package project_model

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/meysamhadeli/snackforge/project_model/models"
)

// Matches the first fenced block, with or without a json tag.
var fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

var errEmptyInput = errors.New("empty input")

// ExtractOptions tunes how hard Extract looks for a document.
type ExtractOptions struct {
	// ScanEmbeddedObject enables a last-resort scan for the first balanced {...} span
	// when prose surrounds unfenced JSON.
	ScanEmbeddedObject bool
}

// Extract recovers a single JSON document from raw model output.
// Only the first fenced block is attempted. When it is missing or does not parse, the
// whole text is tried instead. Only syntax is checked here; shape validation happens in Build.
func Extract(raw string, opts ExtractOptions) (models.ProjectDocument, error) {
	var fenceErr error

	if match := fencedBlockPattern.FindStringSubmatch(raw); match != nil {
		doc, err := parseDocument(match[1])
		if err == nil {
			return doc, nil
		}
		fenceErr = err
	}

	doc, wholeErr := parseDocument(raw)
	if wholeErr == nil {
		return doc, nil
	}

	if opts.ScanEmbeddedObject {
		if span, ok := firstBalancedObject(raw); ok {
			if doc, err := parseDocument(span); err == nil {
				return doc, nil
			}
		}
	}

	return models.ProjectDocument{}, &ExtractionError{FenceErr: fenceErr, WholeErr: wholeErr}
}

func parseDocument(text string) (models.ProjectDocument, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.ProjectDocument{}, errEmptyInput
	}
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return models.ProjectDocument{}, err
	}
	return models.ProjectDocument{Raw: raw}, nil
}

// firstBalancedObject returns the first {...} span with balanced braces, skipping braces
// that appear inside JSON string literals.
func firstBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
