package utils

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// DetectLanguage returns the lower-cased language name of a generated file, used for
// highlighting and outlines. Files enry cannot identify are treated as JavaScript.
func DetectLanguage(path string, content string) string {
	language := enry.GetLanguage(filepath.Base(path), []byte(content))
	if language == "" {
		return "javascript"
	}
	return strings.ToLower(language)
}
