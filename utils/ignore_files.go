package utils

import (
	"fmt"
	"os"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Paths never written into an exported project.
var defaultIgnorePatterns = []string{".git", ".expo", "node_modules", ".DS_Store"}

// GetIgnorePatterns reads gitignore-style patterns from file. A missing file yields no patterns.
func GetIgnorePatterns(file string) ([]string, error) {
	if file == "" {
		return []string{}, nil
	}

	content, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, nil
}

// CompileIgnorePatterns builds a matcher for the default exclusions followed by patterns,
// so a "!" pattern can re-include a default.
func CompileIgnorePatterns(patterns []string) *gitignore.GitIgnore {
	lines := make([]string, 0, len(defaultIgnorePatterns)+len(patterns))
	lines = append(lines, defaultIgnorePatterns...)
	lines = append(lines, patterns...)
	return gitignore.CompileIgnoreLines(lines...)
}
