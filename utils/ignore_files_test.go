package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".snackignore")
	require.NoError(t, os.WriteFile(file, []byte("# comment\n\n*.md\n  assets/  \n"), 0644))

	patterns, err := GetIgnorePatterns(file)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.md", "assets/"}, patterns)

	patterns, err = GetIgnorePatterns(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, patterns)

	patterns, err = GetIgnorePatterns("")
	require.NoError(t, err)
	assert.Empty(t, patterns)
}

func TestCompileIgnorePatterns(t *testing.T) {
	matcher := CompileIgnorePatterns([]string{"*.md", "!docs/KEEP.md", "assets/", "screens/Debug.js"})

	tests := map[string]bool{
		"README.md":           true,
		"docs/GUIDE.md":       true,
		"docs/KEEP.md":        false,
		"assets/icon.png":     true,
		"src/assets/logo.png": true,
		"screens/Debug.js":    true,
		"screens/Home.js":     false,
		"App.js":              false,
		"node_modules/x/i.js": true,
		".git/config":         true,
		"components/.gitkeep": false,
		"assetsX/data.json":   false,
	}
	for filePath, expected := range tests {
		assert.Equal(t, expected, matcher.MatchesPath(filePath), filePath)
	}
}

func TestCompileIgnorePatterns_DefaultsOnly(t *testing.T) {
	matcher := CompileIgnorePatterns(nil)
	assert.True(t, matcher.MatchesPath(".expo/settings.json"))
	assert.True(t, matcher.MatchesPath("ios/.DS_Store"))
	assert.False(t, matcher.MatchesPath("App.js"))
}
