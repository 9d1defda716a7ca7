package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileMap_Paths(t *testing.T) {
	files := FileMap{"b.js": "", "a/z.js": "", "A.js": "", "a.js": ""}
	assert.Equal(t, []string{"A.js", "a.js", "a/z.js", "b.js"}, files.Paths())
	assert.Empty(t, FileMap{}.Paths())
}

func TestFileMap_WithCopies(t *testing.T) {
	original := FileMap{"App.js": "v1"}

	edited := original.With("App.js", "v2").With("Home.js", "home")

	assert.Equal(t, FileMap{"App.js": "v1"}, original)
	assert.Equal(t, FileMap{"App.js": "v2", "Home.js": "home"}, edited)
}

func TestFileMap_Hash(t *testing.T) {
	a := FileMap{"App.js": "x", "screens/Home.js": "y"}
	b := FileMap{"screens/Home.js": "y", "App.js": "x"}
	assert.Equal(t, a.Hash(), b.Hash())

	assert.NotEqual(t, a.Hash(), a.With("App.js", "z").Hash())

	// Boundaries between paths and contents are part of the digest.
	assert.NotEqual(t, FileMap{"ab": "c"}.Hash(), FileMap{"a": "bc"}.Hash())
	assert.NotEqual(t, FileMap{"a": "", "b": ""}.Hash(), FileMap{"a": "b"}.Hash())
	assert.NotEqual(t, FileMap{}.Hash(), FileMap{"": ""}.Hash())
}

func TestPrimaryFile(t *testing.T) {
	tests := []struct {
		name     string
		files    FileMap
		expected string
	}{
		{name: "empty", files: FileMap{}, expected: ""},
		{name: "App.js wins", files: FileMap{"App.tsx": "", "App.js": "", "index.js": ""}, expected: "App.js"},
		{name: "typescript entry", files: FileMap{"App.tsx": "", "components/A.tsx": ""}, expected: "App.tsx"},
		{name: "nested App is not the entry", files: FileMap{"src/App.js": "", "babel.config.js": ""}, expected: "babel.config.js"},
		{name: "first sorted path", files: FileMap{"z.js": "", "m.js": ""}, expected: "m.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PrimaryFile(tt.files))
		})
	}
}
