package utils

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/meysamhadeli/snackforge/project_model/models"
)

// DefaultArchiveName is the file name used when exporting without --out.
const DefaultArchiveName = "ReactNativeApp.zip"

// WriteArchive writes the project files into a zip archive in path order, skipping ignored paths.
// It returns the paths that were written.
func WriteArchive(w io.Writer, files models.FileMap, ignorePatterns []string) ([]string, error) {
	matcher := CompileIgnorePatterns(ignorePatterns)
	archive := zip.NewWriter(w)

	var written []string
	for _, path := range files.Paths() {
		if matcher.MatchesPath(path) {
			continue
		}

		entry, err := archive.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to archive: %w", path, err)
		}
		if _, err := io.WriteString(entry, files[path]); err != nil {
			return nil, fmt.Errorf("failed to write %s to archive: %w", path, err)
		}
		written = append(written, path)
	}

	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish archive: %w", err)
	}
	return written, nil
}
