package project_model

import (
	"path"
	"strings"

	"github.com/meysamhadeli/snackforge/project_model/models"
)

// DefaultAssetExtensions are the image types the preview sandbox treats as binary assets.
var DefaultAssetExtensions = []string{"png", "jpg", "jpeg", "gif", "svg"}

const assetsDir = "assets/"

type ComposeOptions struct {
	// ExtraAssetExtensions extends DefaultAssetExtensions. Entries are matched case-insensitively, without the dot.
	ExtraAssetExtensions []string
}

// Compose tags every file as code or asset and pairs the result with the dependencies.
// No files are added or removed.
func Compose(files models.FileMap, deps models.Dependencies, opts ComposeOptions) models.PreviewManifest {
	extensions := assetExtensionSet(opts.ExtraAssetExtensions)

	entries := make(map[string]models.PreviewFileEntry, len(files))
	for filePath, content := range files {
		entries[filePath] = models.PreviewFileEntry{
			Kind:     classify(filePath, extensions),
			Contents: content,
		}
	}

	if deps == nil {
		deps = models.Dependencies{}
	}
	return models.PreviewManifest{Files: entries, Dependencies: deps}
}

// IsAsset reports whether the default rule classifies filePath as an asset.
func IsAsset(filePath string) bool {
	return classify(filePath, assetExtensionSet(nil)) == models.AssetEntry
}

func classify(filePath string, extensions map[string]struct{}) models.EntryKind {
	if strings.HasPrefix(filePath, assetsDir) {
		return models.AssetEntry
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filePath), "."))
	if _, ok := extensions[ext]; ok && ext != "" {
		return models.AssetEntry
	}
	return models.CodeEntry
}

func assetExtensionSet(extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(DefaultAssetExtensions)+len(extra))
	for _, ext := range DefaultAssetExtensions {
		set[ext] = struct{}{}
	}
	for _, ext := range extra {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set[ext] = struct{}{}
		}
	}
	return set
}
