package models

import "fmt"

// Dependencies maps a package name to a plain version specifier such as "^1.2.3".
type Dependencies map[string]string

// EntryKind tags a preview file entry as source code or a binary asset.
type EntryKind int

const (
	CodeEntry EntryKind = iota
	AssetEntry
)

func (k EntryKind) String() string {
	switch k {
	case CodeEntry:
		return "CODE"
	case AssetEntry:
		return "ASSET"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

func (k EntryKind) MarshalText() ([]byte, error) {
	switch k {
	case CodeEntry, AssetEntry:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown entry kind %d", int(k))
	}
}

func (k *EntryKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "CODE":
		*k = CodeEntry
	case "ASSET":
		*k = AssetEntry
	default:
		return fmt.Errorf("unknown entry kind %q", string(text))
	}
	return nil
}

// PreviewFileEntry is a single file handed to the preview sandbox.
type PreviewFileEntry struct {
	Kind     EntryKind `json:"type" yaml:"type"`
	Contents string    `json:"contents" yaml:"contents"`
}

// MarshalYAML writes the kind as its tag name; yaml.v3 does not consult MarshalText.
func (e PreviewFileEntry) MarshalYAML() (interface{}, error) {
	return struct {
		Type     string `yaml:"type"`
		Contents string `yaml:"contents"`
	}{e.Kind.String(), e.Contents}, nil
}

// PreviewManifest is the project bundle for the preview collaborator.
type PreviewManifest struct {
	Files        map[string]PreviewFileEntry `json:"files" yaml:"files"`
	Dependencies Dependencies                `json:"dependencies" yaml:"dependencies"`
}

// SnackMeta describes the Snack session the manifest is published under.
type SnackMeta struct {
	Name        string
	Description string
	SDKVersion  string
}

type SnackDependency struct {
	Version string `json:"version"`
}

// SnackBundle is the request body shape the Expo Snack SDK accepts.
type SnackBundle struct {
	Name         string                      `json:"name"`
	Description  string                      `json:"description"`
	SDKVersion   string                      `json:"sdkVersion"`
	Files        map[string]PreviewFileEntry `json:"files"`
	Dependencies map[string]SnackDependency  `json:"dependencies"`
}

// Snack converts the manifest into a Snack bundle, wrapping each version as {version}.
func (m PreviewManifest) Snack(meta SnackMeta) SnackBundle {
	deps := make(map[string]SnackDependency, len(m.Dependencies))
	for name, version := range m.Dependencies {
		deps[name] = SnackDependency{Version: version}
	}
	return SnackBundle{
		Name:         meta.Name,
		Description:  meta.Description,
		SDKVersion:   meta.SDKVersion,
		Files:        m.Files,
		Dependencies: deps,
	}
}
