package models

// FileOutline holds the structural summary of one generated file
type FileOutline struct {
	RelativePath string   `json:"path" yaml:"path"`
	Language     string   `json:"language" yaml:"language"`
	Elements     []string `json:"elements" yaml:"elements"`
}
