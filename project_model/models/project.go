package models

import (
	"encoding/json"
	"fmt"
)

// ProjectDocument is a syntactically valid JSON document recovered from a model response.
// Its shape is not checked until it is built into a FileMap.
type ProjectDocument struct {
	Raw json.RawMessage
}

// Warning records non-fatal data loss in one pipeline stage.
type Warning struct {
	Stage   string `json:"stage" yaml:"stage"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Message string `json:"message" yaml:"message"`
}

func (w Warning) String() string {
	if w.Path == "" {
		return fmt.Sprintf("[%s] %s", w.Stage, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Stage, w.Path, w.Message)
}

// Result is everything the pipeline derives from one model response.
type Result struct {
	GenerationID string          `json:"generation_id" yaml:"generation_id"`
	Files        FileMap         `json:"files" yaml:"files"`
	Tree         *Directory      `json:"tree" yaml:"tree"`
	Dependencies Dependencies    `json:"dependencies" yaml:"dependencies"`
	Preview      PreviewManifest `json:"preview" yaml:"preview"`
	Warnings     []Warning       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
