package project_model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotJSON means the response was conversational rather than a project.
	ErrNotJSON = errors.New("response is not a JSON document")

	// ErrMissingFiles means the document is JSON but has no usable files mapping.
	ErrMissingFiles = errors.New("document has no files mapping")

	// ErrTreeConflict means one generated path is both a file and a directory.
	ErrTreeConflict = errors.New("path is both a file and a directory")

	// ErrManifestParse means package.json could not be parsed.
	ErrManifestParse = errors.New("package.json is not valid JSON")
)

// ExtractionError reports why no JSON document could be recovered.
type ExtractionError struct {
	FenceErr error // nil when the response had no fenced block
	WholeErr error
}

func (e *ExtractionError) Error() string {
	if e.FenceErr != nil {
		return fmt.Sprintf("%v: fenced block: %v; whole text: %v", ErrNotJSON, e.FenceErr, e.WholeErr)
	}
	return fmt.Sprintf("%v: %v", ErrNotJSON, e.WholeErr)
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrNotJSON
}

type ShapeKind int

const (
	// ShapeNotObject: the document parsed but is an array or scalar.
	ShapeNotObject ShapeKind = iota
	// ShapeMissingFiles: no "files" field.
	ShapeMissingFiles
	// ShapeFilesNotObject: "files" is present but not a mapping.
	ShapeFilesNotObject
)

// ShapeError reports a document that is not project-shaped.
// A document that is not an object is treated like a conversational reply and also matches ErrNotJSON.
type ShapeError struct {
	Kind   ShapeKind
	Detail string
}

func (e *ShapeError) Error() string {
	switch e.Kind {
	case ShapeNotObject:
		return fmt.Sprintf("document is not an object: %s", e.Detail)
	case ShapeFilesNotObject:
		return fmt.Sprintf("%v: files is %s", ErrMissingFiles, e.Detail)
	default:
		return ErrMissingFiles.Error()
	}
}

func (e *ShapeError) Is(target error) bool {
	if e.Kind == ShapeNotObject {
		return target == ErrNotJSON
	}
	return target == ErrMissingFiles
}

// TreeConflictError names a path whose segment was already claimed with the other node kind.
type TreeConflictError struct {
	Path    string
	Segment string
	// Existing is "file" or "directory", describing what Segment already was.
	Existing string
}

func (e *TreeConflictError) Error() string {
	return fmt.Sprintf("%v: %q needs segment %q but it is already a %s", ErrTreeConflict, e.Path, e.Segment, e.Existing)
}

func (e *TreeConflictError) Is(target error) bool {
	return target == ErrTreeConflict
}

// ManifestParseError wraps the JSON error from decoding package.json.
type ManifestParseError struct {
	Path string
	Err  error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, ErrManifestParse, e.Err)
}

func (e *ManifestParseError) Is(target error) bool {
	return target == ErrManifestParse
}

func (e *ManifestParseError) Unwrap() error {
	return e.Err
}
