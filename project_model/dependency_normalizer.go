package project_model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/meysamhadeli/snackforge/project_model/models"
	"github.com/spf13/cast"
)

// ManifestPath is the file the dependency manifest is read from.
const ManifestPath = "package.json"

// NormalizeDependencies reads package.json from the file map and returns its dependencies
// with every version flattened to a plain string. A missing manifest or dependencies field
// yields an empty result. Only a package.json that is not valid JSON is an error.
func NormalizeDependencies(files models.FileMap) (models.Dependencies, []models.Warning, error) {
	deps := models.Dependencies{}

	content, ok := files[ManifestPath]
	if !ok {
		return deps, nil, nil
	}

	manifest, err := decodeManifest(content)
	if err != nil {
		return deps, nil, &ManifestParseError{Path: ManifestPath, Err: err}
	}

	object, ok := manifest.(map[string]interface{})
	if !ok {
		return deps, []models.Warning{{
			Stage:   StageDependencies,
			Path:    ManifestPath,
			Message: "manifest is not an object",
		}}, nil
	}

	rawDeps, ok := object["dependencies"]
	if !ok || rawDeps == nil {
		return deps, nil, nil
	}

	entries, ok := rawDeps.(map[string]interface{})
	if !ok {
		return deps, []models.Warning{{
			Stage:   StageDependencies,
			Path:    ManifestPath,
			Message: fmt.Sprintf("dependencies is %s, not an object", describeValue(rawDeps)),
		}}, nil
	}

	var warnings []models.Warning
	for name, raw := range entries {
		version, coerced := renderVersion(classifyVersion(raw))
		if coerced {
			warnings = append(warnings, models.Warning{
				Stage:   StageDependencies,
				Path:    ManifestPath,
				Message: fmt.Sprintf("version of %s coerced to %q", name, version),
			})
		}
		deps[name] = version
	}
	sort.Slice(warnings, func(i, j int) bool { return warnings[i].Message < warnings[j].Message })

	return deps, warnings, nil
}

// decodeManifest parses exactly one JSON value, keeping numbers in their literal form.
func decodeManifest(content string) (interface{}, error) {
	decoder := json.NewDecoder(strings.NewReader(content))
	decoder.UseNumber()

	var manifest interface{}
	if err := decoder.Decode(&manifest); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, err
	}
	return manifest, nil
}

// versionValue is the decoded shape of one dependency version.
type versionValue interface {
	isVersionValue()
}

// plainVersion is a well-formed version string.
type plainVersion string

// indexedVersion is a string that was encoded upstream as {"0": "^", "1": "1", ...}.
// Parts are kept in ascending index order.
type indexedVersion []interface{}

// opaqueVersion is any other JSON value.
type opaqueVersion struct {
	value interface{}
}

func (plainVersion) isVersionValue()   {}
func (indexedVersion) isVersionValue() {}
func (opaqueVersion) isVersionValue()  {}

func classifyVersion(raw interface{}) versionValue {
	switch v := raw.(type) {
	case string:
		return plainVersion(v)
	case map[string]interface{}:
		if parts, ok := indexedParts(v); ok {
			return parts
		}
	}
	return opaqueVersion{value: raw}
}

func indexedParts(object map[string]interface{}) (indexedVersion, bool) {
	if len(object) == 0 {
		return nil, false
	}

	type part struct {
		index uint64
		key   string
	}
	parts := make([]part, 0, len(object))
	for key := range object {
		index, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, false
		}
		parts = append(parts, part{index: index, key: key})
	}
	sort.Slice(parts, func(i, j int) bool {
		if parts[i].index != parts[j].index {
			return parts[i].index < parts[j].index
		}
		return parts[i].key < parts[j].key
	})

	ordered := make(indexedVersion, len(parts))
	for i, p := range parts {
		ordered[i] = object[p.key]
	}
	return ordered, true
}

// renderVersion flattens a version to a string. coerced reports whether the value had to
// be converted from something other than a plain string.
func renderVersion(value versionValue) (version string, coerced bool) {
	switch v := value.(type) {
	case plainVersion:
		return string(v), false
	case indexedVersion:
		var builder strings.Builder
		for _, part := range v {
			builder.WriteString(genericString(part))
		}
		return strings.TrimSpace(builder.String()), false
	case opaqueVersion:
		return genericString(v.value), true
	}
	return "", true
}

// genericString converts any decoded JSON value to text. Scalars go through cast; objects
// and arrays fall back to their compact JSON form. null becomes "".
func genericString(value interface{}) string {
	if s, err := cast.ToStringE(value); err == nil {
		return s
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(encoded)
}

func describeValue(value interface{}) string {
	switch value.(type) {
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	case []interface{}:
		return "an array"
	case map[string]interface{}:
		return "an object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}
