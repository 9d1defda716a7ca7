package models

import (
	"encoding/binary"
	"sort"

	"github.com/zeebo/xxh3"
)

// FileMap maps a slash-delimited relative path to its textual content.
// A FileMap is treated as immutable once built; use With to derive an edited copy.
type FileMap map[string]string

// Paths returns the keys in ascending lexicographic order.
func (files FileMap) Paths() []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// With returns a copy of the map with path set to content.
func (files FileMap) With(path, content string) FileMap {
	copied := make(FileMap, len(files)+1)
	for k, v := range files {
		copied[k] = v
	}
	copied[path] = content
	return copied
}

// Hash returns an xxh3 digest over the sorted (path, content) pairs.
// Lengths are written before each string so that no two distinct maps share an encoding.
func (files FileMap) Hash() uint64 {
	hasher := xxh3.New()
	var size [8]byte

	write := func(s string) {
		binary.LittleEndian.PutUint64(size[:], uint64(len(s)))
		_, _ = hasher.Write(size[:])
		_, _ = hasher.Write([]byte(s))
	}

	for _, path := range files.Paths() {
		write(path)
		write(files[path])
	}

	return hasher.Sum64()
}

var primaryCandidates = []string{"App.js", "App.tsx", "App.ts", "App.jsx"}

// PrimaryFile returns the file an editor should open first: the app entry point when
// present, otherwise the first path in sorted order. It returns "" for an empty map.
func PrimaryFile(files FileMap) string {
	for _, candidate := range primaryCandidates {
		if _, ok := files[candidate]; ok {
			return candidate
		}
	}
	paths := files.Paths()
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}
