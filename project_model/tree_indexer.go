package project_model

import (
	"strings"

	"github.com/meysamhadeli/snackforge/project_model/models"
)

// Index builds the folder tree for a file map. Paths are visited in sorted order, so the
// result depends only on the key set. The first conflicting path aborts indexing.
func Index(files models.FileMap) (*models.Directory, error) {
	root, conflicts := indexPaths(files.Paths(), true)
	if len(conflicts) > 0 {
		return nil, conflicts[0]
	}
	return root, nil
}

// IndexLenient builds the tree like Index, but skips each conflicting path and reports it.
// In sorted order a file always precedes the paths nested under its name, so the deeper entry
// is the one dropped.
func IndexLenient(files models.FileMap) (*models.Directory, []*TreeConflictError) {
	return indexPaths(files.Paths(), false)
}

type dirBuilder struct {
	dir       *models.Directory
	positions map[string]int
	subdirs   map[string]*dirBuilder
}

func newDirBuilder() *dirBuilder {
	return &dirBuilder{
		dir:       &models.Directory{},
		positions: make(map[string]int),
		subdirs:   make(map[string]*dirBuilder),
	}
}

func (b *dirBuilder) add(name string, node models.TreeNode) {
	b.positions[name] = len(b.dir.Entries)
	b.dir.Entries = append(b.dir.Entries, models.DirEntry{Name: name, Node: node})
}

func indexPaths(paths []string, stopOnConflict bool) (*models.Directory, []*TreeConflictError) {
	root := newDirBuilder()
	var conflicts []*TreeConflictError

	for _, path := range paths {
		if conflict := root.insert(path); conflict != nil {
			conflicts = append(conflicts, conflict)
			if stopOnConflict {
				break
			}
		}
	}

	return root.dir, conflicts
}

// insert never leaves a partial branch behind on conflict: directories are only created
// below the last pre-existing segment, and nothing below a new directory can collide.
func (b *dirBuilder) insert(path string) *TreeConflictError {
	segments := strings.Split(path, "/")
	current := b

	for _, segment := range segments[:len(segments)-1] {
		if pos, ok := current.positions[segment]; ok {
			if _, isLeaf := current.dir.Entries[pos].Node.(models.Leaf); isLeaf {
				return &TreeConflictError{Path: path, Segment: segment, Existing: "file"}
			}
			current = current.subdirs[segment]
			continue
		}

		child := newDirBuilder()
		current.add(segment, child.dir)
		current.subdirs[segment] = child
		current = child
	}

	name := segments[len(segments)-1]
	if pos, ok := current.positions[name]; ok {
		existing := "file"
		if _, isDir := current.dir.Entries[pos].Node.(*models.Directory); isDir {
			existing = "directory"
		}
		return &TreeConflictError{Path: path, Segment: name, Existing: existing}
	}
	current.add(name, models.Leaf{Path: path})
	return nil
}
