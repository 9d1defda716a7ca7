package utils

import (
	"github.com/meysamhadeli/snackforge/project_model/models"
	"github.com/pterm/pterm"
)

// RenderTree draws a project folder tree. Directories are listed with a trailing slash.
func RenderTree(root *models.Directory, rootName string) (string, error) {
	return pterm.DefaultTree.WithRoot(treeNode(rootName, root)).Srender()
}

func treeNode(text string, node models.TreeNode) pterm.TreeNode {
	dir, ok := node.(*models.Directory)
	if !ok {
		return pterm.TreeNode{Text: text}
	}

	result := pterm.TreeNode{Text: text}
	for _, entry := range dir.Entries {
		name := entry.Name
		if _, isDir := entry.Node.(*models.Directory); isDir {
			name += "/"
		}
		result.Children = append(result.Children, treeNode(name, entry.Node))
	}
	return result
}

// RenderTable draws rows under a header line.
func RenderTable(header []string, rows [][]string) (string, error) {
	data := pterm.TableData{header}
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}
