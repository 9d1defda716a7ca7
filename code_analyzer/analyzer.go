package code_analyzer

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/meysamhadeli/snackforge/code_analyzer/contracts"
	"github.com/meysamhadeli/snackforge/code_analyzer/models"
	project_models "github.com/meysamhadeli/snackforge/project_model/models"
	"github.com/meysamhadeli/snackforge/utils"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"golang.org/x/sync/errgroup"
)

// grammar pairs a tree-sitter language with its compiled outline query.
type grammar struct {
	language *sitter.Language
	source   string
	once     sync.Once
	query    *sitter.Query
	err      error
}

func (g *grammar) compiled() (*sitter.Query, error) {
	g.once.Do(func() {
		g.query, g.err = sitter.NewQuery([]byte(g.source), g.language)
	})
	return g.query, g.err
}

// CodeAnalyzer summarizes generated files with tree-sitter.
type CodeAnalyzer struct {
	grammars    map[string]*grammar
	concurrency int
}

// NewCodeAnalyzer initializes a new CodeAnalyzer.
func NewCodeAnalyzer() contracts.ICodeAnalyzer {
	return &CodeAnalyzer{
		grammars: map[string]*grammar{
			"javascript": {language: javascript.GetLanguage(), source: javascriptQuery},
			"typescript": {language: typescript.GetLanguage(), source: typescriptQuery},
			"tsx":        {language: tsx.GetLanguage(), source: typescriptQuery},
		},
		concurrency: 4,
	}
}

// grammarName maps a path to the grammar that parses it, or "" for files outlined as plain text.
func grammarName(filePath string) string {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return "javascript"
	case ".ts", ".mts", ".cts":
		return "typescript"
	case ".tsx":
		return "tsx"
	default:
		return ""
	}
}

// Outline lists the imports, functions, classes and arrow-function components of a file in
// source order. Files without a grammar are summarized by their path and first line.
func (analyzer *CodeAnalyzer) Outline(filePath string, content string) ([]string, error) {
	g, ok := analyzer.grammars[grammarName(filePath)]
	if !ok {
		firstLine, _, _ := strings.Cut(content, "\n")
		return []string{filePath, strings.TrimSpace(firstLine)}, nil
	}

	query, err := g.compiled()
	if err != nil {
		return nil, fmt.Errorf("failed to compile query for %s: %w", filePath, err)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(g.language)

	sourceCode := []byte(content)
	tree, err := parser.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	defer tree.Close()

	type element struct {
		start uint32
		text  string
	}
	var found []element

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, tree.RootNode())

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}

		for _, capture := range match.Captures {
			tag := query.CaptureNameForId(capture.Index)
			text := capture.Node.Content(sourceCode)
			if tag == "import" {
				text = importSource(capture.Node, sourceCode)
				if text == "" {
					continue
				}
			}
			// Tag the element with its kind (e.g., import, function, component)
			found = append(found, element{
				start: capture.Node.StartByte(),
				text:  fmt.Sprintf("%s: %s", tag, text),
			})
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })

	elements := make([]string, 0, len(found))
	for _, e := range found {
		elements = append(elements, e.text)
	}
	return elements, nil
}

// importSource returns the unquoted module specifier of an import statement.
func importSource(node *sitter.Node, sourceCode []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "string" {
			return strings.Trim(child.Content(sourceCode), "'\"`")
		}
	}
	return ""
}

// OutlineFiles outlines every file of a project in path order.
func (analyzer *CodeAnalyzer) OutlineFiles(ctx context.Context, files project_models.FileMap) ([]models.FileOutline, error) {
	paths := files.Paths()
	outlines := make([]models.FileOutline, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(analyzer.concurrency)

	for i, filePath := range paths {
		i, filePath := i, filePath
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			elements, err := analyzer.Outline(filePath, files[filePath])
			if err != nil {
				return err
			}
			outlines[i] = models.FileOutline{
				RelativePath: filePath,
				Language:     utils.DetectLanguage(filePath, files[filePath]),
				Elements:     elements,
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return outlines, nil
}
