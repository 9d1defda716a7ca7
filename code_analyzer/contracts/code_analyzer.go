package contracts

import (
	"context"

	"github.com/meysamhadeli/snackforge/code_analyzer/models"
	project_models "github.com/meysamhadeli/snackforge/project_model/models"
)

type ICodeAnalyzer interface {
	Outline(path string, content string) ([]string, error)
	OutlineFiles(ctx context.Context, files project_models.FileMap) ([]models.FileOutline, error)
}
