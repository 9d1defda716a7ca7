package contracts

import "github.com/meysamhadeli/snackforge/project_model/models"

type IProjectPipeline interface {
	Run(raw string) (*models.Result, error)
	Rederive(files models.FileMap) *models.Result
}
