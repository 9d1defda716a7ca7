package project_model

import (
	"errors"

	"github.com/google/uuid"
	"github.com/meysamhadeli/snackforge/project_model/contracts"
	"github.com/meysamhadeli/snackforge/project_model/models"
	"go.uber.org/zap"
)

// PipelineOptions configures a Pipeline. The zero value is usable.
type PipelineOptions struct {
	Extract ExtractOptions
	Build   BuildOptions
	Compose ComposeOptions
	// Memo, when set, caches the derived artifacts per FileMap content.
	Memo   *MemoCache
	Logger *zap.Logger
}

// Pipeline turns model responses into project results. Apart from the optional memo it
// holds no mutable state and may be shared between goroutines.
type Pipeline struct {
	extract ExtractOptions
	build   BuildOptions
	compose ComposeOptions
	memo    *MemoCache
	logger  *zap.Logger
}

var _ contracts.IProjectPipeline = (*Pipeline)(nil)

// NewPipeline initializes a new Pipeline.
func NewPipeline(options *PipelineOptions) *Pipeline {
	if options == nil {
		options = &PipelineOptions{}
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		extract: options.Extract,
		build:   options.Build,
		compose: options.Compose,
		memo:    options.Memo,
		logger:  logger,
	}
}

// Memo returns the memo cache, or nil when memoization is off.
func (p *Pipeline) Memo() *MemoCache {
	return p.memo
}

// Run processes one model response. An error matching ErrNotJSON means the response is a
// conversational answer and should be shown as chat; ErrMissingFiles means it looked like a
// project but could not be used. Everything else is reported as warnings on the result.
func (p *Pipeline) Run(raw string) (*models.Result, error) {
	generationID := uuid.NewString()
	logger := p.logger.With(zap.String("generation", generationID))

	doc, err := Extract(raw, p.extract)
	if err != nil {
		logger.Debug("response is not a project", zap.String("stage", StageExtract), zap.Error(err))
		return nil, err
	}

	files, warnings, err := Build(doc, p.build)
	if err != nil {
		if errors.Is(err, ErrNotJSON) {
			logger.Debug("document is not an object", zap.String("stage", StageBuild), zap.Error(err))
		} else {
			logger.Warn("document is not project-shaped", zap.String("stage", StageBuild), zap.Error(err))
		}
		return nil, err
	}
	logWarnings(logger, warnings)

	result := p.derive(generationID, files, logger)
	result.Warnings = append(warnings, result.Warnings...)

	logger.Debug("project built",
		zap.Int("files", len(files)),
		zap.Int("dependencies", len(result.Dependencies)),
		zap.Int("warnings", len(result.Warnings)))

	return result, nil
}

// Rederive recomputes the tree, dependencies and preview for an edited file map.
// Paths Build would reject are dropped with a warning.
func (p *Pipeline) Rederive(files models.FileMap) *models.Result {
	generationID := uuid.NewString()
	logger := p.logger.With(zap.String("generation", generationID))

	usable, warnings := dropInvalidPaths(files)
	logWarnings(logger, warnings)

	result := p.derive(generationID, usable, logger)
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

func (p *Pipeline) derive(generationID string, files models.FileMap, logger *zap.Logger) *models.Result {
	var value *derived
	var key uint64
	cached := false

	if p.memo != nil {
		key = files.Hash()
		value, cached = p.memo.get(key, files)
	}

	if !cached {
		value = p.compute(files)
		logWarnings(logger, value.warnings)
		if p.memo != nil {
			p.memo.set(key, files, value)
		}
	}

	return &models.Result{
		GenerationID: generationID,
		Files:        files,
		Tree:         value.tree,
		Dependencies: value.deps,
		Preview:      value.preview,
		Warnings:     append([]models.Warning(nil), value.warnings...),
	}
}

func (p *Pipeline) compute(files models.FileMap) *derived {
	var warnings []models.Warning

	tree, conflicts := IndexLenient(files)
	for _, conflict := range conflicts {
		warnings = append(warnings, models.Warning{
			Stage:   StageIndex,
			Path:    conflict.Path,
			Message: conflict.Error(),
		})
	}

	deps, depWarnings, err := NormalizeDependencies(files)
	if err != nil {
		warnings = append(warnings, models.Warning{
			Stage:   StageDependencies,
			Path:    ManifestPath,
			Message: err.Error(),
		})
	}
	warnings = append(warnings, depWarnings...)

	return &derived{
		tree:     tree,
		deps:     deps,
		preview:  Compose(files, deps, p.compose),
		warnings: warnings,
	}
}

func logWarnings(logger *zap.Logger, warnings []models.Warning) {
	for _, w := range warnings {
		logger.Warn(w.Message, zap.String("stage", w.Stage), zap.String("path", w.Path))
	}
}
