package project_model

import (
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/meysamhadeli/snackforge/project_model/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func expoResponse() string {
	return "Here is your app:\n" + fence + "json\n" + `{
  "files": {
    "App.js": "export default function App() { return null; }",
    "package.json": "{\"dependencies\": {\"expo\": \"^52.0.0\"}}"
  },
  "file_tree": ["App.js", "package.json"]
}` + "\n" + fence + "\nLet me know if you want changes."
}

func TestPipeline_FencedProject(t *testing.T) {
	pipeline := NewPipeline(nil)

	result, err := pipeline.Run(expoResponse())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.GenerationID)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, []string{"App.js", "package.json"}, result.Files.Paths())
	assert.Equal(t, models.Dependencies{"expo": "^52.0.0"}, result.Dependencies)

	wantTree := &models.Directory{Entries: []models.DirEntry{
		{Name: "App.js", Node: models.Leaf{Path: "App.js"}},
		{Name: "package.json", Node: models.Leaf{Path: "package.json"}},
	}}
	if diff := cmp.Diff(wantTree, result.Tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, result.Preview.Files, 2)
	assert.Equal(t, models.CodeEntry, result.Preview.Files["App.js"].Kind)
	assert.Equal(t, models.CodeEntry, result.Preview.Files["package.json"].Kind)
	assert.Equal(t, result.Files["App.js"], result.Preview.Files["App.js"].Contents)
	assert.Equal(t, result.Dependencies, result.Preview.Dependencies)
}

func TestPipeline_ConversationalReply(t *testing.T) {
	pipeline := NewPipeline(nil)

	for _, raw := range []string{
		"I'd recommend Zustand for state management. It is small and has no boilerplate.",
		fence + "json\n[\"not\", \"a\", \"project\"]\n" + fence,
	} {
		result, err := pipeline.Run(raw)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrNotJSON), raw)
		assert.False(t, errors.Is(err, ErrMissingFiles), raw)
	}
}

func TestPipeline_MissingFiles(t *testing.T) {
	pipeline := NewPipeline(nil)

	result, err := pipeline.Run(fence + "json\n{\"file_tree\": [\"App.js\"]}\n" + fence)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrMissingFiles))
	assert.False(t, errors.Is(err, ErrNotJSON))
}

func TestPipeline_WarningsFromEveryStage(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	pipeline := NewPipeline(&PipelineOptions{Logger: zap.New(core)})

	result, err := pipeline.Run(`{
		"files": {
			"App.js": "app",
			"broken.js": 12,
			"screens": "file",
			"screens/Home.js": "home",
			"package.json": "{not json"
		}
	}`)
	require.NoError(t, err)

	stages := map[string]string{}
	for _, w := range result.Warnings {
		stages[w.Path] = w.Stage
	}
	assert.Equal(t, map[string]string{
		"broken.js":       StageBuild,
		"screens/Home.js": StageIndex,
		"package.json":    StageDependencies,
	}, stages)

	assert.Empty(t, result.Dependencies)
	assert.Equal(t, []string{"App.js", "package.json", "screens"}, models.Flatten(result.Tree))
	// The dropped tree entry is still part of the files and the preview.
	assert.Contains(t, result.Preview.Files, "screens/Home.js")
	assert.Equal(t, len(result.Warnings), logs.Len())
}

func TestPipeline_Options(t *testing.T) {
	pipeline := NewPipeline(&PipelineOptions{
		Extract: ExtractOptions{ScanEmbeddedObject: true},
		Build:   BuildOptions{DecodeEscapedNewlines: true},
		Compose: ComposeOptions{ExtraAssetExtensions: []string{"webp"}},
	})

	result, err := pipeline.Run(`Sure! {"files": {"App.js": "a\\nb", "hero.webp": "data"}} enjoy`)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", result.Files["App.js"])
	assert.Equal(t, models.AssetEntry, result.Preview.Files["hero.webp"].Kind)
}

func TestPipeline_MemoReusesDerivedArtifacts(t *testing.T) {
	memo := NewMemoCache(4)
	pipeline := NewPipeline(&PipelineOptions{Memo: memo})
	assert.Same(t, memo, pipeline.Memo())

	first, err := pipeline.Run(expoResponse())
	require.NoError(t, err)
	second, err := pipeline.Run(expoResponse())
	require.NoError(t, err)

	assert.NotEqual(t, first.GenerationID, second.GenerationID)
	assert.Same(t, first.Tree, second.Tree)
	assert.Equal(t, first.Preview, second.Preview)

	stats := memo.PerformanceStats()
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
	assert.Equal(t, 1, stats.Entries)
	assert.InDelta(t, 50.0, stats.HitRatePercent, 0.001)
}

func TestPipeline_RederiveAfterEdit(t *testing.T) {
	pipeline := NewPipeline(&PipelineOptions{Memo: NewMemoCache(0)})

	result, err := pipeline.Run(expoResponse())
	require.NoError(t, err)

	edited := result.Files.With("package.json", `{"dependencies": {"expo": "^52.0.0", "react-native-paper": "5.12.5"}}`).
		With("assets/icon.png", "https://example.com/icon.png")

	updated := pipeline.Rederive(edited)
	assert.Equal(t, models.Dependencies{"expo": "^52.0.0", "react-native-paper": "5.12.5"}, updated.Dependencies)
	assert.Equal(t, models.AssetEntry, updated.Preview.Files["assets/icon.png"].Kind)
	assert.Equal(t, []string{"App.js", "assets/icon.png", "package.json"}, models.Flatten(updated.Tree))

	// The original result is untouched.
	assert.Equal(t, models.Dependencies{"expo": "^52.0.0"}, result.Dependencies)
	assert.Len(t, result.Files, 2)
}

func TestPipeline_RederiveDropsInvalidPaths(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	pipeline := NewPipeline(&PipelineOptions{Logger: zap.New(core)})

	edited := models.FileMap{"App.js": "app"}.
		With("../escape.js", "x").
		With("/etc/passwd", "y").
		With("", "z")

	result := pipeline.Rederive(edited)
	assert.Equal(t, models.FileMap{"App.js": "app"}, result.Files)
	assert.Equal(t, []string{"App.js"}, models.Flatten(result.Tree))
	assert.Equal(t, []string{"App.js"}, mapKeys(result.Preview.Files))

	var dropped []string
	for _, w := range result.Warnings {
		assert.Equal(t, StageBuild, w.Stage)
		dropped = append(dropped, w.Path)
	}
	assert.Equal(t, []string{"", "../escape.js", "/etc/passwd"}, dropped)
	assert.Equal(t, 3, logs.Len())

	// The caller's map is not modified.
	assert.Len(t, edited, 4)
}

func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func TestPipeline_ConcurrentRuns(t *testing.T) {
	pipeline := NewPipeline(&PipelineOptions{Memo: NewMemoCache(2)})

	responses := []string{
		expoResponse(),
		`{"files": {"index.js": "x"}}`,
		`{"files": {"a/b.js": "1", "a/c.js": "2"}}`,
		"just chat",
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(raw string) {
			defer wg.Done()
			result, err := pipeline.Run(raw)
			if err != nil {
				assert.ErrorIs(t, err, ErrNotJSON)
				return
			}
			assert.ElementsMatch(t, result.Files.Paths(), models.Flatten(result.Tree))
		}(responses[i%len(responses)])
	}
	wg.Wait()

	assert.LessOrEqual(t, pipeline.Memo().Len(), 2)
}

func TestMemoCache_EvictsOldest(t *testing.T) {
	memo := NewMemoCache(2)
	pipeline := NewPipeline(&PipelineOptions{Memo: memo})

	a := models.FileMap{"a.js": "a"}
	b := models.FileMap{"b.js": "b"}
	c := models.FileMap{"c.js": "c"}

	pipeline.Rederive(a)
	pipeline.Rederive(b)
	pipeline.Rederive(c)
	assert.Equal(t, 2, memo.Len())
	assert.Equal(t, int64(1), memo.PerformanceStats().Evictions)

	// a was evicted, c is still cached.
	pipeline.Rederive(c)
	pipeline.Rederive(a)
	stats := memo.PerformanceStats()
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(4), stats.CacheMisses)

	memo.Clear()
	assert.Equal(t, 0, memo.Len())
	memo.ResetPerformanceStats()
	assert.Equal(t, int64(0), memo.PerformanceStats().TotalRequests)
}

func TestMemoCache_HashCollisionIsAMiss(t *testing.T) {
	memo := NewMemoCache(4)
	files := models.FileMap{"a.js": "a"}
	memo.set(42, files, &derived{deps: models.Dependencies{}})

	_, ok := memo.get(42, models.FileMap{"b.js": "b"})
	assert.False(t, ok)

	value, ok := memo.get(42, models.FileMap{"a.js": "a"})
	assert.True(t, ok)
	assert.NotNil(t, value)
}
