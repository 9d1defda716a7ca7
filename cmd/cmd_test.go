package cmd

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fence = "```"

func init() {
	pterm.DisableStyling()
}

func projectResponse() string {
	return "Here is your app:\n" + fence + "json\n" + `{
  "files": {
    "App.js": "import React from 'react';\nexport default function App() { return null; }",
    "screens/Home.js": "export const Home = () => null;",
    "assets/icon.png": "https://example.com/icon.png",
    "package.json": "{\"dependencies\": {\"expo\": \"^52.0.0\", \"react-native-paper\": {\"0\": \"5\", \"1\": \".\", \"2\": \"1\"}}}"
  }
}` + "\n" + fence
}

const chatResponse = "I'd recommend **Zustand** for state management in this app."

func writeResponse(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "response.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--env", filepath.Join(t.TempDir(), ".env")))
	err := root.Execute()
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "version:")
}

func TestParse_TextReport(t *testing.T) {
	out, err := runCLI(t, "", "parse", writeResponse(t, projectResponse()))
	require.NoError(t, err)

	for _, expected := range []string{"App.js", "screens/", "Home.js", "ASSET", "CODE", "expo", "^52.0.0", "react-native-paper", "5.1", "Primary file: App.js"} {
		assert.Contains(t, out, expected)
	}
}

func TestParse_JSONReport(t *testing.T) {
	project := writeResponse(t, projectResponse())
	chat := writeResponse(t, chatResponse)

	out, err := runCLI(t, "", "parse", project, chat, "--output_format", "json")
	require.NoError(t, err)

	var reports []struct {
		Source      string `json:"source"`
		Kind        string `json:"kind"`
		PrimaryFile string `json:"primary_file"`
		Chat        string `json:"chat"`
		Result      *struct {
			Dependencies map[string]string `json:"dependencies"`
			Tree         map[string]interface{} `json:"tree"`
			Preview      struct {
				Files map[string]struct {
					Type string `json:"type"`
				} `json:"files"`
			} `json:"preview"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, project, reports[0].Source)
	assert.Equal(t, "project", reports[0].Kind)
	assert.Equal(t, "App.js", reports[0].PrimaryFile)
	require.NotNil(t, reports[0].Result)
	assert.Equal(t, map[string]string{"expo": "^52.0.0", "react-native-paper": "5.1"}, reports[0].Result.Dependencies)
	assert.Equal(t, "ASSET", reports[0].Result.Preview.Files["assets/icon.png"].Type)
	assert.Equal(t, "CODE", reports[0].Result.Preview.Files["App.js"].Type)
	assert.Equal(t, map[string]interface{}{"Home.js": "screens/Home.js"}, reports[0].Result.Tree["screens"])

	assert.Equal(t, "chat", reports[1].Kind)
	assert.Equal(t, chatResponse, reports[1].Chat)
	assert.Nil(t, reports[1].Result)
}

func TestParse_ChatIsRenderedNotFailed(t *testing.T) {
	out, err := runCLI(t, "", "parse", writeResponse(t, chatResponse))
	require.NoError(t, err)
	assert.Contains(t, out, "conversational reply")
	assert.Contains(t, out, "Zustand")
}

func TestParse_Stdin(t *testing.T) {
	out, err := runCLI(t, projectResponse(), "parse", "-", "--output_format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "source:")
	assert.Contains(t, out, "kind: project")
	assert.Contains(t, out, "expo: ^52.0.0")
}

func TestParse_StdinListedTwice(t *testing.T) {
	out, err := runCLI(t, projectResponse(), "parse", "-o", "json", "-", "-")
	require.NoError(t, err)

	var reports []struct {
		Source string `json:"source"`
		Kind   string `json:"kind"`
		Result *struct {
			Files map[string]string `json:"files"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	for _, report := range reports {
		assert.Equal(t, "-", report.Source)
		assert.Equal(t, "project", report.Kind)
		require.NotNil(t, report.Result)
		assert.Len(t, report.Result.Files, 4)
	}
}

func TestParse_MissingFilesFails(t *testing.T) {
	out, err := runCLI(t, "", "parse", writeResponse(t, fence+"json\n{\"file_tree\": []}\n"+fence))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1")
	assert.Contains(t, out, "no files mapping")
}

func TestParse_UnreadableFile(t *testing.T) {
	_, err := runCLI(t, "", "parse", filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestPreview_SnackBundle(t *testing.T) {
	out, err := runCLI(t, "", "preview", writeResponse(t, projectResponse()))
	require.NoError(t, err)

	var bundle struct {
		Name         string `json:"name"`
		SDKVersion   string `json:"sdkVersion"`
		Dependencies map[string]struct {
			Version string `json:"version"`
		} `json:"dependencies"`
		Files map[string]struct {
			Type     string `json:"type"`
			Contents string `json:"contents"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &bundle))
	assert.Equal(t, "AI Generated Preview", bundle.Name)
	assert.Equal(t, "52.0.0", bundle.SDKVersion)
	assert.Equal(t, "^52.0.0", bundle.Dependencies["expo"].Version)
	assert.Len(t, bundle.Files, 4)
	assert.Equal(t, "https://example.com/icon.png", bundle.Files["assets/icon.png"].Contents)
}

func TestPreview_ManifestAndSDKFlag(t *testing.T) {
	out, err := runCLI(t, "", "preview", writeResponse(t, projectResponse()), "--manifest")
	require.NoError(t, err)
	assert.NotContains(t, out, "sdkVersion")
	assert.Contains(t, out, `"expo": "^52.0.0"`)

	out, err = runCLI(t, "", "preview", writeResponse(t, projectResponse()), "--sdk_version", "51.0.0")
	require.NoError(t, err)
	assert.Contains(t, out, `"sdkVersion": "51.0.0"`)
}

func TestPreview_ChatIsAnError(t *testing.T) {
	_, err := runCLI(t, "", "preview", writeResponse(t, chatResponse))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conversational reply")
}

func TestShow(t *testing.T) {
	response := writeResponse(t, projectResponse())

	out, err := runCLI(t, "", "show", response)
	require.NoError(t, err)
	assert.Contains(t, out, "App.js (javascript)")
	assert.Contains(t, out, "App")

	out, err = runCLI(t, "", "show", response, "screens/Home.js")
	require.NoError(t, err)
	assert.Contains(t, out, "screens/Home.js")
	assert.Contains(t, out, "Home")

	_, err = runCLI(t, "", "show", response, "screens/Missing.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "screens/Missing.js")
}

func TestOutline(t *testing.T) {
	out, err := runCLI(t, "", "outline", writeResponse(t, projectResponse()), "--output_format", "json")
	require.NoError(t, err)

	var outlines []struct {
		Path     string   `json:"path"`
		Elements []string `json:"elements"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &outlines))
	require.Len(t, outlines, 4)
	assert.Equal(t, "App.js", outlines[0].Path)
	assert.Equal(t, []string{"import: react", "function: App"}, outlines[0].Elements)
	assert.Equal(t, "screens/Home.js", outlines[3].Path)
	assert.Equal(t, []string{"component: Home"}, outlines[3].Elements)
}

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()
	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	files := map[string]string{}
	for _, f := range reader.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		files[f.Name] = string(content)
	}
	return files
}

func TestExport(t *testing.T) {
	response := writeResponse(t, projectResponse())
	dir := t.TempDir()
	out := filepath.Join(dir, "ReactNativeApp.zip")
	ignore := filepath.Join(dir, ".snackignore")
	require.NoError(t, os.WriteFile(ignore, []byte("assets/\n"), 0644))

	stdout, err := runCLI(t, "", "export", response, "--out", out, "--ignore", ignore)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 3 files")

	files := readZip(t, out)
	assert.Len(t, files, 3)
	assert.Contains(t, files, "App.js")
	assert.Contains(t, files, "screens/Home.js")
	assert.NotContains(t, files, "assets/icon.png")
}

func TestExport_ExistingArchive(t *testing.T) {
	response := writeResponse(t, projectResponse())
	out := filepath.Join(t.TempDir(), "app.zip")
	require.NoError(t, os.WriteFile(out, []byte("keep me"), 0644))

	stdout, err := runCLI(t, "n\n", "export", response, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Export cancelled.")
	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))

	_, err = runCLI(t, "", "export", response, "--out", out, "--force")
	require.NoError(t, err)
	assert.Len(t, readZip(t, out), 4)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_ReparsesOnChange(t *testing.T) {
	response := writeResponse(t, chatResponse)

	root := NewRootCmd()
	out := &syncBuffer{}
	root.SetOut(out)
	root.SetErr(io.Discard)
	require.NoError(t, root.PersistentFlags().Set("env", filepath.Join(t.TempDir(), ".env")))
	require.NoError(t, root.PersistentFlags().Set("output_format", "yaml"))

	deps, err := handleRootCommand(root)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- handleWatchCommand(ctx, root, deps, response, 20*time.Millisecond)
	}()

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "kind: chat")
	}, 5*time.Second, 20*time.Millisecond)

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(response, []byte(projectResponse()), 0644)
		return strings.Contains(out.String(), "kind: project")
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
