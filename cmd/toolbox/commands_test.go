package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/bridge"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/catalog"
)

// workspace isolates a test in its own working and config directories.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("RTB_LOGGING_LEVEL", "")
	t.Chdir(dir)
	return dir
}

// run executes the CLI with args against the workspace catalog.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := newRootCmd()
	rootCmd.SilenceUsage = true
	rootCmd.SetArgs(append([]string{"--config", "config.json", "--log-level", "error"}, args...))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)

	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "toolbox %v", args)
	return out
}

func readCatalog(t *testing.T, dir string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestCategoryCommands(t *testing.T) {
	dir := workspace(t)

	mustRun(t, "category", "add", "Editors")
	mustRun(t, "category", "add", "Scripts")

	out := mustRun(t, "category", "list", "--json")
	var names []string
	require.NoError(t, json.Unmarshal([]byte(out), &names))
	assert.Equal(t, []string{"Editors", "Scripts"}, names)

	t.Run("duplicate fails", func(t *testing.T) {
		_, err := run(t, "category", "add", "Editors")
		assert.Error(t, err)
	})

	mustRun(t, "category", "rename", "Scripts", "Tools")
	mustRun(t, "category", "add", "Extra")
	mustRun(t, "category", "reorder", "Tools", "Editors", "Extra")
	out = mustRun(t, "category", "list")
	assert.Equal(t, "Tools\nEditors\nExtra\n", out)

	t.Run("unknown name fails", func(t *testing.T) {
		before, err := os.ReadFile(filepath.Join(dir, "config.json"))
		require.NoError(t, err)

		_, err = run(t, "category", "reorder", "Tools", "Missing")
		assert.Error(t, err)

		after, err := os.ReadFile(filepath.Join(dir, "config.json"))
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))
		assert.Equal(t, "Tools\nEditors\nExtra\n", mustRun(t, "category", "list"))
	})

	mustRun(t, "category", "reorder", "Editors", "Tools")
	assert.Equal(t, "Editors\nTools\n", mustRun(t, "category", "list"))

	mustRun(t, "category", "remove", "Tools")
	doc := readCatalog(t, dir)
	assert.Len(t, doc["categories"], 1)
}

func TestAppCommands(t *testing.T) {
	dir := workspace(t)

	mustRun(t, "category", "add", "Scripts")
	mustRun(t, "app", "add", "build", "--path", "./build.sh", `--args=--target "x y"`, "--desc", "Build it")
	mustRun(t, "app", "add", "deploy", "--path", "./deploy.sh")

	t.Run("add requires path", func(t *testing.T) {
		_, err := run(t, "app", "add", "nopath")
		assert.Error(t, err)
	})

	t.Run("duplicate add fails", func(t *testing.T) {
		_, err := run(t, "app", "add", "build", "--path", "./other.sh")
		assert.Error(t, err)
	})

	out := mustRun(t, "app", "show", "build")
	var view bridge.AppView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "./build.sh", view.AppPath)
	assert.Equal(t, `--target "x y"`, view.LaunchArgs)
	assert.Equal(t, ".", view.WorkingDir)

	mustRun(t, "category", "assign", "Scripts", "build", "deploy")
	out = mustRun(t, "app", "list", "--category", "Scripts", "--json")
	var apps []bridge.AppView
	require.NoError(t, json.Unmarshal([]byte(out), &apps))
	require.Len(t, apps, 2)
	assert.Equal(t, "build", apps[0].Name)

	mustRun(t, "app", "rename", "build", "compile")
	out = mustRun(t, "app", "list", "--category", "Scripts", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &apps))
	assert.Equal(t, "compile", apps[0].Name)

	mustRun(t, "app", "edit", "compile", "--desc", "Compile it", "--dir", "./src")
	out = mustRun(t, "app", "show", "compile")
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "Compile it", view.Desc)
	assert.Equal(t, "./src", view.WorkingDir)
	assert.Equal(t, `--target "x y"`, view.LaunchArgs)

	mustRun(t, "category", "unassign", "Scripts", "deploy")
	out = mustRun(t, "app", "list", "--category", "Scripts", "--available", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, "deploy", apps[0].Name)

	mustRun(t, "category", "set", "Scripts", "deploy", "compile")
	mustRun(t, "app", "remove", "deploy")

	doc := readCatalog(t, dir)
	library := doc["appLibrary"].(map[string]any)
	assert.Contains(t, library, "compile")
	assert.NotContains(t, library, "deploy")
	categories := doc["categories"].([]any)
	assert.Equal(t, []any{"compile"}, categories[0].(map[string]any)["apps"])
}

func TestAppListTable(t *testing.T) {
	workspace(t)

	out := mustRun(t, "app", "list")
	assert.Contains(t, out, "No apps")

	mustRun(t, "app", "add", "build", "--path", "./build.sh")
	out = mustRun(t, "app", "list")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "./build.sh")
}

func TestAppListErrors(t *testing.T) {
	workspace(t)

	_, err := run(t, "app", "list", "--available")
	assert.Error(t, err)

	_, err = run(t, "app", "list", "--category", "Nope")
	assert.Error(t, err)

	_, err = run(t, "app", "show", "nope")
	assert.Error(t, err)

	_, err = run(t, "app", "launch", "nope")
	assert.Error(t, err)
}

func TestThemeCommands(t *testing.T) {
	workspace(t)

	out := mustRun(t, "theme", "presets")
	assert.Contains(t, out, "Azure")
	assert.Contains(t, out, "Violet")

	mustRun(t, "theme", "apply", "violet")
	out = mustRun(t, "theme", "show")
	assert.Contains(t, out, "linear-gradient(to right, #7028ac, #ab59c7)")

	mustRun(t, "theme", "apply", "#3366cc")
	out = mustRun(t, "theme", "show")
	assert.Equal(t, "#3366cc\n", out)

	_, err := run(t, "theme", "apply", "plaid")
	assert.Error(t, err)
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    catalog.Theme
		wantErr bool
	}{
		{"Teal", catalog.LinearGradient{From: catalog.RGB{R: 0x00, G: 0x78, B: 0x74}, To: catalog.RGB{R: 0x59, G: 0xB1, B: 0xBA}}, false},
		{"#ff0000", catalog.Solid{Color: catalog.RGB{R: 255}}, false},
		{"#zzz", nil, true},
		{"unknown", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTheme(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("1.2")
	require.NoError(t, err)
	assert.Equal(t, catalog.ToolboxVersion{Major: 1, Minor: 2}, v)

	for _, bad := range []string{"1", "a.1", "1.b", "-1.0"} {
		_, err := parseVersion(bad)
		assert.Error(t, err, bad)
	}
}

func TestInfoCommand(t *testing.T) {
	dir := workspace(t)

	mustRun(t, "info", "--header", "Team Tools", "--author", "ops", "--toolbox-version", "1.2")

	doc := readCatalog(t, dir)
	assert.Equal(t, "Team Tools", doc["headerText"])
	assert.Equal(t, "ops", doc["author"])
	assert.Equal(t, []any{float64(1), float64(2)}, doc["toolboxVersion"])

	mustRun(t, "info", "--author", "")
	doc = readCatalog(t, dir)
	assert.Nil(t, doc["author"])

	out := mustRun(t, "info")
	assert.Contains(t, out, `"headerText": "Team Tools"`)
}

func TestLangCommand(t *testing.T) {
	workspace(t)

	assert.Equal(t, "en\n", mustRun(t, "lang"))
	mustRun(t, "lang", "zh-Hans")
	assert.Equal(t, "zh-CN\n", mustRun(t, "lang"))

	_, err := run(t, "lang", "xx-invalid-tag-")
	assert.Error(t, err)
}

func TestRelpathCommand(t *testing.T) {
	workspace(t)

	assert.Equal(t, filepath.Join("scripts", "a.sh")+"\n", mustRun(t, "relpath", filepath.Join("scripts", "a.sh")))
	assert.Equal(t, ".\n", mustRun(t, "relpath", "."))

	_, err := run(t, "relpath", filepath.Join("..", "elsewhere"))
	assert.Error(t, err)
}

func TestIconCommands(t *testing.T) {
	dir := workspace(t)

	svg := filepath.Join(dir, "icon.svg")
	require.NoError(t, os.WriteFile(svg, []byte("<svg/>"), 0644))

	out := mustRun(t, "icon", "file", svg)
	assert.Contains(t, out, "data:image/svg+xml;base64,")

	_, err := run(t, "icon", "file", filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestSettingsCommands(t *testing.T) {
	dir := workspace(t)
	path := filepath.Join(dir, "rapid-toolbox.yaml")

	out := mustRun(t, "settings", "init", path)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err := run(t, "settings", "init", path)
	assert.Error(t, err, "existing file needs --force")
	mustRun(t, "settings", "init", path, "--force")

	out = mustRun(t, "--settings", path, "settings", "show")
	assert.Contains(t, out, "catalog_path: config.json")
	assert.Contains(t, out, "listen: 127.0.0.1:7878")
}

func TestSettingsInitDefaultLocation(t *testing.T) {
	dir := workspace(t)

	mustRun(t, "settings", "init")
	assert.FileExists(t, filepath.Join(dir, "xdg", "rapid-toolbox", "rapid-toolbox.yaml"))
}

func TestDoctorCommand(t *testing.T) {
	workspace(t)

	t.Run("missing catalog", func(t *testing.T) {
		out, err := run(t, "doctor")
		assert.ErrorIs(t, err, errIssuesFound)
		assert.Contains(t, out, "Catalog")
	})

	mustRun(t, "category", "list")

	t.Run("broken app", func(t *testing.T) {
		mustRun(t, "app", "add", "ghost", "--path", "./ghost.sh")
		out, err := run(t, "doctor")
		assert.ErrorIs(t, err, errIssuesFound)
		assert.Contains(t, out, "ghost")
		assert.Contains(t, out, `toolbox app edit "ghost"`)
		mustRun(t, "app", "remove", "ghost")
	})
}

func TestServeRejectsNonLoopback(t *testing.T) {
	workspace(t)

	_, err := run(t, "serve", "--listen", "0.0.0.0:7878")
	assert.Error(t, err)
}

func TestInvalidCatalogFails(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644))

	_, err := run(t, "category", "list")
	assert.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}
