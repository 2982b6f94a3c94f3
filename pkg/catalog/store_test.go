package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTripCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := newTestCatalog(t)
	author := "Author"
	c.SetBasicInfo(BasicInfo{
		HeaderText:     "Test Toolbox",
		Author:         &author,
		ToolboxVersion: &ToolboxVersion{Major: 0, Minor: 1},
		Theme:          Solid{Color: RGB{R: 233, G: 128, B: 250}},
	})
	return c
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c := roundTripCatalog(t)

	require.NoError(t, Save(c, path))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestSaveLoad_RoundTrip_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	require.NoError(t, Save(New(), path))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, New(), loaded)
}

func TestSave_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, Save(roundTripCatalog(t), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `{
  "lang": "en",
  "headerText": "Test Toolbox",
  "author": "Author",
  "toolboxVersion": [
    0,
    1
  ],
  "theme": {
    "type": "Solid",
    "color": {
      "type": "RGB",
      "r": 233,
      "g": 128,
      "b": 250
    }
  },
  "appLibrary": {
    "test_app": {
      "appPath": "test_app.exe",
      "launchArgs": "--test-arg",
      "workingDir": ".",
      "desc": "An app for testing purpose",
      "iconUrl": "data:image/png;base64,AAAA"
    }
  },
  "categories": [
    {
      "name": "test_category",
      "apps": [
        "test_app"
      ]
    }
  ]
}
`
	assert.Equal(t, want, string(data))
}

func TestSave_NullableFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, Save(New(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "author")
	assert.Nil(t, doc["author"])
	assert.Nil(t, doc["toolboxVersion"])
	assert.Equal(t, map[string]any{}, doc["appLibrary"])
	assert.Equal(t, []any{}, doc["categories"])
}

func TestSave_WriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "config.json")

	err := Save(New(), path)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWriteError)
}

func TestLoad_FileNotExist(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "config.json"))
	assert.ErrorIs(t, err, ErrFileNotExist)

	// A directory is not a regular file either.
	_, err = Load(dir)
	assert.ErrorIs(t, err, ErrFileNotExist)
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "invalid json", file: "invalid_json_config.json"},
		{name: "schema mismatch", file: "invalid_format_config.json"},
		{name: "dangling reference", file: "dangling_reference_config.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(filepath.Join("testdata", tt.file))

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParseError)
			assert.Contains(t, err.Error(), "failed to parse config file")
		})
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"lang":           "en",
			"headerText":     "Rapid Toolbox",
			"author":         nil,
			"toolboxVersion": nil,
			"theme": map[string]any{
				"type":  "Solid",
				"color": map[string]any{"type": "RGB", "r": 1, "g": 2, "b": 3},
			},
			"appLibrary": map[string]any{},
			"categories": []any{},
		}
	}

	tests := []struct {
		name   string
		mutate func(doc map[string]any)
	}{
		{name: "missing lang", mutate: func(d map[string]any) { delete(d, "lang") }},
		{name: "missing theme", mutate: func(d map[string]any) { delete(d, "theme") }},
		{name: "unknown theme type", mutate: func(d map[string]any) {
			d["theme"] = map[string]any{"type": "Plaid"}
		}},
		{name: "color out of range", mutate: func(d map[string]any) {
			d["theme"] = map[string]any{
				"type":  "Solid",
				"color": map[string]any{"type": "RGB", "r": 256, "g": 0, "b": 0},
			}
		}},
		{name: "hsl out of range", mutate: func(d map[string]any) {
			d["theme"] = map[string]any{
				"type":  "Solid",
				"color": map[string]any{"type": "HSL", "h": 400, "s": 0, "l": 0},
			}
		}},
		{name: "gradient missing to", mutate: func(d map[string]any) {
			d["theme"] = map[string]any{
				"type": "LinearGradient",
				"from": map[string]any{"type": "RGB", "r": 1, "g": 2, "b": 3},
			}
		}},
		{name: "version too long", mutate: func(d map[string]any) { d["toolboxVersion"] = []int{1, 2, 3} }},
		{name: "negative version", mutate: func(d map[string]any) { d["toolboxVersion"] = []int{-1, 0} }},
		{name: "app missing field", mutate: func(d map[string]any) {
			d["appLibrary"] = map[string]any{"a": map[string]any{"appPath": "a.exe"}}
		}},
		{name: "category missing apps", mutate: func(d map[string]any) {
			d["categories"] = []any{map[string]any{"name": "x"}}
		}},
		{name: "duplicate category", mutate: func(d map[string]any) {
			d["categories"] = []any{
				map[string]any{"name": "x", "apps": []string{}},
				map[string]any{"name": "x", "apps": []string{}},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := base()
			tt.mutate(doc)
			data, err := json.Marshal(doc)
			require.NoError(t, err)
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, data, 0644))

			_, err = Load(path)

			assert.ErrorIs(t, err, ErrParseError)
		})
	}
}

func TestLoad_OptionalFieldsOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	doc := `{"lang":"en","headerText":"H","theme":{"type":"Solid","color":{"type":"RGB","r":0,"g":0,"b":0}},"appLibrary":{},"categories":[]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	c, err := Load(path)

	require.NoError(t, err)
	assert.Nil(t, c.Author)
	assert.Nil(t, c.ToolboxVersion)
}

func TestLoad_Valid(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "valid_config.json"))

	require.NoError(t, err)
	assert.Equal(t, "zh-CN", c.Lang)
	assert.Equal(t, "1.4", c.ToolboxVersion.String())
	assert.Equal(t, []string{"Editors", "Scripts", "Empty"}, c.CategoryNames())
	assert.ElementsMatch(t, []string{"notepad", "build"}, c.AppNames())

	app, ok := c.App("build")
	require.True(t, ok)
	assert.Equal(t, `--release "out dir"`, app.LaunchArgs)

	theme, ok := c.Theme.(RadialGradient)
	require.True(t, ok)
	assert.Equal(t, HSL{H: 210, S: 60, L: 40}, theme.From)
}

func TestLoad_ReadError_NotUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, '{', '}'}, 0644))

	_, err := Load(path)

	assert.ErrorIs(t, err, ErrReadError)
}
