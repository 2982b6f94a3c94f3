// Package catalog holds the toolbox application catalog: registered apps,
// ordered categories that reference them, and presentation settings.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// DefaultLang is the UI language of a new catalog.
	DefaultLang = "en"
	// DefaultHeaderText is the header shown by a new catalog.
	DefaultHeaderText = "Rapid Toolbox"
)

// App is a registered executable or script. Its name is the key it is
// stored under, not a field of the record.
type App struct {
	AppPath    string `json:"appPath"`
	LaunchArgs string `json:"launchArgs"` // Raw argument tail, never re-tokenized
	WorkingDir string `json:"workingDir"`
	Desc       string `json:"desc"`
	IconURL    string `json:"iconUrl"` // Usually a data: URL or empty
}

// UnmarshalJSON implements json.Unmarshaler; every field is required.
func (a *App) UnmarshalJSON(data []byte) error {
	var raw struct {
		AppPath    *string `json:"appPath"`
		LaunchArgs *string `json:"launchArgs"`
		WorkingDir *string `json:"workingDir"`
		Desc       *string `json:"desc"`
		IconURL    *string `json:"iconUrl"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	missing := missingFields(map[string]bool{
		"appPath":    raw.AppPath == nil,
		"launchArgs": raw.LaunchArgs == nil,
		"workingDir": raw.WorkingDir == nil,
		"desc":       raw.Desc == nil,
		"iconUrl":    raw.IconURL == nil,
	})
	if missing != nil {
		return fmt.Errorf("app: %w", missing)
	}

	*a = App{
		AppPath:    *raw.AppPath,
		LaunchArgs: *raw.LaunchArgs,
		WorkingDir: *raw.WorkingDir,
		Desc:       *raw.Desc,
		IconURL:    *raw.IconURL,
	}
	return nil
}

// Category is a named, ordered list of app names.
type Category struct {
	Name string   `json:"name"`
	Apps []string `json:"apps"`
}

// UnmarshalJSON implements json.Unmarshaler; both fields are required.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name *string   `json:"name"`
		Apps *[]string `json:"apps"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Name == nil || raw.Apps == nil {
		return errors.New(`category requires "name" and "apps"`)
	}

	c.Name = *raw.Name
	c.Apps = append([]string{}, (*raw.Apps)...)
	return nil
}

// MarshalJSON implements json.Marshaler. A nil app list is written as [].
func (c Category) MarshalJSON() ([]byte, error) {
	apps := c.Apps
	if apps == nil {
		apps = []string{}
	}
	return json.Marshal(struct {
		Name string   `json:"name"`
		Apps []string `json:"apps"`
	}{c.Name, apps})
}

func (c Category) clone() Category {
	return Category{Name: c.Name, Apps: append([]string{}, c.Apps...)}
}

func (c Category) indexOf(app string) int {
	for i, name := range c.Apps {
		if name == app {
			return i
		}
	}
	return -1
}

// ToolboxVersion is a (major, minor) pair written as a two-element array.
type ToolboxVersion struct {
	Major uint32
	Minor uint32
}

// String renders the version as "major.minor".
func (v ToolboxVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// MarshalJSON implements json.Marshaler.
func (v ToolboxVersion) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint32{v.Major, v.Minor})
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *ToolboxVersion) UnmarshalJSON(data []byte) error {
	var parts []uint32
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("toolboxVersion: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("toolboxVersion: expected [major, minor], got %d elements", len(parts))
	}
	v.Major, v.Minor = parts[0], parts[1]
	return nil
}

// BasicInfo is the subset of catalog settings edited by the settings UI.
type BasicInfo struct {
	HeaderText     string          `json:"headerText"`
	Author         *string         `json:"author"`
	ToolboxVersion *ToolboxVersion `json:"toolboxVersion"`
	Theme          Theme           `json:"theme"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *BasicInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		HeaderText     *string         `json:"headerText"`
		Author         *string         `json:"author"`
		ToolboxVersion *ToolboxVersion `json:"toolboxVersion"`
		Theme          json.RawMessage `json:"theme"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.HeaderText == nil {
		return errors.New(`basic info requires "headerText"`)
	}
	theme, err := DecodeTheme(raw.Theme)
	if err != nil {
		return err
	}

	*b = BasicInfo{
		HeaderText:     *raw.HeaderText,
		Author:         raw.Author,
		ToolboxVersion: raw.ToolboxVersion,
		Theme:          theme,
	}
	return nil
}

// Catalog is the root aggregate. The exported fields are plain settings;
// apps and categories are only reachable through methods that keep the
// cross-references consistent.
type Catalog struct {
	Lang           string
	HeaderText     string
	Author         *string
	ToolboxVersion *ToolboxVersion
	Theme          Theme

	apps       map[string]App
	categories []Category
}

// New creates an empty catalog with default settings.
func New() *Catalog {
	return &Catalog{
		Lang:       DefaultLang,
		HeaderText: DefaultHeaderText,
		Theme:      DefaultTheme(),
		apps:       make(map[string]App),
		categories: []Category{},
	}
}

// BasicInfo returns the settings-UI subset of the catalog.
func (c *Catalog) BasicInfo() BasicInfo {
	info := BasicInfo{
		HeaderText: c.HeaderText,
		Theme:      c.Theme,
	}
	if c.Author != nil {
		author := *c.Author
		info.Author = &author
	}
	if c.ToolboxVersion != nil {
		version := *c.ToolboxVersion
		info.ToolboxVersion = &version
	}
	return info
}

// SetBasicInfo overwrites header text, author, version and theme.
func (c *Catalog) SetBasicInfo(info BasicInfo) {
	c.HeaderText = info.HeaderText
	c.Author = nil
	if info.Author != nil {
		author := *info.Author
		c.Author = &author
	}
	c.ToolboxVersion = nil
	if info.ToolboxVersion != nil {
		version := *info.ToolboxVersion
		c.ToolboxVersion = &version
	}
	if info.Theme != nil {
		c.Theme = info.Theme
	}
}

type catalogJSON struct {
	Lang           string          `json:"lang"`
	HeaderText     string          `json:"headerText"`
	Author         *string         `json:"author"`
	ToolboxVersion *ToolboxVersion `json:"toolboxVersion"`
	Theme          Theme           `json:"theme"`
	AppLibrary     map[string]App  `json:"appLibrary"`
	Categories     []Category      `json:"categories"`
}

// MarshalJSON implements json.Marshaler.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	apps := c.apps
	if apps == nil {
		apps = map[string]App{}
	}
	categories := c.categories
	if categories == nil {
		categories = []Category{}
	}
	return json.Marshal(catalogJSON{
		Lang:           c.Lang,
		HeaderText:     c.HeaderText,
		Author:         c.Author,
		ToolboxVersion: c.ToolboxVersion,
		Theme:          c.Theme,
		AppLibrary:     apps,
		Categories:     categories,
	})
}

// UnmarshalJSON implements json.Unmarshaler. It checks the document shape
// only; use Validate for the cross-reference rules.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lang           *string         `json:"lang"`
		HeaderText     *string         `json:"headerText"`
		Author         *string         `json:"author"`
		ToolboxVersion *ToolboxVersion `json:"toolboxVersion"`
		Theme          json.RawMessage `json:"theme"`
		AppLibrary     *map[string]App `json:"appLibrary"`
		Categories     *[]Category     `json:"categories"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	missing := missingFields(map[string]bool{
		"lang":       raw.Lang == nil,
		"headerText": raw.HeaderText == nil,
		"appLibrary": raw.AppLibrary == nil,
		"categories": raw.Categories == nil,
	})
	if missing != nil {
		return fmt.Errorf("catalog: %w", missing)
	}

	theme, err := DecodeTheme(raw.Theme)
	if err != nil {
		return err
	}

	*c = Catalog{
		Lang:           *raw.Lang,
		HeaderText:     *raw.HeaderText,
		Author:         raw.Author,
		ToolboxVersion: raw.ToolboxVersion,
		Theme:          theme,
		apps:           *raw.AppLibrary,
		categories:     *raw.Categories,
	}
	if c.apps == nil {
		c.apps = make(map[string]App)
	}
	if c.categories == nil {
		c.categories = []Category{}
	}
	return nil
}

// missingFields reports the names flagged true, sorted, or nil.
func missingFields(fields map[string]bool) error {
	var names []string
	for name, missing := range fields {
		if missing {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	return fmt.Errorf("missing required fields: %s", strings.Join(names, ", "))
}
