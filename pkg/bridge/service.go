// Package bridge is the command surface the UI talks to. Service serializes
// every command on one catalog lock and persists after each successful
// mutation; Dispatcher maps named JSON commands onto it; the stdio and HTTP
// transports carry those commands to and from the front-end.
package bridge

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/catalog"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/icon"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/launcher"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/utils"
)

// SupportedLangs lists the UI languages, default first.
var SupportedLangs = []string{"en", "zh-CN"}

var langMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(SupportedLangs))
	for i, l := range SupportedLangs {
		tags[i] = language.MustParse(l)
	}
	return language.NewMatcher(tags)
}()

// AppLauncher starts an app as a detached process.
type AppLauncher interface {
	Launch(app catalog.App) error
}

// IconLoader turns files into data URLs.
type IconLoader interface {
	FromFile(path string) (string, error)
	FromExecutable(path string) (string, error)
}

// Window is the UI window the backend can bring to front.
type Window interface {
	Show() error
}

// Publisher receives events for connected UI clients.
type Publisher interface {
	Broadcast(e Event)
}

// Options wires the collaborators of a Service. Nil fields get defaults:
// the real launcher and icon extractor, no window, no events and a no-op
// logger.
type Options struct {
	Launcher   AppLauncher
	Icons      IconLoader
	Window     Window
	Events     Publisher
	Logger     *zap.Logger
	WorkingDir func() (string, error)
}

type shellIcons struct{}

func (shellIcons) FromFile(path string) (string, error)       { return icon.FromFile(path) }
func (shellIcons) FromExecutable(path string) (string, error) { return icon.FromExecutable(path) }

// Service owns the catalog. Every method takes the catalog lock for its
// whole duration, including the save that follows a mutation.
type Service struct {
	mu     sync.Mutex
	cat    *catalog.Catalog
	path   string
	opts   Options
	logger *zap.Logger
}

// NewService creates a service over an empty default catalog that persists
// to path. Call LoadConfig to read the file.
func NewService(path string, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Launcher == nil {
		opts.Launcher = launcher.New(opts.Logger)
	}
	if opts.Icons == nil {
		opts.Icons = shellIcons{}
	}
	if opts.WorkingDir == nil {
		opts.WorkingDir = os.Getwd
	}
	if path == "" {
		path = catalog.DefaultPath
	}
	return &Service{
		cat:    catalog.New(),
		path:   path,
		opts:   opts,
		logger: opts.Logger,
	}
}

// Path returns the catalog file the service persists to.
func (s *Service) Path() string {
	return s.path
}

// SetWindow attaches the UI window.
func (s *Service) SetWindow(w Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Window = w
}

// SetPublisher attaches the event sink for catalog.changed events.
func (s *Service) SetPublisher(p Publisher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Events = p
}

// saveLocked persists the catalog (caller must hold lock).
func (s *Service) saveLocked(command string) bool {
	if err := catalog.Save(s.cat, s.path); err != nil {
		// The in-memory change is kept; the file is stale until the next save.
		s.logger.Error("failed to persist catalog",
			zap.String("command", command),
			zap.Error(err),
		)
		return false
	}
	return true
}

// mutate runs fn on the catalog and persists on success.
func (s *Service) mutate(command string, fn func(c *catalog.Catalog) error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.cat); err != nil {
		s.logger.Info("command rejected",
			zap.String("command", command),
			zap.String("kind", catalog.KindOf(err).String()),
			zap.Error(err),
		)
		return false
	}
	if !s.saveLocked(command) {
		return false
	}

	if s.opts.Events != nil {
		s.opts.Events.Broadcast(NewEvent(EventCatalogChanged, CatalogChangedData{Command: command}))
	}
	return true
}

// LoadConfig replaces the catalog with the file contents, or writes a
// default catalog when there is no file.
func (s *Service) LoadConfig() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := catalog.Load(s.path)
	switch {
	case err == nil:
		s.cat = c
		s.logger.Info("catalog loaded",
			zap.String("path", s.path),
			zap.Int("apps", len(c.AppNames())),
			zap.Int("categories", len(c.CategoryNames())),
		)
		return true
	case errors.Is(err, catalog.ErrFileNotExist):
		s.cat = catalog.New()
		s.logger.Info("no catalog file, writing defaults", zap.String("path", s.path))
		return s.saveLocked("load_config")
	default:
		s.logger.Error("failed to load catalog", zap.Error(err))
		return false
	}
}

// GetConfigBasicInfo returns header text, author, version and theme.
func (s *Service) GetConfigBasicInfo() CatalogBasicInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cat.BasicInfo()
}

// SetConfigBasicInfo overwrites header text, author, version and theme.
func (s *Service) SetConfigBasicInfo(info CatalogBasicInfo) bool {
	return s.mutate("set_config_basic_info", func(c *catalog.Catalog) error {
		c.SetBasicInfo(info)
		return nil
	})
}

// LaunchApp starts the named app. Failures are logged and reported as false.
func (s *Service) LaunchApp(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.cat.App(name)
	if !ok {
		s.logger.Info("launch of unknown app", zap.String("app", name))
		return false
	}
	if err := s.opts.Launcher.Launch(app); err != nil {
		s.logger.Warn("launch failed", zap.String("app", name), zap.Error(err))
		return false
	}
	s.logger.Info("app launched", zap.String("app", name))
	return true
}

// GetCategoryList returns category names in display order.
func (s *Service) GetCategoryList() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cat.CategoryNames()
}

// GetAllAppList returns every registered app, sorted by name.
func (s *Service) GetAllAppList() []AppView {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.cat.AppNames()
	views := make([]AppView, 0, len(names))
	for _, name := range names {
		app, _ := s.cat.App(name)
		views = append(views, NewAppView(name, app))
	}
	return views
}

// GetAppListByCategory returns the apps of a category in order. The second
// result is false when the category is missing or lists an unknown app.
func (s *Service) GetAppListByCategory(category string) ([]AppView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.cat.Category(category)
	if !ok {
		return nil, false
	}
	views := make([]AppView, 0, len(cat.Apps))
	for _, name := range cat.Apps {
		app, ok := s.cat.App(name)
		if !ok {
			return nil, false
		}
		views = append(views, NewAppView(name, app))
	}
	return views, true
}

// GetAvailableAppListByCategory returns registered apps the category does
// not list yet, sorted by name.
func (s *Service) GetAvailableAppListByCategory(category string) ([]AppView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.cat.Category(category)
	if !ok {
		return nil, false
	}
	listed := make(map[string]bool, len(cat.Apps))
	for _, name := range cat.Apps {
		listed[name] = true
	}

	views := []AppView{}
	for _, name := range s.cat.AppNames() {
		if listed[name] {
			continue
		}
		app, _ := s.cat.App(name)
		views = append(views, NewAppView(name, app))
	}
	return views, true
}

// AddCategory appends an empty category.
func (s *Service) AddCategory(category string) bool {
	return s.mutate("add_category", func(c *catalog.Catalog) error {
		return c.AddCategory(category)
	})
}

// RenameCategory renames a category in place.
func (s *Service) RenameCategory(category, newCategory string) bool {
	return s.mutate("rename_category", func(c *catalog.Catalog) error {
		return c.RenameCategory(category, newCategory)
	})
}

// UpdateCategories reorders and filters the category list.
func (s *Service) UpdateCategories(newCategories []string) bool {
	return s.mutate("update_categories", func(c *catalog.Catalog) error {
		return c.UpdateCategories(newCategories)
	})
}

// RemoveCategory deletes a category; its apps stay registered.
func (s *Service) RemoveCategory(category string) bool {
	return s.mutate("remove_category", func(c *catalog.Catalog) error {
		return c.RemoveCategory(category)
	})
}

// AddAppToCategory appends one app to a category.
func (s *Service) AddAppToCategory(app, category string) bool {
	return s.mutate("add_app_to_category", func(c *catalog.Catalog) error {
		return c.AddAppToCategory(app, category)
	})
}

// AddAppListToCategory appends apps one by one and stops at the first
// failure. Apps added before the failure stay in memory but are not saved.
func (s *Service) AddAppListToCategory(apps []string, category string) bool {
	return s.mutate("add_app_list_to_category", func(c *catalog.Catalog) error {
		for _, app := range apps {
			if err := c.AddAppToCategory(app, category); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateAppsInCategory replaces the app list of a category.
func (s *Service) UpdateAppsInCategory(apps []string, category string) bool {
	return s.mutate("update_apps_in_category", func(c *catalog.Catalog) error {
		return c.UpdateAppsInCategory(apps, category)
	})
}

// RemoveAppFromCategory drops one app from a category.
func (s *Service) RemoveAppFromCategory(app, category string) bool {
	return s.mutate("remove_app_from_category", func(c *catalog.Catalog) error {
		return c.RemoveAppFromCategory(app, category)
	})
}

// AddApp registers a new app under view.Name.
func (s *Service) AddApp(view AppView) bool {
	return s.mutate("add_app", func(c *catalog.Catalog) error {
		return c.AddApp(view.Name, view.App())
	})
}

// UpdateApp replaces the app stored under name. When view.Name differs the
// app is renamed first.
func (s *Service) UpdateApp(name string, view AppView) bool {
	return s.mutate("update_app", func(c *catalog.Catalog) error {
		if view.Name != name {
			if err := c.RenameApp(name, view.Name); err != nil {
				return err
			}
		}
		return c.UpdateApp(view.Name, view.App())
	})
}

// RemoveApp unregisters an app and drops it from every category.
func (s *Service) RemoveApp(name string) bool {
	return s.mutate("remove_app", func(c *catalog.Catalog) error {
		return c.RemoveApp(name)
	})
}

// GetApp returns one app by name.
func (s *Service) GetApp(name string) (AppView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.cat.App(name)
	if !ok {
		return AppView{}, false
	}
	return NewAppView(name, app), true
}

// LoadIconFromFile returns an image file as a data URL.
func (s *Service) LoadIconFromFile(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url, err := s.opts.Icons.FromFile(path)
	if err != nil {
		s.logger.Info("icon file not loaded", zap.String("path", path), zap.Error(err))
		return "", false
	}
	return url, true
}

// LoadIconFromApp returns the shell icon of an executable as a PNG data URL.
func (s *Service) LoadIconFromApp(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	url, err := s.opts.Icons.FromExecutable(path)
	if err != nil {
		s.logger.Info("app icon not extracted", zap.String("path", path), zap.Error(err))
		return "", false
	}
	return url, true
}

// GetRelativePath returns an absolute path relative to the working
// directory, "." for the directory itself, or false when path is relative
// or lies outside it.
func (s *Service) GetRelativePath(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wd, err := s.opts.WorkingDir()
	if err != nil {
		s.logger.Warn("cannot determine working directory", zap.Error(err))
		return "", false
	}
	return utils.RelativePath(path, wd)
}

// ShowWindow brings the UI window to front.
func (s *Service) ShowWindow() error {
	s.mu.Lock()
	w := s.opts.Window
	s.mu.Unlock()

	if w == nil {
		return errors.New("Failed to show window: no window attached")
	}
	if err := w.Show(); err != nil {
		return fmt.Errorf("Failed to show window: %w", err)
	}
	return nil
}

// GetLang returns the UI language.
func (s *Service) GetLang() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cat.Lang
}

// SetLang switches the UI language. The tag is matched against
// SupportedLangs and stored in its canonical form.
func (s *Service) SetLang(lang string) bool {
	canonical, ok := MatchLang(lang)
	if !ok {
		s.logger.Info("unsupported language", zap.String("lang", lang))
		return false
	}
	return s.mutate("set_lang", func(c *catalog.Catalog) error {
		c.Lang = canonical
		return nil
	})
}

// MatchLang maps a BCP 47 tag onto one of SupportedLangs.
func MatchLang(lang string) (string, bool) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", false
	}
	_, idx, conf := langMatcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return SupportedLangs[idx], true
}

// GetThemePresets returns the built-in themes.
func (s *Service) GetThemePresets() []catalog.Preset {
	return catalog.Presets()
}
