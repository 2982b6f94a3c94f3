package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var errBlankName = errors.New("name must not be empty")

// checkName rejects names that are empty after trimming whitespace.
func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalidName(name, errBlankName)
	}
	return nil
}

// AddApp registers app under name.
func (c *Catalog) AddApp(name string, app App) error {
	if err := checkName(name); err != nil {
		return err
	}
	if _, ok := c.apps[name]; ok {
		return appExist(name)
	}
	c.apps[name] = app
	return nil
}

// RenameApp moves the app stored under oldName to newName and rewrites
// every category reference. Renaming an app to its own name is a no-op.
func (c *Catalog) RenameApp(oldName, newName string) error {
	app, ok := c.apps[oldName]
	if !ok {
		return appNotExist(oldName)
	}
	if oldName == newName {
		return nil
	}
	if err := checkName(newName); err != nil {
		return err
	}
	if _, ok := c.apps[newName]; ok {
		return appExist(newName)
	}

	delete(c.apps, oldName)
	c.apps[newName] = app

	for i := range c.categories {
		for j, name := range c.categories[i].Apps {
			if name == oldName {
				c.categories[i].Apps[j] = newName
			}
		}
	}
	return nil
}

// UpdateApp replaces the metadata of an existing app.
func (c *Catalog) UpdateApp(name string, app App) error {
	if _, ok := c.apps[name]; !ok {
		return appNotExist(name)
	}
	c.apps[name] = app
	return nil
}

// RemoveApp deletes an app and every category reference to it.
func (c *Catalog) RemoveApp(name string) error {
	if _, ok := c.apps[name]; !ok {
		return appNotExist(name)
	}
	delete(c.apps, name)

	for i := range c.categories {
		c.categories[i].Apps = removeName(c.categories[i].Apps, name)
	}
	return nil
}

// App returns the app stored under name.
func (c *Catalog) App(name string) (App, bool) {
	app, ok := c.apps[name]
	return app, ok
}

// AppNames returns every app name, sorted.
func (c *Catalog) AppNames() []string {
	names := make([]string, 0, len(c.apps))
	for name := range c.apps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddCategory appends an empty category.
func (c *Catalog) AddCategory(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if c.categoryIndex(name) >= 0 {
		return categoryExist(name)
	}
	c.categories = append(c.categories, Category{Name: name, Apps: []string{}})
	return nil
}

// RemoveCategory deletes a category. The apps it listed stay registered.
func (c *Catalog) RemoveCategory(name string) error {
	idx := c.categoryIndex(name)
	if idx < 0 {
		return categoryNotExist(name)
	}
	c.categories = append(c.categories[:idx], c.categories[idx+1:]...)
	return nil
}

// Category returns a copy of the named category.
func (c *Catalog) Category(name string) (Category, bool) {
	idx := c.categoryIndex(name)
	if idx < 0 {
		return Category{}, false
	}
	return c.categories[idx].clone(), true
}

// Categories returns a copy of every category in display order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.clone()
	}
	return out
}

// CategoryNames returns category names in display order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// UpdateCategories replaces the category list with the named categories in
// the given order. Categories left out are dropped. Nothing changes on error.
func (c *Catalog) UpdateCategories(order []string) error {
	seen := make(map[string]bool, len(order))
	next := make([]Category, 0, len(order))
	for _, name := range order {
		if seen[name] {
			return categoryExist(name)
		}
		seen[name] = true

		idx := c.categoryIndex(name)
		if idx < 0 {
			return categoryNotExist(name)
		}
		next = append(next, c.categories[idx])
	}
	c.categories = next
	return nil
}

// RenameCategory renames a category in place, keeping its position.
func (c *Catalog) RenameCategory(oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	if err := checkName(newName); err != nil {
		return err
	}
	if c.categoryIndex(newName) >= 0 {
		return categoryExist(newName)
	}
	idx := c.categoryIndex(oldName)
	if idx < 0 {
		return categoryNotExist(oldName)
	}
	c.categories[idx].Name = newName
	return nil
}

// AddAppToCategory appends app to a category. The category is checked
// first, then the app, then membership.
func (c *Catalog) AddAppToCategory(app, category string) error {
	idx := c.categoryIndex(category)
	if idx < 0 {
		return categoryNotExist(category)
	}
	if _, ok := c.apps[app]; !ok {
		return appNotExist(app)
	}
	if c.categories[idx].indexOf(app) >= 0 {
		return &Error{Kind: KindAppExistInCategory, App: app, Category: category}
	}
	c.categories[idx].Apps = append(c.categories[idx].Apps, app)
	return nil
}

// RemoveAppFromCategory drops app from a category, with the same check
// order as AddAppToCategory.
func (c *Catalog) RemoveAppFromCategory(app, category string) error {
	idx := c.categoryIndex(category)
	if idx < 0 {
		return categoryNotExist(category)
	}
	if _, ok := c.apps[app]; !ok {
		return appNotExist(app)
	}
	if c.categories[idx].indexOf(app) < 0 {
		return &Error{Kind: KindAppNotExistInCategory, App: app, Category: category}
	}
	c.categories[idx].Apps = removeName(c.categories[idx].Apps, app)
	return nil
}

// UpdateAppsInCategory replaces the app list of a category. Every name must
// be registered and listed once; nothing changes on error.
func (c *Catalog) UpdateAppsInCategory(apps []string, category string) error {
	idx := c.categoryIndex(category)
	if idx < 0 {
		return categoryNotExist(category)
	}

	seen := make(map[string]bool, len(apps))
	next := make([]string, 0, len(apps))
	for _, name := range apps {
		if _, ok := c.apps[name]; !ok {
			return appNotExist(name)
		}
		if seen[name] {
			return &Error{Kind: KindAppExistInCategory, App: name, Category: category}
		}
		seen[name] = true
		next = append(next, name)
	}
	c.categories[idx].Apps = next
	return nil
}

// Validate checks the cross-reference rules: every category entry names a
// registered app, category names are unique and no category lists an app
// twice.
func (c *Catalog) Validate() error {
	categories := make(map[string]bool, len(c.categories))
	for _, cat := range c.categories {
		if err := checkName(cat.Name); err != nil {
			return err
		}
		if categories[cat.Name] {
			return categoryExist(cat.Name)
		}
		categories[cat.Name] = true

		members := make(map[string]bool, len(cat.Apps))
		for _, app := range cat.Apps {
			if _, ok := c.apps[app]; !ok {
				return fmt.Errorf("category %q: %w", cat.Name, appNotExist(app))
			}
			if members[app] {
				return &Error{Kind: KindAppExistInCategory, App: app, Category: cat.Name}
			}
			members[app] = true
		}
	}
	for name := range c.apps {
		if err := checkName(name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) categoryIndex(name string) int {
	for i, cat := range c.categories {
		if cat.Name == name {
			return i
		}
	}
	return -1
}

func removeName(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
