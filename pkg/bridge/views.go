package bridge

import (
	"time"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/catalog"
)

// AppView is an app record with its catalog name inlined, as shown to the UI.
type AppView struct {
	Name       string `json:"name"`
	AppPath    string `json:"appPath"`
	LaunchArgs string `json:"launchArgs"`
	WorkingDir string `json:"workingDir"`
	Desc       string `json:"desc"`
	IconURL    string `json:"iconUrl"`
}

// NewAppView inlines name into a copy of app.
func NewAppView(name string, app catalog.App) AppView {
	return AppView{
		Name:       name,
		AppPath:    app.AppPath,
		LaunchArgs: app.LaunchArgs,
		WorkingDir: app.WorkingDir,
		Desc:       app.Desc,
		IconURL:    app.IconURL,
	}
}

// App strips the name back off.
func (v AppView) App() catalog.App {
	return catalog.App{
		AppPath:    v.AppPath,
		LaunchArgs: v.LaunchArgs,
		WorkingDir: v.WorkingDir,
		Desc:       v.Desc,
		IconURL:    v.IconURL,
	}
}

// CatalogBasicInfo is the settings-UI view of the catalog.
type CatalogBasicInfo = catalog.BasicInfo

// EventType discriminates events pushed to UI clients.
type EventType string

const (
	EventWindowShow     EventType = "window.show"
	EventCatalogChanged EventType = "catalog.changed"
)

// Event is the envelope for server-initiated messages.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// CatalogChangedData is the payload for catalog.changed events.
type CatalogChangedData struct {
	Command string `json:"command"`
}

// NewEvent stamps an event with the current time.
func NewEvent(t EventType, data any) Event {
	return Event{Type: t, Timestamp: time.Now().UTC(), Data: data}
}
