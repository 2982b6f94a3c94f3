package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResponseType tags command responses so clients can tell them from events.
const ResponseType = "response"

// Request is one command invocation from the UI.
type Request struct {
	ID      string          `json:"id"`
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// Response answers a Request with the same ID. Error is set only when the
// command could not run at all; a command that ran and failed reports
// false or null in Result.
type Response struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

var (
	// ErrUnknownCommand is returned for command names with no handler.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidArgs is returned when command arguments do not decode.
	ErrInvalidArgs = errors.New("invalid arguments")
)

type args map[string]json.RawMessage

// handlerFunc runs a command. ok reports whether the command succeeded,
// which is what the metrics count; result is what the UI receives.
type handlerFunc func(a args) (result any, ok bool, err error)

// Dispatcher routes named commands to the Service.
type Dispatcher struct {
	svc      *Service
	metrics  *Metrics
	logger   *zap.Logger
	handlers map[string]handlerFunc
}

// NewDispatcher creates a dispatcher over svc. metrics may be nil.
func NewDispatcher(svc *Service, metrics *Metrics, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dispatcher{
		svc:     svc,
		metrics: metrics,
		logger:  logger,
	}
	d.handlers = d.routes()
	return d
}

// Commands returns the supported command names, sorted.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs one request. It never panics on bad input; unknown commands
// and malformed arguments come back as an error response.
func (d *Dispatcher) Dispatch(req Request) Response {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	resp := Response{Type: ResponseType, ID: req.ID}
	start := time.Now()

	handler, ok := d.handlers[req.Command]
	if !ok {
		resp.Error = fmt.Sprintf("%v: %q", ErrUnknownCommand, req.Command)
		d.metrics.Observe("unknown", OutcomeError, time.Since(start))
		return resp
	}

	a := args{}
	if len(req.Args) > 0 && string(req.Args) != "null" {
		if err := json.Unmarshal(req.Args, &a); err != nil {
			resp.Error = fmt.Sprintf("%v: args must be an object: %v", ErrInvalidArgs, err)
			d.metrics.Observe(req.Command, OutcomeError, time.Since(start))
			return resp
		}
	}

	result, succeeded, err := handler(a)
	outcome := OutcomeOK
	switch {
	case err != nil:
		resp.Error = err.Error()
		outcome = OutcomeError
		if !errors.Is(err, ErrInvalidArgs) {
			outcome = OutcomeFailed
		}
	case !succeeded:
		outcome = OutcomeFailed
	}
	resp.Result = result

	elapsed := time.Since(start)
	d.metrics.Observe(req.Command, outcome, elapsed)
	d.logger.Debug("command handled",
		zap.String("id", req.ID),
		zap.String("command", req.Command),
		zap.String("outcome", outcome),
		zap.Duration("duration", elapsed),
	)
	return resp
}

// Known reports whether name is a supported command.
func (d *Dispatcher) Known(name string) bool {
	_, ok := d.handlers[name]
	return ok
}

// arg decodes a required argument.
func arg[T any](a args, name string) (T, error) {
	var v T
	raw, ok := a[name]
	if !ok {
		return v, fmt.Errorf("%w: missing argument %q", ErrInvalidArgs, name)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: argument %q: %v", ErrInvalidArgs, name, err)
	}
	return v, nil
}

// boolResult adapts a boolean command.
func boolResult(ok bool) (any, bool, error) {
	return ok, ok, nil
}

// optional adapts a command whose failure is reported as null.
func optional[T any](v T, ok bool) (any, bool, error) {
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (d *Dispatcher) routes() map[string]handlerFunc {
	s := d.svc
	return map[string]handlerFunc{
		"load_config": func(args) (any, bool, error) {
			return boolResult(s.LoadConfig())
		},
		"get_config_basic_info": func(args) (any, bool, error) {
			return s.GetConfigBasicInfo(), true, nil
		},
		"set_config_basic_info": func(a args) (any, bool, error) {
			info, err := arg[CatalogBasicInfo](a, "basicInfo")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.SetConfigBasicInfo(info))
		},
		"launch_app": func(a args) (any, bool, error) {
			name, err := arg[string](a, "appName")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.LaunchApp(name))
		},
		"get_category_list": func(args) (any, bool, error) {
			return s.GetCategoryList(), true, nil
		},
		"get_all_app_list": func(args) (any, bool, error) {
			return s.GetAllAppList(), true, nil
		},
		"get_app_list_by_category": func(a args) (any, bool, error) {
			category, err := arg[string](a, "category")
			if err != nil {
				return nil, false, err
			}
			v, ok := s.GetAppListByCategory(category)
			return optional(v, ok)
		},
		"get_available_app_list_by_category": func(a args) (any, bool, error) {
			category, err := arg[string](a, "category")
			if err != nil {
				return nil, false, err
			}
			v, ok := s.GetAvailableAppListByCategory(category)
			return optional(v, ok)
		},
		"add_category": func(a args) (any, bool, error) {
			category, err := arg[string](a, "category")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.AddCategory(category))
		},
		"rename_category": func(a args) (any, bool, error) {
			category, err := arg[string](a, "category")
			if err != nil {
				return nil, false, err
			}
			newCategory, err := arg[string](a, "newCategory")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.RenameCategory(category, newCategory))
		},
		"update_categories": func(a args) (any, bool, error) {
			names, err := arg[[]string](a, "newCategories")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.UpdateCategories(names))
		},
		"remove_category": func(a args) (any, bool, error) {
			category, err := arg[string](a, "category")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.RemoveCategory(category))
		},
		"add_app_to_category": func(a args) (any, bool, error) {
			app, err := arg[string](a, "app")
			if err != nil {
				return nil, false, err
			}
			category, err := arg[string](a, "category")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.AddAppToCategory(app, category))
		},
		"add_app_list_to_category": func(a args) (any, bool, error) {
			apps, err := arg[[]string](a, "apps")
			if err != nil {
				return nil, false, err
			}
			category, err := arg[string](a, "category")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.AddAppListToCategory(apps, category))
		},
		"update_apps_in_category": func(a args) (any, bool, error) {
			apps, err := arg[[]string](a, "apps")
			if err != nil {
				return nil, false, err
			}
			category, err := arg[string](a, "category")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.UpdateAppsInCategory(apps, category))
		},
		"remove_app_from_category": func(a args) (any, bool, error) {
			app, err := arg[string](a, "app")
			if err != nil {
				return nil, false, err
			}
			category, err := arg[string](a, "category")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.RemoveAppFromCategory(app, category))
		},
		"add_app": func(a args) (any, bool, error) {
			view, err := arg[AppView](a, "app")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.AddApp(view))
		},
		"update_app": func(a args) (any, bool, error) {
			name, err := arg[string](a, "appName")
			if err != nil {
				return nil, false, err
			}
			view, err := arg[AppView](a, "app")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.UpdateApp(name, view))
		},
		"remove_app": func(a args) (any, bool, error) {
			name, err := arg[string](a, "appName")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.RemoveApp(name))
		},
		"load_icon_from_file": func(a args) (any, bool, error) {
			path, err := arg[string](a, "path")
			if err != nil {
				return nil, false, err
			}
			v, ok := s.LoadIconFromFile(path)
			return optional(v, ok)
		},
		"load_icon_from_app": func(a args) (any, bool, error) {
			path, err := arg[string](a, "path")
			if err != nil {
				return nil, false, err
			}
			v, ok := s.LoadIconFromApp(path)
			return optional(v, ok)
		},
		"get_relative_path": func(a args) (any, bool, error) {
			path, err := arg[string](a, "path")
			if err != nil {
				return nil, false, err
			}
			v, ok := s.GetRelativePath(path)
			return optional(v, ok)
		},
		"show_window": func(args) (any, bool, error) {
			if err := s.ShowWindow(); err != nil {
				return nil, false, err
			}
			return nil, true, nil
		},
		"get_lang": func(args) (any, bool, error) {
			return s.GetLang(), true, nil
		},
		"set_lang": func(a args) (any, bool, error) {
			lang, err := arg[string](a, "lang")
			if err != nil {
				return nil, false, err
			}
			return boolResult(s.SetLang(lang))
		},
		"get_theme_presets": func(args) (any, bool, error) {
			return s.GetThemePresets(), true, nil
		},
	}
}
