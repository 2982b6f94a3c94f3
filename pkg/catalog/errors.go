package catalog

import (
	"errors"
	"fmt"
)

// Kind classifies catalog and store failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindFileNotExist
	KindReadError
	KindWriteError
	KindParseError
	KindAppExist
	KindAppNotExist
	KindCategoryExist
	KindCategoryNotExist
	KindAppExistInCategory
	KindAppNotExistInCategory
	KindInvalidName
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindFileNotExist:
		return "FileNotExist"
	case KindReadError:
		return "ReadError"
	case KindWriteError:
		return "WriteError"
	case KindParseError:
		return "ParseError"
	case KindAppExist:
		return "AppExist"
	case KindAppNotExist:
		return "AppNotExist"
	case KindCategoryExist:
		return "CategoryExist"
	case KindCategoryNotExist:
		return "CategoryNotExist"
	case KindAppExistInCategory:
		return "AppExistInCategory"
	case KindAppNotExistInCategory:
		return "AppNotExistInCategory"
	case KindInvalidName:
		return "InvalidName"
	default:
		return "Unknown"
	}
}

// Error is a kind-tagged catalog error. App and Category carry the names the
// failure refers to (InvalidName uses App for either kind of name), Path the
// config file involved and Err the underlying io or json cause.
type Error struct {
	Kind     Kind
	App      string
	Category string
	Path     string
	Err      error
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrFileNotExist          = &Error{Kind: KindFileNotExist}
	ErrReadError             = &Error{Kind: KindReadError}
	ErrWriteError            = &Error{Kind: KindWriteError}
	ErrParseError            = &Error{Kind: KindParseError}
	ErrAppExist              = &Error{Kind: KindAppExist}
	ErrAppNotExist           = &Error{Kind: KindAppNotExist}
	ErrCategoryExist         = &Error{Kind: KindCategoryExist}
	ErrCategoryNotExist      = &Error{Kind: KindCategoryNotExist}
	ErrAppExistInCategory    = &Error{Kind: KindAppExistInCategory}
	ErrAppNotExistInCategory = &Error{Kind: KindAppNotExistInCategory}
	ErrInvalidName           = &Error{Kind: KindInvalidName}
)

func (e *Error) Error() string {
	path := e.Path
	if path == "" {
		path = "<unknown>"
	}
	switch e.Kind {
	case KindParseError:
		return fmt.Sprintf("failed to parse config file '%s': %v", path, e.Err)
	case KindReadError:
		return fmt.Sprintf("failed to read config file '%s': %v", path, e.Err)
	case KindWriteError:
		return fmt.Sprintf("failed to write config file '%s': %v", path, e.Err)
	case KindFileNotExist:
		return fmt.Sprintf("config file '%s' does not exist", path)
	case KindAppExist:
		return fmt.Sprintf("app '%s' already exists", e.App)
	case KindAppNotExist:
		return fmt.Sprintf("app '%s' does not exist", e.App)
	case KindCategoryExist:
		return fmt.Sprintf("category '%s' already exists", e.Category)
	case KindCategoryNotExist:
		return fmt.Sprintf("category '%s' does not exist", e.Category)
	case KindAppExistInCategory:
		return fmt.Sprintf("app '%s' already exists in category '%s'", e.App, e.Category)
	case KindAppNotExistInCategory:
		return fmt.Sprintf("app '%s' does not exist in category '%s'", e.App, e.Category)
	case KindInvalidName:
		return fmt.Sprintf("invalid name %q: %v", e.App, e.Err)
	default:
		return "unknown catalog error"
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a catalog error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of a catalog error, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func appExist(name string) error {
	return &Error{Kind: KindAppExist, App: name}
}

func appNotExist(name string) error {
	return &Error{Kind: KindAppNotExist, App: name}
}

func categoryExist(name string) error {
	return &Error{Kind: KindCategoryExist, Category: name}
}

func categoryNotExist(name string) error {
	return &Error{Kind: KindCategoryNotExist, Category: name}
}

func invalidName(name string, err error) error {
	return &Error{Kind: KindInvalidName, App: name, Err: err}
}
