//go:build !windows

package icon

// FromExecutable returns ErrUnsupported outside Windows.
func FromExecutable(path string) (string, error) {
	return "", ErrUnsupported
}
