//go:build !windows && !unix

package launcher

// Spawn always fails on platforms without a spawn strategy.
func (s *ProcessSpawner) Spawn(c Command) error {
	return ErrUnsupported
}
