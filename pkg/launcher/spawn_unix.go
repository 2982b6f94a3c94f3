//go:build unix

package launcher

import (
	"os/exec"
	"syscall"
)

// Spawn starts the command in its own process group and reaps it in the
// background. Standard streams go to the null device.
func (s *ProcessSpawner) Spawn(c Command) error {
	cmd := exec.Command(c.Path, c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
