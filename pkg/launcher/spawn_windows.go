//go:build windows

package launcher

import (
	"os"
	"os/exec"
	"syscall"
)

// Spawn starts the command with its raw command line and creation flags.
// Standard streams are left unset so the child inherits none of ours.
func (s *ProcessSpawner) Spawn(c Command) error {
	path := c.Path
	if comspec := os.Getenv("ComSpec"); comspec != "" && path == "cmd.exe" {
		path = comspec
	}

	cmd := exec.Command(path)
	cmd.Dir = c.Dir
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine:       c.CmdLine,
		CreationFlags: c.CreationFlags,
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
