//go:build unix

package batch

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// command starts the solver in its own process group so that cancellation also reaches
// any helper processes it spawns.
func command(ctx context.Context, executable, input string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, executable, input)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
		if errors.Is(err, unix.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
	return cmd
}
