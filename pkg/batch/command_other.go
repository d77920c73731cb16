//go:build !unix

package batch

import (
	"context"
	"os/exec"
)

func command(ctx context.Context, executable, input string) *exec.Cmd {
	return exec.CommandContext(ctx, executable, input)
}
