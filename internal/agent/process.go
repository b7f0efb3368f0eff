package agent

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Process is a native agent running as a child process, reading states on
// stdin and answering on stdout. Its stderr is passed through.
type Process struct {
	*Native
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// StartProcess launches name with args.
func StartProcess(ctx context.Context, logger *zap.Logger, name string, args ...string) (*Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("agent: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("agent: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("agent: start %s: %w", name, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("agent", name), zap.Int("pid", cmd.Process.Pid))
	logger.Debug("agent started")
	return &Process{
		Native: NewNative(stdout, stdin, logger),
		cmd:    cmd,
		stdin:  stdin,
	}, nil
}

// Close closes the agent's stdin and waits for it to exit.
func (p *Process) Close() error {
	p.Native.Close()
	p.stdin.Close()
	return p.cmd.Wait()
}
