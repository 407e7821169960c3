package handler

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/model"
	"github.com/Atharva062006/OfflineJudge/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// How long Wait keeps draining stdout/stderr after the child exits while a
// leftover descendant still holds the pipes.
const pipeDrainDelay = 500 * time.Millisecond

// Runner executes one invocation with the given stdin under a wall-clock limit.
type Runner interface {
	Run(ctx context.Context, inv model.Invocation, input string, timeLimit time.Duration) model.ExecutionResult
}

// ProcessRunner spawns a fresh child process per call. A nil Env inherits the
// judge's environment.
type ProcessRunner struct {
	Env []string
}

func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

func (r *ProcessRunner) Run(ctx context.Context, inv model.Invocation, input string, timeLimit time.Duration) model.ExecutionResult {
	if len(inv.Args) == 0 {
		return launchFailure(errors.New("empty invocation"))
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(inv.Args[0], inv.Args[1:]...)
	cmd.Dir = inv.Dir
	cmd.Env = r.Env
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.WaitDelay = pipeDrainDelay

	start := time.Now()
	if err := cmd.Start(); err != nil {
		util.ErrorLog(err, "ProcessRunner.Run(): start")
		return launchFailure(err)
	}

	oneErr := util.OneError{}
	stop := make(chan struct{})
	daemonDone := make(chan struct{})
	go func() {
		defer close(daemonDone)
		RunDaemon(ctx, stop, cmd.Process, timeLimit, &oneErr)
	}()

	waitErr := cmd.Wait()
	close(stop)
	<-daemonDone
	// descendants left behind by the leader must not outlive this test case
	StopProcess(cmd.Process)

	util.DebugLog("process finished", nil,
		zap.Strings("args", inv.Args),
		zap.Duration("elapsed", time.Since(start)),
		zap.NamedError("wait", waitErr),
	)

	err := oneErr.Get()
	if errors.Is(err, config.ErrTLE) && exitedOnItsOwn(cmd.ProcessState) {
		// the deadline fired while the finished leader was being reaped
		err = nil
	}
	if err != nil {
		if errors.Is(err, config.ErrTLE) {
			return model.ExecutionResult{Kind: model.TimedOut}
		}
		return model.ExecutionResult{
			Kind:     model.Completed,
			ExitCode: -1,
			Stdout:   stdout.String(),
			Stderr:   appendLine(stderr.String(), err.Error()),
		}
	}

	res := model.ExecutionResult{
		Kind:   model.Completed,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) && !errors.Is(waitErr, exec.ErrWaitDelay) {
		res.ExitCode = -1
		res.Stderr = appendLine(res.Stderr, waitErr.Error())
	}
	return res
}

// exitedOnItsOwn reports whether the leader exited normally rather than by a
// signal.
func exitedOnItsOwn(state *os.ProcessState) bool {
	if state == nil {
		return false
	}
	status, ok := state.Sys().(syscall.WaitStatus)
	return ok && status.Exited()
}

// launchFailure reports a child that could not be spawned as a runtime error
// so the test loop does not need a separate path for it.
func launchFailure(err error) model.ExecutionResult {
	return model.ExecutionResult{
		Kind:     model.Completed,
		ExitCode: -1,
		Stderr:   err.Error(),
	}
}

func appendLine(s, line string) string {
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s + line
}
