package handler

import (
	"context"
	"os"
	"time"

	"github.com/Atharva062006/OfflineJudge/config"
	"github.com/Atharva062006/OfflineJudge/util"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// StopProcess kills the whole process group led by process. The child is
// started with Setpgid, so its pgid equals its pid.
func StopProcess(process *os.Process) {
	if process == nil || process.Pid <= 0 {
		return
	}
	err := unix.Kill(-process.Pid, unix.SIGKILL)
	if err != nil && !errors.Is(err, unix.ESRCH) {
		util.ErrorLog(err, "StopProcess(): kill process group")
	}
}

// RunDaemon watches one child until stop is closed. When the wall-clock limit
// fires first it records ErrTLE and kills the process group; a cancelled ctx
// kills it as well.
func RunDaemon(ctx context.Context, stop <-chan struct{}, process *os.Process, timeLimit time.Duration, oneErr *util.OneError) {
	timer := time.NewTimer(timeLimit)
	defer timer.Stop()
	select {
	case <-timer.C:
		select {
		case <-stop:
			// Wait already returned; the process finished in time
			return
		default:
		}
		oneErr.Add(config.ErrTLE)
		StopProcess(process)
	case <-ctx.Done():
		oneErr.Add(ctx.Err())
		StopProcess(process)
	case <-stop:
	}
}
