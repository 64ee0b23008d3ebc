//go:build darwin

package platform

import (
	"errors"

	"golang.org/x/sys/unix"

	apperrors "tomatoclock/internal/infrastructure/errors"
	"tomatoclock/internal/types"
)

// DarwinAPI implements ProcessAPI for macOS platform
type DarwinAPI struct{}

// NewDarwinAPI creates a new macOS API instance
func NewDarwinAPI() *DarwinAPI {
	return &DarwinAPI{}
}

// NewProcessAPI creates a new ProcessAPI instance for macOS
func NewProcessAPI() ProcessAPI {
	return NewDarwinAPI()
}

// ListProcesses enumerates running processes via the kern.proc.all sysctl.
// The kernel reports names truncated to MAXCOMLEN (16 characters); matching
// stays case-insensitive on the truncated name.
func (d *DarwinAPI) ListProcesses() ([]types.ProcessInfo, error) {
	const op = "platform.ListProcesses"

	procs, err := unix.SysctlKinfoProcSlice("kern.proc.all")
	if err != nil {
		return nil, apperrors.NewAppError(op, err, apperrors.ErrCodeUnknown)
	}

	processes := make([]types.ProcessInfo, 0, len(procs))
	for _, p := range procs {
		pid := p.Proc.P_pid
		if pid <= 0 {
			continue
		}
		name := commString(p.Proc.P_comm[:])
		if name == "" {
			continue
		}
		processes = append(processes, types.ProcessInfo{
			Name: name,
			PID:  uint32(pid),
		})
	}
	return processes, nil
}

// commString converts a NUL-terminated p_comm buffer to a Go string.
func commString(comm []int8) string {
	buf := make([]byte, 0, len(comm))
	for _, c := range comm {
		if c == 0 {
			break
		}
		buf = append(buf, byte(c))
	}
	return string(buf)
}

// KillPID sends SIGKILL. EPERM maps to a permission error so callers can
// surface the elevated-privileges hint.
func (d *DarwinAPI) KillPID(pid uint32) error {
	const op = "platform.KillPID"

	if err := unix.Kill(int(pid), unix.SIGKILL); err != nil {
		code := apperrors.ErrCodeKillFailed
		if errors.Is(err, unix.EPERM) {
			code = apperrors.ErrCodePermission
		}
		return apperrors.NewAppError(op, err, code)
	}
	return nil
}
