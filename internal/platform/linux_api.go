//go:build linux

package platform

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	apperrors "tomatoclock/internal/infrastructure/errors"
	"tomatoclock/internal/types"
)

// LinuxAPI implements ProcessAPI for Linux platform
type LinuxAPI struct{}

// NewLinuxAPI creates a new Linux API instance
func NewLinuxAPI() *LinuxAPI {
	return &LinuxAPI{}
}

// NewProcessAPI creates a new ProcessAPI instance for Linux
func NewProcessAPI() ProcessAPI {
	return NewLinuxAPI()
}

// ListProcesses scans /proc for numeric entries. Processes that vanish
// between the directory listing and the comm read are skipped.
func (l *LinuxAPI) ListProcesses() ([]types.ProcessInfo, error) {
	const op = "platform.ListProcesses"

	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil, apperrors.NewAppError(op, err, apperrors.ErrCodeUnknown)
	}

	var processes []types.ProcessInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.ParseUint(entry.Name(), 10, 32)
		if err != nil {
			continue
		}
		comm, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "comm"))
		if err != nil {
			continue
		}
		exePath, _ := os.Readlink(filepath.Join("/proc", entry.Name(), "exe"))
		processes = append(processes, types.ProcessInfo{
			Name:    strings.TrimSpace(string(comm)),
			PID:     uint32(pid),
			ExePath: exePath,
		})
	}
	return processes, nil
}

// KillPID sends SIGKILL. EPERM maps to a permission error so callers can
// surface the elevated-privileges hint.
func (l *LinuxAPI) KillPID(pid uint32) error {
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
