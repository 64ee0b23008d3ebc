//go:build windows

package platform

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"

	apperrors "tomatoclock/internal/infrastructure/errors"
	"tomatoclock/internal/types"
)

// WindowsAPI implements ProcessAPI for Windows platform
type WindowsAPI struct{}

// NewWindowsAPI creates a new Windows API instance
func NewWindowsAPI() *WindowsAPI {
	return &WindowsAPI{}
}

// NewProcessAPI creates a new ProcessAPI instance for Windows
func NewProcessAPI() ProcessAPI {
	return NewWindowsAPI()
}

// ListProcesses walks a Toolhelp32 snapshot of all running processes.
func (w *WindowsAPI) ListProcesses() ([]types.ProcessInfo, error) {
	const op = "platform.ListProcesses"

	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, apperrors.NewAppError(op, err, apperrors.ErrCodeUnknown)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	if err := windows.Process32First(snapshot, &entry); err != nil {
		return nil, apperrors.NewAppError(op, err, apperrors.ErrCodeUnknown)
	}

	var processes []types.ProcessInfo
	for {
		processes = append(processes, types.ProcessInfo{
			Name: windows.UTF16ToString(entry.ExeFile[:]),
			PID:  entry.ProcessID,
		})
		if err := windows.Process32Next(snapshot, &entry); err != nil {
			if errors.Is(err, windows.ERROR_NO_MORE_FILES) {
				break
			}
			return nil, apperrors.NewAppError(op, err, apperrors.ErrCodeUnknown)
		}
	}
	return processes, nil
}

// KillPID terminates the process via OpenProcess + TerminateProcess.
// Access-denied maps to a permission error so callers can surface the
// run-as-administrator hint.
func (w *WindowsAPI) KillPID(pid uint32) error {
	const op = "platform.KillPID"

	handle, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, pid)
	if err != nil {
		code := apperrors.ErrCodeKillFailed
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			code = apperrors.ErrCodePermission
		}
		return apperrors.NewAppError(op, err, code)
	}
	defer windows.CloseHandle(handle)

	if err := windows.TerminateProcess(handle, 1); err != nil {
		code := apperrors.ErrCodeKillFailed
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			code = apperrors.ErrCodePermission
		}
		return apperrors.NewAppError(op, err, code)
	}
	return nil
}
