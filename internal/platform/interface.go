package platform

import "tomatoclock/internal/types"

// ProcessAPI defines the interface for platform-specific process operations
type ProcessAPI interface {
	// ListProcesses enumerates currently running processes.
	ListProcesses() ([]types.ProcessInfo, error)
	// KillPID forcefully terminates the process with the given PID.
	KillPID(pid uint32) error
}
