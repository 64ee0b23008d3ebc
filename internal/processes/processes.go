// Package processes implements best-effort termination of blacklisted
// programs on top of the platform process API. One pass never aborts early:
// every matching PID is attempted and the outcome is reported per name.
package processes

import (
	"sort"
	"strings"

	apperrors "tomatoclock/internal/infrastructure/errors"
	"tomatoclock/internal/infrastructure/logging"
	"tomatoclock/internal/platform"
	"tomatoclock/internal/types"
)

// KillFunc terminates a single PID. Injectable for tests.
type KillFunc func(pid uint32) error

// Service wraps the platform API with the blacklist matching policy.
type Service struct {
	api    platform.ProcessAPI
	logger logging.Logger
}

// NewService creates a process service backed by the given platform API.
func NewService(api platform.ProcessAPI, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Service{api: api, logger: logger}
}

// List enumerates running processes, deduplicated by normalized name. The
// lowest PID per name is kept so the picker UI shows one row per program.
func (s *Service) List() ([]types.ProcessInfo, error) {
	entries, err := s.api.ListProcesses()
	if err != nil {
		return nil, err
	}

	best := make(map[string]types.ProcessInfo)
	for _, entry := range entries {
		key := normalize(entry.Name)
		if key == "" {
			continue
		}
		if existing, ok := best[key]; !ok || entry.PID < existing.PID {
			best[key] = entry
		}
	}

	out := make([]types.ProcessInfo, 0, len(best))
	for _, info := range best {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return normalize(out[i].Name) < normalize(out[j].Name) })
	return out, nil
}

// KillNames terminates every running process whose normalized name matches
// one of the given names. Enumeration failure is the only error; individual
// kill failures are folded into the summary.
func (s *Service) KillNames(names []string) (types.KillSummary, error) {
	entries, err := s.api.ListProcesses()
	if err != nil {
		return types.KillSummary{}, err
	}
	summary := KillByNameFromEntries(entries, names, s.api.KillPID)
	for _, item := range summary.Items {
		if item.Failed > 0 {
			s.logger.Warn("Process termination incomplete",
				"name", item.Name,
				"killed", item.Killed,
				"failed", item.Failed,
				"requiresAdmin", item.RequiresAdmin)
		} else if item.Killed > 0 {
			s.logger.Info("Terminated blacklisted process",
				"name", item.Name,
				"killed", item.Killed)
		}
	}
	return summary, nil
}

// KillByNameFromEntries matches entries against names and applies kill to
// each matching PID. Names that match no running process are omitted from
// the summary. Pure apart from the kill calls, which makes it directly
// testable with a fake kill function.
func KillByNameFromEntries(entries []types.ProcessInfo, names []string, kill KillFunc) types.KillSummary {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		if key := normalize(name); key != "" {
			wanted[key] = struct{}{}
		}
	}

	pidsByName := make(map[string][]uint32)
	for _, entry := range entries {
		key := normalize(entry.Name)
		if _, ok := wanted[key]; ok {
			pidsByName[key] = append(pidsByName[key], entry.PID)
		}
	}

	keys := make([]string, 0, len(pidsByName))
	for key := range pidsByName {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var summary types.KillSummary
	for _, key := range keys {
		pids := pidsByName[key]
		sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })

		item := types.KillItem{Name: key, PIDs: pids}
		for _, pid := range pids {
			if err := kill(pid); err != nil {
				item.Failed++
				if apperrors.IsPermission(err) {
					item.RequiresAdmin = true
				}
				continue
			}
			item.Killed++
		}
		if item.RequiresAdmin {
			summary.RequiresAdmin = true
		}
		summary.Items = append(summary.Items, item)
	}
	return summary
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
