// Package blacklist enforces the focus-time process blacklist. The guard
// tracks which names were locked in when a work phase started, so edits made
// mid-phase never loosen the protection the user committed to.
package blacklist

import (
	"errors"
	"strings"

	apperrors "tomatoclock/internal/infrastructure/errors"
	"tomatoclock/internal/infrastructure/logging"
	"tomatoclock/internal/types"
)

// errBlacklistLocked is the root cause carried by declined removals.
var errBlacklistLocked = errors.New("blacklist is locked during a work phase")

// Normalize canonicalizes a process name for identity comparison: trimmed
// and lowercased. Blacklist identity is case-insensitive.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateItems rejects items whose process name is blank.
func ValidateItems(items []types.BlacklistItem) error {
	const op = "blacklist.ValidateItems"
	for _, item := range items {
		if Normalize(item.Name) == "" {
			return apperrors.NewValidationError(op, "name", "process name must not be blank")
		}
	}
	return nil
}

// Guard owns the blacklist edit policy. While locked, the names captured at
// lock time cannot be removed; additions are always allowed and items added
// after the lock remain freely removable. The guard holds no mutex of its
// own, callers serialize access.
type Guard struct {
	locked       bool
	lockSnapshot map[string]struct{} // normalized names present when the lock was taken
	logger       logging.Logger
}

// NewGuard returns an unlocked guard.
func NewGuard(logger logging.Logger) *Guard {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Guard{logger: logger}
}

// Locked reports whether a work phase currently protects the blacklist.
func (g *Guard) Locked() bool {
	return g.locked
}

// Lock captures the current blacklist as the protected set. Calling Lock
// while already locked keeps the original snapshot.
func (g *Guard) Lock(items []types.BlacklistItem) {
	if g.locked {
		return
	}
	g.locked = true
	g.lockSnapshot = make(map[string]struct{}, len(items))
	for _, item := range items {
		g.lockSnapshot[Normalize(item.Name)] = struct{}{}
	}
	g.logger.Debug("Blacklist locked", "protected", len(g.lockSnapshot))
}

// Unlock drops the protection. Idempotent.
func (g *Guard) Unlock() {
	if !g.locked {
		return
	}
	g.locked = false
	g.lockSnapshot = nil
	g.logger.Debug("Blacklist unlocked")
}

// Add appends an item unless a name-equal entry already exists. It reports
// whether the list changed. Adding is allowed even while locked.
func (g *Guard) Add(items *[]types.BlacklistItem, item types.BlacklistItem) (bool, error) {
	const op = "blacklist.Add"

	key := Normalize(item.Name)
	if key == "" {
		return false, apperrors.NewValidationError(op, "name", "process name must not be blank")
	}
	for _, existing := range *items {
		if Normalize(existing.Name) == key {
			return false, nil
		}
	}
	*items = append(*items, item)
	return true, nil
}

// Remove deletes the named item. While locked, removing a name in the lock
// snapshot is declined with ErrCodeBlacklistLocked; names added after the
// lock was taken are removable. Removing an absent name is a no-op.
func (g *Guard) Remove(items *[]types.BlacklistItem, name string) (bool, error) {
	const op = "blacklist.Remove"

	key := Normalize(name)
	if g.locked {
		if _, protected := g.lockSnapshot[key]; protected {
			return false, apperrors.NewAppErrorWithContext(op,
				errBlacklistLocked,
				apperrors.ErrCodeBlacklistLocked,
				map[string]string{"name": name})
		}
	}
	for i, existing := range *items {
		if Normalize(existing.Name) == key {
			*items = append((*items)[:i], (*items)[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Replace swaps the whole list. While locked the replacement must keep every
// name in the lock snapshot; otherwise the swap is declined. It returns the
// normalized names present in the new list but not the old one, so callers
// can enforce the additions immediately.
func (g *Guard) Replace(items *[]types.BlacklistItem, next []types.BlacklistItem) ([]string, error) {
	const op = "blacklist.Replace"

	if err := ValidateItems(next); err != nil {
		return nil, err
	}

	nextKeys := make(map[string]struct{}, len(next))
	deduped := make([]types.BlacklistItem, 0, len(next))
	for _, item := range next {
		key := Normalize(item.Name)
		if _, seen := nextKeys[key]; seen {
			continue
		}
		nextKeys[key] = struct{}{}
		deduped = append(deduped, item)
	}

	if g.locked {
		for key := range g.lockSnapshot {
			if _, kept := nextKeys[key]; !kept {
				return nil, apperrors.NewAppErrorWithContext(op,
					errBlacklistLocked,
					apperrors.ErrCodeBlacklistLocked,
					map[string]string{"name": key})
			}
		}
	}

	oldKeys := make(map[string]struct{}, len(*items))
	for _, item := range *items {
		oldKeys[Normalize(item.Name)] = struct{}{}
	}
	var added []string
	for _, item := range deduped {
		key := Normalize(item.Name)
		if _, existed := oldKeys[key]; !existed {
			added = append(added, key)
		}
	}

	*items = deduped
	return added, nil
}
