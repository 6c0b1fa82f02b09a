package core

import (
	"github.com/IvanShishkin/stconflicts/internal/conflict"
	"github.com/IvanShishkin/stconflicts/pkg/models"
)

// buildGroups turns assembled groups and their collected slots into the
// reported groups, keeping the assembler's base-path order. A group is
// reported only if all of its slots finished; the second return value is
// true when any group was left out for that reason.
func buildGroups(groups []*conflict.Group, slots [][]*slot) ([]*models.ConflictGroup, bool) {
	out := make([]*models.ConflictGroup, 0, len(groups))
	incomplete := false

	for i, g := range groups {
		finished := true
		for _, s := range slots[i] {
			if !s.done {
				finished = false
				break
			}
		}
		if !finished {
			incomplete = true
			continue
		}

		cg := &models.ConflictGroup{
			BaseName: g.BaseName,
			BasePath: g.BasePath,
		}
		for _, s := range slots[i] {
			if s.dropped {
				continue
			}
			entry := s.entry
			if entry.Role == models.RoleMain {
				cg.Main = &entry
			} else {
				cg.Conflicts = append(cg.Conflicts, &entry)
			}
		}

		// every conflict vanished before it could be stat'ed
		if len(cg.Conflicts) == 0 {
			continue
		}
		out = append(out, cg)
	}

	return out, incomplete
}
