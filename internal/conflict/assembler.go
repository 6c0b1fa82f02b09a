package conflict

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/IvanShishkin/stconflicts/pkg/models"
)

// Member is a classified file placed in a group. Its metadata is filled
// in later by the collector.
type Member struct {
	Path      string
	Role      models.Role
	Timestamp time.Time
	DeviceID  string
}

// Group is an in-progress conflict group
type Group struct {
	BaseName  string
	BasePath  string
	Main      *Member
	Conflicts []*Member
}

// Assembler buckets classified files into groups keyed by base path.
// It is not safe for concurrent use.
type Assembler struct {
	groups   map[string]*Group
	warnings []models.Warning
	files    int
}

// NewAssembler creates an empty assembler
func NewAssembler() *Assembler {
	return &Assembler{
		groups: make(map[string]*Group),
	}
}

// Add places the file at path into its group. It reports whether the
// file was kept (ignored temporaries are not).
//
// If two main candidates share a base path, the lexically smaller path is
// kept and the other becomes a duplicate_main warning, whatever the order
// of arrival.
func (a *Assembler) Add(path string, name Name) bool {
	if name.Kind == KindIgnored {
		return false
	}
	a.files++

	basePath := filepath.Join(filepath.Dir(path), name.BaseName)
	g, ok := a.groups[basePath]
	if !ok {
		g = &Group{BaseName: name.BaseName, BasePath: basePath}
		a.groups[basePath] = g
	}

	if name.Kind == KindConflict {
		g.Conflicts = append(g.Conflicts, &Member{
			Path:      path,
			Role:      models.RoleConflict,
			Timestamp: name.Timestamp,
			DeviceID:  name.DeviceID,
		})
		return true
	}

	candidate := &Member{Path: path, Role: models.RoleMain}
	if g.Main == nil {
		g.Main = candidate
		return true
	}

	winner, loser := g.Main, candidate
	if candidate.Path < g.Main.Path {
		winner, loser = candidate, g.Main
	}
	g.Main = winner
	a.warnings = append(a.warnings, models.Warning{
		Path:    loser.Path,
		Reason:  models.ReasonDuplicateMain,
		Message: fmt.Sprintf("duplicate main candidate for %s, kept %s", basePath, winner.Path),
	})
	return true
}

// AddPath parses the base name of path and adds it
func (a *Assembler) AddPath(path string) (Name, bool) {
	name := ParseName(filepath.Base(path))
	return name, a.Add(path, name)
}

// Groups returns every group that has at least one conflict, ordered by
// base path. Conflicts are ordered by timestamp, then path.
func (a *Assembler) Groups() []*Group {
	groups := make([]*Group, 0, len(a.groups))
	for _, g := range a.groups {
		if len(g.Conflicts) == 0 {
			continue
		}
		SortConflicts(g.Conflicts)
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].BasePath < groups[j].BasePath
	})
	return groups
}

// Warnings returns the duplicate-main warnings recorded so far
func (a *Assembler) Warnings() []models.Warning {
	return a.warnings
}

// Files returns the number of files accepted by Add
func (a *Assembler) Files() int {
	return a.files
}

// SortConflicts orders conflict members by timestamp, ties broken by path
func SortConflicts(members []*Member) {
	sort.Slice(members, func(i, j int) bool {
		if !members[i].Timestamp.Equal(members[j].Timestamp) {
			return members[i].Timestamp.Before(members[j].Timestamp)
		}
		return members[i].Path < members[j].Path
	})
}

// Paths returns the main path (if any) followed by the conflict paths
func (g *Group) Paths() []string {
	paths := make([]string, 0, len(g.Conflicts)+1)
	if g.Main != nil {
		paths = append(paths, g.Main.Path)
	}
	for _, c := range g.Conflicts {
		paths = append(paths, c.Path)
	}
	return paths
}
