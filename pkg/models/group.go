package models

// ConflictGroup is an original file together with its conflict variants.
// Conflicts is never empty; Main is nil for orphan groups.
type ConflictGroup struct {
	BaseName  string       `json:"base_name" yaml:"base_name"`
	BasePath  string       `json:"base_path" yaml:"base_path"`
	Main      *FileEntry   `json:"main,omitempty" yaml:"main,omitempty"`
	Conflicts []*FileEntry `json:"conflicts" yaml:"conflicts"`
}

// IsOrphan reports whether the original file is missing
func (g *ConflictGroup) IsOrphan() bool {
	return g.Main == nil
}

// Entries returns the main entry (if any) followed by the conflicts in order
func (g *ConflictGroup) Entries() []*FileEntry {
	entries := make([]*FileEntry, 0, len(g.Conflicts)+1)
	if g.Main != nil {
		entries = append(entries, g.Main)
	}
	return append(entries, g.Conflicts...)
}

// SameSize reports whether every entry has the same size
func (g *ConflictGroup) SameSize() bool {
	entries := g.Entries()
	if len(entries) == 0 {
		return true
	}
	for _, e := range entries[1:] {
		if e.Size != entries[0].Size {
			return false
		}
	}
	return true
}

// SameContent reports whether every entry was hashed and all hashes match.
// It returns false when any hash is missing.
func (g *ConflictGroup) SameContent() bool {
	entries := g.Entries()
	for _, e := range entries {
		if !e.HasHash() || e.Hash != entries[0].Hash {
			return false
		}
	}
	return true
}
