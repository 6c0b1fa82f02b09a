package conflict

import (
	"path/filepath"
	"testing"

	"github.com/IvanShishkin/stconflicts/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler_MainAndConflict(t *testing.T) {
	dir := filepath.Join("root", "docs")
	a := NewAssembler()
	a.AddPath(filepath.Join(dir, "report.sync-conflict-20230101-120000-ABCDEF.txt"))
	a.AddPath(filepath.Join(dir, "report.txt"))
	a.AddPath(filepath.Join(dir, "other.txt"))

	groups := a.Groups()
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "report.txt", g.BaseName)
	assert.Equal(t, filepath.Join(dir, "report.txt"), g.BasePath)
	require.NotNil(t, g.Main)
	assert.Equal(t, filepath.Join(dir, "report.txt"), g.Main.Path)
	require.Len(t, g.Conflicts, 1)
	assert.Equal(t, models.RoleConflict, g.Conflicts[0].Role)
	assert.Equal(t, "ABCDEF", g.Conflicts[0].DeviceID)
	assert.Equal(t, 3, a.Files())
}

func TestAssembler_Orphan(t *testing.T) {
	a := NewAssembler()
	a.AddPath(filepath.Join("root", "notes.sync-conflict-20230102-093000-123456.txt"))

	groups := a.Groups()
	require.Len(t, groups, 1)
	assert.Nil(t, groups[0].Main)
	assert.Len(t, groups[0].Conflicts, 1)
}

func TestAssembler_SameNameInDifferentDirectories(t *testing.T) {
	a := NewAssembler()
	a.AddPath(filepath.Join("a", "x.txt"))
	a.AddPath(filepath.Join("b", "x.sync-conflict-20230101-120000-ABCDEFG.txt"))

	groups := a.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, filepath.Join("b", "x.txt"), groups[0].BasePath)
	assert.Nil(t, groups[0].Main)
}

func TestAssembler_ConflictOrdering(t *testing.T) {
	paths := []string{
		"f.sync-conflict-20230103-000000-CCCCCCC.txt",
		"f.sync-conflict-20230101-000000-BBBBBBB.txt",
		"f.sync-conflict-20230101-000000-AAAAAAA.txt",
		"f.sync-conflict-20230102-000000-DDDDDDD.txt",
	}

	a := NewAssembler()
	for _, p := range paths {
		a.AddPath(p)
	}

	groups := a.Groups()
	require.Len(t, groups, 1)

	var got []string
	for _, c := range groups[0].Conflicts {
		got = append(got, c.Path)
	}
	assert.Equal(t, []string{
		"f.sync-conflict-20230101-000000-AAAAAAA.txt",
		"f.sync-conflict-20230101-000000-BBBBBBB.txt",
		"f.sync-conflict-20230102-000000-DDDDDDD.txt",
		"f.sync-conflict-20230103-000000-CCCCCCC.txt",
	}, got)
}

func TestAssembler_DuplicateMain(t *testing.T) {
	conflictName := ParseName("x.sync-conflict-20230101-120000-ABCDEFG.txt")

	for _, order := range [][]string{{"dir/x.txt", "dir/./x.txt"}, {"dir/./x.txt", "dir/x.txt"}} {
		a := NewAssembler()
		a.Add("dir/x.sync-conflict-20230101-120000-ABCDEFG.txt", conflictName)
		for _, p := range order {
			a.Add(p, Name{Kind: KindPlain, BaseName: "x.txt"})
		}

		groups := a.Groups()
		require.Len(t, groups, 1)
		require.NotNil(t, groups[0].Main)
		assert.Equal(t, "dir/./x.txt", groups[0].Main.Path)

		warnings := a.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, models.ReasonDuplicateMain, warnings[0].Reason)
		assert.Equal(t, "dir/x.txt", warnings[0].Path)
	}
}

func TestAssembler_IgnoresTemporaries(t *testing.T) {
	a := NewAssembler()
	_, kept := a.AddPath(".syncthing.x.txt.tmp")
	assert.False(t, kept)
	assert.Equal(t, 0, a.Files())
	assert.Empty(t, a.Groups())
}

func TestAssembler_GroupCount(t *testing.T) {
	a := NewAssembler()
	// three base names with conflicts, two without
	for _, p := range []string{
		"a.txt", "a.sync-conflict-20230101-120000-ABCDEFG.txt",
		"b.sync-conflict-20230101-120000-ABCDEFG.md",
		"c.txt", "c.sync-conflict-20230101-120000-ABCDEFG.txt", "c.sync-conflict-20230201-120000-ABCDEFG.txt",
		"d.txt", "e.txt", "x.sync-conflict-foo.txt",
	} {
		a.AddPath(p)
	}

	groups := a.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, "a.txt", groups[0].BasePath)
	assert.Equal(t, "b.md", groups[1].BasePath)
	assert.Equal(t, "c.txt", groups[2].BasePath)
	assert.Equal(t, []string{"c.txt", "c.sync-conflict-20230101-120000-ABCDEFG.txt", "c.sync-conflict-20230201-120000-ABCDEFG.txt"}, groups[2].Paths())
}
