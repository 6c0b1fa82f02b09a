package report

import (
	"fmt"
	"os"

	"github.com/IvanShishkin/stconflicts/pkg/models"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// palette holds the console colours, all disabled when stdout is not a terminal
type palette struct {
	title  *color.Color
	label  *color.Color
	base   *color.Color
	main   *color.Color
	other  *color.Color
	dim    *color.Color
	good   *color.Color
	warn   *color.Color
	orphan *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		title:  color.New(color.Bold, color.FgHiYellow),
		label:  color.New(color.FgHiBlack),
		base:   color.New(color.Bold, color.FgWhite),
		main:   color.New(color.FgGreen),
		other:  color.New(color.FgYellow),
		dim:    color.New(color.Faint),
		good:   color.New(color.Bold, color.FgGreen),
		warn:   color.New(color.FgRed),
		orphan: color.New(color.FgMagenta),
	}
	for _, c := range []*color.Color{p.title, p.label, p.base, p.main, p.other, p.dim, p.good, p.warn, p.orphan} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// colorEnabled reports whether console output goes to a terminal
func (g *Generator) colorEnabled() bool {
	f, ok := g.out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printConsole prints the result to the console
func (g *Generator) printConsole(result *models.ScanResult) {
	p := newPalette(g.colorEnabled())
	w := g.out

	fmt.Fprintln(w)
	if result.Cancelled {
		p.warn.Fprintln(w, "SCAN CANCELLED (partial results)")
	} else {
		p.title.Fprintln(w, "SCAN COMPLETE")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s\n", p.label.Sprint("Path:     "), result.RootPath)
	if result.Stats != nil {
		fmt.Fprintf(w, "  %s %d\n", p.label.Sprint("Files:    "), result.Stats.TotalFiles)
	}
	fmt.Fprintf(w, "  %s %s\n", p.label.Sprint("Duration: "), FormatDuration(result.Duration))
	fmt.Fprintf(w, "  %s %d (%d orphan)\n", p.label.Sprint("Groups:   "), len(result.Groups), result.OrphanGroups())
	fmt.Fprintln(w)

	if len(result.Groups) == 0 {
		p.good.Fprintln(w, "  ✓ No conflict files found")
		fmt.Fprintln(w)
	}

	for i, group := range result.Groups {
		fmt.Fprintf(w, "  %s %s  %s\n",
			p.label.Sprintf("[%d]", i+1),
			p.base.Sprint(group.BasePath),
			p.dim.Sprintf("(%d files, %s)", len(group.Entries()), groupLabel(group)))

		if group.IsOrphan() {
			fmt.Fprintf(w, "      %s\n", p.orphan.Sprint("main file missing"))
		}
		for _, e := range group.Entries() {
			role := p.main.Sprintf("%-8s", e.Role)
			if e.IsConflict() {
				role = p.other.Sprintf("%-8s", e.Role)
			}
			fmt.Fprintf(w, "      %s %10s  %s  %s  %s\n",
				role,
				FormatSize(e.Size),
				e.ModTime.Format(timeLayout),
				p.dim.Sprintf("%-12s", ShortHash(e.Hash)),
				e.Path)
		}
		fmt.Fprintln(w)
	}

	if len(result.Warnings) > 0 {
		p.warn.Fprintf(w, "  %d warning(s)\n", len(result.Warnings))
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "    %s %s: %s\n", p.label.Sprintf("[%s]", warning.Reason), warning.Path, warning.Message)
		}
		fmt.Fprintln(w)
	}
}
