package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/stconflicts/pkg/models"
)

// generateMarkdown generates a Markdown report
func (g *Generator) generateMarkdown(result *models.ScanResult, outputFile string) error {
	var sb strings.Builder

	sb.WriteString("# Syncthing Conflict Report\n\n")

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Scan ID | `%s` |\n", result.ID))
	sb.WriteString(fmt.Sprintf("| Root Path | `%s` |\n", result.RootPath))
	sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", result.StartTime.Format(timeLayout)))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(result.Duration)))
	if result.Stats != nil {
		sb.WriteString(fmt.Sprintf("| Total Files | %d |\n", result.Stats.TotalFiles))
		sb.WriteString(fmt.Sprintf("| Conflict Files | %d |\n", result.Stats.ConflictFiles))
	}
	sb.WriteString(fmt.Sprintf("| **Conflict Groups** | **%d** |\n", len(result.Groups)))
	sb.WriteString(fmt.Sprintf("| Orphan Groups | %d |\n", result.OrphanGroups()))
	sb.WriteString("\n")

	if result.Cancelled {
		sb.WriteString("> ⚠️ **Scan was cancelled, results are partial**\n\n")
	}

	if len(result.Groups) == 0 {
		sb.WriteString("> ✅ **No conflict files found**\n\n")
	}

	for _, group := range result.Groups {
		sb.WriteString(fmt.Sprintf("## `%s`\n\n", escapeMarkdown(group.BasePath)))
		sb.WriteString(fmt.Sprintf("*%s*", groupLabel(group)))
		if group.IsOrphan() {
			sb.WriteString(" · *main file missing*")
		}
		sb.WriteString("\n\n")

		sb.WriteString("| Role | Path | Size | Modified | Hash |\n")
		sb.WriteString("|------|------|------|----------|------|\n")
		for _, e := range group.Entries() {
			sb.WriteString(fmt.Sprintf("| %s | `%s` | %s | %s | `%s` |\n",
				e.Role, escapeMarkdown(e.Path), FormatSize(e.Size), e.ModTime.Format(timeLayout), ShortHash(e.Hash)))
		}
		sb.WriteString("\n")
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		sb.WriteString("| Reason | Path | Message |\n")
		sb.WriteString("|--------|------|---------|\n")
		for _, w := range result.Warnings {
			sb.WriteString(fmt.Sprintf("| %s | `%s` | %s |\n", w.Reason, escapeMarkdown(w.Path), escapeMarkdown(w.Message)))
		}
		sb.WriteString("\n")
	}

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}

// escapeMarkdown keeps table cells intact
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
