package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/IvanShishkin/stconflicts/pkg/models"
)

// generateText generates a text report
func (g *Generator) generateText(result *models.ScanResult, outputFile string) error {
	var sb strings.Builder

	// Header
	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString("  SYNCTHING CONFLICT REPORT\n")
	sb.WriteString(strings.Repeat("=", 79) + "\n\n")

	// Summary
	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("Scan ID:          %s\n", result.ID))
	sb.WriteString(fmt.Sprintf("Root Path:        %s\n", result.RootPath))
	sb.WriteString(fmt.Sprintf("Start Time:       %s\n", result.StartTime.Format(timeLayout)))
	sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(result.Duration)))
	if result.Stats != nil {
		sb.WriteString(fmt.Sprintf("Total Files:      %d\n", result.Stats.TotalFiles))
		sb.WriteString(fmt.Sprintf("Conflict Files:   %d\n", result.Stats.ConflictFiles))
		sb.WriteString(fmt.Sprintf("Hashed Files:     %d (%s)\n", result.Stats.HashedFiles, result.Stats.HashAlgorithm))
	}
	sb.WriteString(fmt.Sprintf("CONFLICT GROUPS:  %d\n", len(result.Groups)))
	if result.Cancelled {
		sb.WriteString("STATUS:           CANCELLED (partial results)\n")
	}
	sb.WriteString("\n")

	if len(result.Groups) > 0 {
		sb.WriteString("GROUPS\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for i, group := range result.Groups {
			sb.WriteString(fmt.Sprintf("\n[%d] %s (%s)\n", i+1, group.BasePath, groupLabel(group)))
			if group.IsOrphan() {
				sb.WriteString("    main file missing\n")
			}
			for _, e := range group.Entries() {
				sb.WriteString(fmt.Sprintf("    %-8s %10s  %s  %-12s  %s\n",
					e.Role, FormatSize(e.Size), e.ModTime.Format(timeLayout), ShortHash(e.Hash), e.Path))
			}
		}
		sb.WriteString("\n")
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("WARNINGS\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		for _, w := range result.Warnings {
			sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", w.Reason, w.Path, w.Message))
		}
		sb.WriteString("\n")
	}

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
