package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/IvanShishkin/stconflicts/internal/config"
	"github.com/IvanShishkin/stconflicts/pkg/models"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// timeLayout is used for every timestamp shown to a user
const timeLayout = "2006-01-02 15:04:05"

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		// Milliseconds
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		// Seconds
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		// Minutes and seconds
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	// Hours, minutes and seconds
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// FormatSize formats a byte count, e.g. "1.5 MiB"
func FormatSize(size int64) string {
	if size < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(size))
}

// ShortHash abbreviates a hex digest for display
func ShortHash(hash string) string {
	if hash == "" {
		return "-"
	}
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

// Generator generates scan reports in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	return &Generator{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
	}, nil
}

// SetOutput redirects console output
func (g *Generator) SetOutput(w io.Writer) {
	g.out = w
}

// Generate renders the result. Without a report format the result is
// printed to the console and the returned path is empty.
func (g *Generator) Generate(result *models.ScanResult) (string, error) {
	format := g.config.ReportFormat
	outputFile := g.config.OutputFile

	// If no format specified, print to console
	if format == "" {
		g.printConsole(result)
		return "", nil
	}

	// Generate default filename if not specified
	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		switch format {
		case "json":
			outputFile = fmt.Sprintf("STCONFLICTS-REPORT-%s.json", timestamp)
		case "txt", "text":
			outputFile = fmt.Sprintf("STCONFLICTS-REPORT-%s.txt", timestamp)
		case "yaml", "yml":
			outputFile = fmt.Sprintf("STCONFLICTS-REPORT-%s.yaml", timestamp)
		case "md", "markdown":
			outputFile = fmt.Sprintf("STCONFLICTS-REPORT-%s.md", timestamp)
		default:
			return "", fmt.Errorf("unknown report format: %s", format)
		}
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var err error
	switch format {
	case "json":
		err = g.generateJSON(result, outputFile)
	case "txt", "text":
		err = g.generateText(result, outputFile)
	case "yaml", "yml":
		err = g.generateYAML(result, outputFile)
	case "md", "markdown":
		err = g.generateMarkdown(result, outputFile)
	default:
		return "", fmt.Errorf("unknown report format: %s", format)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	// Get absolute path
	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// groupLabel summarises how the entries of a group compare
func groupLabel(g *models.ConflictGroup) string {
	switch {
	case g.SameContent():
		return "identical content"
	case g.SameSize():
		return "same size"
	default:
		return "different"
	}
}
