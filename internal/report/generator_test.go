package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IvanShishkin/stconflicts/internal/config"
	"github.com/IvanShishkin/stconflicts/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func sampleResult() *models.ScanResult {
	modTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	return &models.ScanResult{
		ID:        "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		RootPath:  "/data",
		StartTime: modTime,
		EndTime:   modTime.Add(1500 * time.Millisecond),
		Duration:  1500 * time.Millisecond,
		Groups: []*models.ConflictGroup{
			{
				BaseName: "report.txt",
				BasePath: "/data/report.txt",
				Main:     &models.FileEntry{Path: "/data/report.txt", Size: 10, ModTime: modTime, Hash: "aaaa", Role: models.RoleMain},
				Conflicts: []*models.FileEntry{{
					Path:     "/data/report.sync-conflict-20230101-120000-ABCDEFG.txt",
					Size:     10,
					ModTime:  modTime,
					Hash:     "aaaa",
					Role:     models.RoleConflict,
					Conflict: &models.ConflictInfo{Timestamp: modTime, DeviceID: "ABCDEFG"},
				}},
			},
			{
				BaseName: "notes.md",
				BasePath: "/data/notes.md",
				Conflicts: []*models.FileEntry{{
					Path:     "/data/notes.sync-conflict-20230102-093000-ABCDEFG.md",
					Size:     3,
					ModTime:  modTime,
					Role:     models.RoleConflict,
					Conflict: &models.ConflictInfo{Timestamp: modTime},
				}},
			},
		},
		Warnings: []models.Warning{{Path: "/data/locked", Reason: models.ReasonPathUnreadable, Message: "cannot read: permission denied"}},
		Stats:    &models.ScanStatistics{TotalFiles: 5, ConflictFiles: 2, HashedFiles: 2, HashAlgorithm: "sha256"},
	}
}

func newTestGenerator(t *testing.T, format, output string) *Generator {
	t.Helper()
	g, err := NewGenerator(&config.Config{ReportFormat: format, OutputFile: output}, zap.NewNop())
	require.NoError(t, err)
	return g
}

func TestGenerate_Console(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGenerator(t, "", "")
	g.SetOutput(&buf)

	path, err := g.Generate(sampleResult())
	require.NoError(t, err)
	assert.Empty(t, path)

	out := buf.String()
	assert.Contains(t, out, "SCAN COMPLETE")
	assert.Contains(t, out, "/data/report.txt")
	assert.Contains(t, out, "identical content")
	assert.Contains(t, out, "main file missing")
	assert.Contains(t, out, "path_unreadable")
	assert.NotContains(t, out, "\x1b[", "no colour codes when not writing to a terminal")
}

func TestGenerate_ConsoleCancelled(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGenerator(t, "", "")
	g.SetOutput(&buf)

	result := &models.ScanResult{RootPath: "/data", Cancelled: true}
	_, err := g.Generate(result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "SCAN CANCELLED")
	assert.Contains(t, buf.String(), "No conflict files found")
}

func TestGenerate_JSON(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.json")
	path, err := newTestGenerator(t, "json", output).Generate(sampleResult())
	require.NoError(t, err)
	assert.Equal(t, output, path)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var decoded models.ScanResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Groups, 2)
	assert.Equal(t, "report.txt", decoded.Groups[0].BaseName)
	assert.Nil(t, decoded.Groups[1].Main)
	assert.Equal(t, "ABCDEFG", decoded.Groups[0].Conflicts[0].Conflict.DeviceID)
	assert.Len(t, decoded.Warnings, 1)
}

func TestGenerate_YAML(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.yaml")
	_, err := newTestGenerator(t, "yaml", output).Generate(sampleResult())
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	var decoded models.ScanResult
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded.Groups, 2)
	assert.Equal(t, "/data/notes.md", decoded.Groups[1].BasePath)
	assert.Equal(t, 1500*time.Millisecond, decoded.Duration)
}

func TestGenerate_TextAndMarkdown(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{"text", "md"} {
		output := filepath.Join(dir, "report."+format)
		_, err := newTestGenerator(t, format, output).Generate(sampleResult())
		require.NoError(t, err)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(data), "/data/report.sync-conflict-20230101-120000-ABCDEFG.txt")
		assert.Contains(t, string(data), "permission denied")
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	_, err := newTestGenerator(t, "xml", "").Generate(sampleResult())
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{500 * time.Millisecond, "500.00ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m30.00s"},
		{time.Hour + 2*time.Minute, "1h2m0.00s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.input); got != tt.expected {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatSizeAndShortHash(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "1.0 KiB", FormatSize(1024))
	assert.Equal(t, "-", FormatSize(-1))
	assert.Equal(t, "-", ShortHash(""))
	assert.Equal(t, "abc", ShortHash("abc"))
	assert.Equal(t, "0123456789ab", ShortHash("0123456789abcdef"))
}
