package report

import (
	"bytes"
	"os"

	"github.com/IvanShishkin/stconflicts/pkg/models"
	"gopkg.in/yaml.v3"
)

// generateYAML generates a YAML report
func (g *Generator) generateYAML(result *models.ScanResult, outputFile string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	return os.WriteFile(outputFile, buf.Bytes(), 0644)
}
