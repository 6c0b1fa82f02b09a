package core

import (
	"sync"

	"github.com/IvanShishkin/stconflicts/pkg/models"
)

// scanState is the per-scan mutable state shared by the walker, the
// assembler and the collector workers. A new one is created for every Scan.
type scanState struct {
	mu       sync.Mutex
	warnings []models.Warning
}

func newScanState() *scanState {
	return &scanState{}
}

// warn records a non-fatal problem; safe for concurrent use
func (st *scanState) warn(w models.Warning) {
	st.mu.Lock()
	st.warnings = append(st.warnings, w)
	st.mu.Unlock()
}

// sortedWarnings returns a sorted copy of the recorded warnings
func (st *scanState) sortedWarnings() []models.Warning {
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]models.Warning, len(st.warnings))
	copy(out, st.warnings)
	models.SortWarnings(out)
	return out
}
