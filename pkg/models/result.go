package models

import "time"

// ScanResult contains the complete scan results
type ScanResult struct {
	// Summary
	ID        string        `json:"id" yaml:"id"`
	RootPath  string        `json:"root_path" yaml:"root_path"`
	StartTime time.Time     `json:"start_time" yaml:"start_time"`
	EndTime   time.Time     `json:"end_time" yaml:"end_time"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
	Cancelled bool          `json:"cancelled" yaml:"cancelled"`

	Groups   []*ConflictGroup `json:"groups" yaml:"groups"`
	Warnings []Warning        `json:"warnings" yaml:"warnings"`

	Stats *ScanStatistics `json:"statistics" yaml:"statistics"`
}

// ScanStatistics contains counters collected during a scan
type ScanStatistics struct {
	TotalFiles    int `json:"total_files" yaml:"total_files"`
	TotalDirs     int `json:"total_dirs" yaml:"total_dirs"`
	ConflictFiles int `json:"conflict_files" yaml:"conflict_files"`

	// Hashing
	HashedFiles      int    `json:"hashed_files" yaml:"hashed_files"`
	HashSkipped      int    `json:"hash_skipped" yaml:"hash_skipped"` // over the size threshold
	HashFailed       int    `json:"hash_failed" yaml:"hash_failed"`
	HashedBytes      int64  `json:"hashed_bytes" yaml:"hashed_bytes"`
	HashAlgorithm    string `json:"hash_algorithm,omitempty" yaml:"hash_algorithm,omitempty"`
	HashSizeLimit    int64  `json:"hash_size_limit" yaml:"hash_size_limit"`
	UnreadableErrors int    `json:"unreadable_errors" yaml:"unreadable_errors"`

	// Performance
	FilesPerSecond float64 `json:"files_per_second" yaml:"files_per_second"`
	WorkersUsed    int     `json:"workers_used" yaml:"workers_used"`
}

// OrphanGroups counts groups without a main entry
func (r *ScanResult) OrphanGroups() int {
	n := 0
	for _, g := range r.Groups {
		if g.IsOrphan() {
			n++
		}
	}
	return n
}

// WarningsByReason returns the warnings with the given reason
func (r *ScanResult) WarningsByReason(reason ReasonCode) []Warning {
	var out []Warning
	for _, w := range r.Warnings {
		if w.Reason == reason {
			out = append(out, w)
		}
	}
	return out
}
