package models

import "sort"

// ReasonCode classifies a non-fatal scan problem
type ReasonCode string

const (
	ReasonPathUnreadable ReasonCode = "path_unreadable"
	ReasonHashFailed     ReasonCode = "hash_failed"
	ReasonDuplicateMain  ReasonCode = "duplicate_main"
)

// Warning records a problem that did not stop the scan
type Warning struct {
	Path    string     `json:"path" yaml:"path"`
	Reason  ReasonCode `json:"reason" yaml:"reason"`
	Message string     `json:"message" yaml:"message"`
}

// SortWarnings orders warnings by path, then reason, then message
func SortWarnings(warnings []Warning) {
	sort.Slice(warnings, func(i, j int) bool {
		a, b := warnings[i], warnings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Reason != b.Reason {
			return a.Reason < b.Reason
		}
		return a.Message < b.Message
	})
}
