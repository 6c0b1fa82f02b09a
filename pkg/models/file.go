package models

import (
	"time"
)

// Role tags a FileEntry as the original file or a conflict variant
type Role string

const (
	RoleMain     Role = "main"
	RoleConflict Role = "conflict"
)

// ConflictInfo carries the fields parsed from a conflict file name
type ConflictInfo struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	DeviceID  string    `json:"device_id,omitempty" yaml:"device_id,omitempty"`
}

// FileEntry is one member of a conflict group
type FileEntry struct {
	Path          string        `json:"path" yaml:"path"`
	Size          int64         `json:"size_bytes" yaml:"size_bytes"`
	ModTime       time.Time     `json:"modified_time" yaml:"modified_time"`
	Hash          string        `json:"hash_hex,omitempty" yaml:"hash_hex,omitempty"` // empty when not computed
	HashAlgorithm string        `json:"hash_algorithm,omitempty" yaml:"hash_algorithm,omitempty"`
	Role          Role          `json:"role" yaml:"role"`
	Conflict      *ConflictInfo `json:"conflict,omitempty" yaml:"conflict,omitempty"` // set only for RoleConflict
}

// HasHash reports whether a content hash was computed
func (e *FileEntry) HasHash() bool {
	return e.Hash != ""
}

// IsConflict reports whether the entry is a conflict variant
func (e *FileEntry) IsConflict() bool {
	return e.Role == RoleConflict
}
