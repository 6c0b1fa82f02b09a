// Package conflict recognises Syncthing conflict file names and groups
// conflict variants with the file they were forked from.
//
// Syncthing names a conflict copy
//
//	<stem>.sync-conflict-<YYYYMMDD>-<HHMMSS>-<device><ext>
//
// where <ext> is the last extension of the original name (possibly empty)
// and <device> is the short ID of the device that made the losing change.
// Older versions omitted the device part.
package conflict

import (
	"regexp"
	"strings"
	"time"
)

// Marker is the fixed string Syncthing inserts into conflict names
const Marker = ".sync-conflict-"

// TimestampLayout is the layout of the date-time payload after Marker
const TimestampLayout = "20060102-150405"

// Kind classifies a file name
type Kind int

const (
	// KindPlain is an ordinary file, a potential main file
	KindPlain Kind = iota
	// KindConflict is a conflict variant
	KindConflict
	// KindIgnored is a Syncthing temporary that belongs to no group
	KindIgnored
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindIgnored:
		return "ignored"
	default:
		return "plain"
	}
}

// Name is the result of parsing a file name
type Name struct {
	Kind      Kind
	BaseName  string    // original file name, equal to the input for plain files
	Timestamp time.Time // conflict time (UTC), zero unless KindConflict
	DeviceID  string    // short device ID, may be empty for old-style names
}

var conflictPattern = regexp.MustCompile(
	`^(.*)\.sync-conflict-([0-9]{8}-[0-9]{6})(?:-([A-Z0-9]+))?(\.[^.]+)?$`)

// ParseName classifies a base file name (no directory part).
// Names that contain Marker but do not follow the grammar are plain files.
func ParseName(name string) Name {
	if isTemporary(name) {
		return Name{Kind: KindIgnored, BaseName: name}
	}

	base, ts, device, ok := stripMarker(name)
	if !ok {
		return Name{Kind: KindPlain, BaseName: name}
	}

	// A conflict of a conflict carries several markers; the outermost one
	// is the newest, the innermost base is the original file.
	for {
		inner, _, _, ok := stripMarker(base)
		if !ok {
			break
		}
		base = inner
	}

	return Name{
		Kind:      KindConflict,
		BaseName:  base,
		Timestamp: ts,
		DeviceID:  device,
	}
}

func stripMarker(name string) (string, time.Time, string, bool) {
	if !strings.Contains(name, Marker) {
		return "", time.Time{}, "", false
	}
	m := conflictPattern.FindStringSubmatch(name)
	if m == nil {
		return "", time.Time{}, "", false
	}

	ts, err := time.ParseInLocation(TimestampLayout, m[2], time.UTC)
	if err != nil {
		return "", time.Time{}, "", false
	}

	base := m[1] + m[4]
	if base == "" {
		return "", time.Time{}, "", false
	}
	return base, ts, m[3], true
}

// isTemporary matches the names Syncthing uses for in-progress downloads
func isTemporary(name string) bool {
	if !strings.HasSuffix(name, ".tmp") {
		return false
	}
	return strings.HasPrefix(name, ".syncthing.") || strings.HasPrefix(name, "~syncthing~")
}
