package filesystem

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Matcher tests paths against a list of glob patterns.
//   - *  matches within a path segment (no '/')
//   - ** matches across directories
//   - ?  matches a single character other than '/'
//
// A pattern without '/' is matched against the base name, otherwise against
// the slash-separated path relative to the scan root.
type Matcher struct {
	baseNames []*regexp.Regexp
	paths     []*regexp.Regexp
}

// NewMatcher compiles the given patterns; empty patterns are ignored
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.TrimSuffix(filepath.ToSlash(strings.TrimSpace(p)), "/")
		if p == "" {
			continue
		}
		re := regexp.MustCompile(globToRegex(p))
		if strings.Contains(p, "/") {
			m.paths = append(m.paths, re)
		} else {
			m.baseNames = append(m.baseNames, re)
		}
	}
	return m
}

// Match reports whether name or relPath is excluded
func (m *Matcher) Match(name, relPath string) bool {
	for _, re := range m.baseNames {
		if re.MatchString(name) {
			return true
		}
	}
	if len(m.paths) == 0 {
		return false
	}
	rel := filepath.ToSlash(relPath)
	for _, re := range m.paths {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

// Empty reports whether the matcher has no patterns
func (m *Matcher) Empty() bool {
	return len(m.baseNames) == 0 && len(m.paths) == 0
}

func globToRegex(glob string) string {
	var b strings.Builder
	b.WriteString("^")

	runes := []rune(glob)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch ch {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				// "**/" also matches zero directories
				if i+2 < len(runes) && runes[i+2] == '/' {
					b.WriteString("(?:.*/)?")
					i += 2
				} else {
					b.WriteString(".*")
					i++
				}
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}

	b.WriteString("$")
	return b.String()
}
