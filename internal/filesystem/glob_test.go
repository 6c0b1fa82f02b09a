package filesystem

import "testing"

func TestMatcher(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		base     string
		rel      string
		expected bool
	}{
		{"Exact directory name", []string{".stversions"}, ".stversions", ".stversions", true},
		{"Name anywhere in tree", []string{".git"}, ".git", "a/b/.git", true},
		{"Star on base name", []string{"*.bak"}, "x.bak", "dir/x.bak", true},
		{"Star does not match other ext", []string{"*.bak"}, "x.txt", "dir/x.txt", false},
		{"Question mark", []string{"file?.txt"}, "file1.txt", "file1.txt", true},
		{"Path pattern", []string{"photos/*.jpg"}, "a.jpg", "photos/a.jpg", true},
		{"Path pattern is anchored", []string{"photos/*.jpg"}, "a.jpg", "x/photos/a.jpg", false},
		{"Double star", []string{"**/cache/**"}, "f", "a/b/cache/c/f", true},
		{"Double star zero dirs", []string{"**/cache"}, "cache", "cache", true},
		{"Regex metachar is literal", []string{"a+b"}, "aab", "aab", false},
		{"No patterns", nil, "x", "x", false},
		{"Blank pattern ignored", []string{"  "}, "x", "x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(tt.patterns)
			if got := m.Match(tt.base, tt.rel); got != tt.expected {
				t.Errorf("Match(%q, %q) with %v = %v, want %v", tt.base, tt.rel, tt.patterns, got, tt.expected)
			}
		})
	}
}

func TestMatcher_Empty(t *testing.T) {
	if !NewMatcher(nil).Empty() {
		t.Error("Empty() = false for no patterns")
	}
	if NewMatcher([]string{"*.tmp"}).Empty() {
		t.Error("Empty() = true for one pattern")
	}
}
