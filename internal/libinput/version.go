package libinput

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var verRe = regexp.MustCompile(`\bv?(\d+(?:\.\d+)*)\b`)

// ToolVersion is a dotted numeric version such as 1.8 or 1.22.1.
type ToolVersion struct {
	raw   string
	parts []int
}

// ParseVersion extracts the first dotted numeric version from s.
// Probe output like "1.25.0\n" or "libinput 1.25.0" both parse.
func ParseVersion(s string) (ToolVersion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ToolVersion{}, fmt.Errorf("parse version: empty input")
	}
	line := strings.Split(s, "\n")[0]
	m := verRe.FindStringSubmatch(line)
	if len(m) < 2 {
		return ToolVersion{}, fmt.Errorf("parse version: no version in %q", line)
	}
	fields := strings.Split(m[1], ".")
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return ToolVersion{}, fmt.Errorf("parse version %q: %w", m[1], err)
		}
		parts = append(parts, n)
	}
	return ToolVersion{raw: m[1], parts: parts}, nil
}

// MustParseVersion is ParseVersion for constants; it panics on bad input.
func MustParseVersion(s string) ToolVersion {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v ToolVersion) String() string { return v.raw }

// IsZero reports whether v was never parsed.
func (v ToolVersion) IsZero() bool { return len(v.parts) == 0 }

// Compare returns -1, 0 or 1. Missing trailing components count as zero,
// so 1.8 and 1.8.0 are equal.
func (v ToolVersion) Compare(o ToolVersion) int {
	n := len(v.parts)
	if len(o.parts) > n {
		n = len(o.parts)
	}
	for i := 0; i < n; i++ {
		a, b := component(v.parts, i), component(o.parts, i)
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// Less reports whether v < o.
func (v ToolVersion) Less(o ToolVersion) bool { return v.Compare(o) < 0 }

// AtLeast reports whether v >= o.
func (v ToolVersion) AtLeast(o ToolVersion) bool { return v.Compare(o) >= 0 }

func component(p []int, i int) int {
	if i < len(p) {
		return p[i]
	}
	return 0
}
