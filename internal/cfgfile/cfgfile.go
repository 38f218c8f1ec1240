// Package cfgfile scans and patches Klipper-style config fragments.
//
// Klipper's config dialect is close to INI but not close enough for a
// round-tripping INI library: section headers may carry a second word
// (`[sgp30 chamber]`), both `#` and `;` start comments, and everything
// outside the managed block must be preserved byte for byte. The scanner
// here is line-oriented on purpose.
package cfgfile

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/klipper-extras/envsense/internal/messages"
)

// Sections returns the section header names found in content, in order.
// A prefix-style header like "sgp30 chamber" is returned whole.
func Sections(content string) ([]string, error) {
	var sections []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		name, ok := parseHeader(scanner.Text())
		if !ok {
			continue
		}
		sections = append(sections, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.CfgfileReadFailedFmt, err)
	}
	return sections, nil
}

// HasSection reports whether content declares a section named name, either
// exactly ("aht21") or as the prefix of a prefix-style section
// ("sgp30 chamber" matches "sgp30").
func HasSection(content string, name string) bool {
	sections, err := Sections(content)
	if err != nil {
		return false
	}
	for _, section := range sections {
		if section == name {
			return true
		}
		if prefix, _, found := strings.Cut(section, " "); found && prefix == name {
			return true
		}
	}
	return false
}

// ContainsMarker reports whether marker appears anywhere in content,
// including comments. This is the loose legacy check; callers should prefer
// HasSection and treat a marker-only hit as suspect.
func ContainsMarker(content string, marker string) bool {
	return strings.Contains(content, marker)
}

// AppendBlock returns content with block appended, separated from existing
// content by a single blank line and ending in exactly one newline. Existing
// content is preserved byte for byte.
func AppendBlock(content string, block string) string {
	block = strings.TrimRight(block, "\n")
	if content == "" {
		return block + "\n"
	}
	var sep string
	switch {
	case !strings.HasSuffix(content, "\n"):
		sep = "\n\n"
	case !strings.HasSuffix(content, "\n\n"):
		sep = "\n"
	}
	return content + sep + block + "\n"
}

// RemoveBlock removes the lines between begin and end inclusive, along with
// one preceding blank line when present. The second return value reports
// whether a block was found.
func RemoveBlock(content string, begin string, end string) (string, bool) {
	lines := strings.Split(content, "\n")
	start := -1
	stop := -1
	for i, line := range lines {
		if start < 0 && strings.TrimSpace(line) == begin {
			start = i
			continue
		}
		if start >= 0 && strings.TrimSpace(line) == end {
			stop = i
			break
		}
	}
	if start < 0 || stop < 0 {
		return content, false
	}
	if start > 0 && strings.TrimSpace(lines[start-1]) == "" {
		start--
	}
	kept := append([]string{}, lines[:start]...)
	kept = append(kept, lines[stop+1:]...)
	return strings.Join(kept, "\n"), true
}

// parseHeader returns the section name when line is a section header.
func parseHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
		return "", false
	}
	if !strings.HasPrefix(trimmed, "[") {
		return "", false
	}
	closing := strings.Index(trimmed, "]")
	if closing < 0 {
		return "", false
	}
	name := strings.TrimSpace(trimmed[1:closing])
	if name == "" {
		return "", false
	}
	return name, true
}
