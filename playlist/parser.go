// Package playlist implements best-effort parsing of the M3U-family channel playlist format.
//
// The parser is deliberately lenient: blank lines, unrelated comments, and URL
// lines with no preceding directive are skipped rather than rejected. A
// malformed playlist degrades to fewer channels, never to an error.
package playlist

import (
	"bufio"
	"strings"

	"github.com/samber/mo"
)

// directiveTag marks a channel metadata line, matched case-insensitively.
const directiveTag = "#EXTINF:"

// Recognized quoted attributes on a directive line.
const (
	attrGroup = "group-title"
	attrLogo  = "tvg-logo"
)

// Parse transforms playlist text into an ordered channel list.
// Each directive line opens a pending entry; the first following non-empty,
// non-comment line supplies its stream URL. Source order is preserved. A
// trailing directive with no URL before end of input is dropped.
func Parse(text string) []*Channel {
	var (
		channels []*Channel
		pending  *Channel
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if isDirective(line) {
			pending = parseDirective(line)
			continue
		}

		if strings.HasPrefix(line, "#") {
			continue
		}

		// A bare URL with no pending directive is ignored per the
		// best-effort policy.
		if pending == nil {
			continue
		}

		pending.URL = line
		channels = append(channels, pending)
		pending = nil
	}

	return channels
}

// isDirective reports whether a line opens a channel entry.
func isDirective(line string) bool {
	return len(line) >= len(directiveTag) &&
		strings.EqualFold(line[:len(directiveTag)], directiveTag)
}

// parseDirective extracts metadata from a single directive line.
// The display name is the free text after the last comma; quoted attributes
// may appear in any order or be absent entirely.
func parseDirective(line string) *Channel {
	ch := &Channel{
		Group: extractAttribute(line, attrGroup),
	}

	if logo := extractAttribute(line, attrLogo); logo != "" {
		ch.Logo = mo.Some(logo)
	}

	if idx := strings.LastIndex(line, ","); idx >= 0 {
		ch.Name = strings.TrimSpace(line[idx+1:])
	}

	return ch
}

// extractAttribute scans for `key="` and returns the text up to the next quote.
func extractAttribute(line, attr string) string {
	marker := attr + `="`
	start := strings.Index(line, marker)
	if start < 0 {
		return ""
	}

	rest := line[start+len(marker):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return ""
	}

	return rest[:end]
}
