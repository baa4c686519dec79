// Package frontmatter splits raw document bytes into a YAML metadata block
// and a Markdown body.
package frontmatter

import (
	"bytes"

	"github.com/goccy/go-yaml"
)

var delimiter = []byte("---")

// Parse returns the document's frontmatter map and body.
//
// Parse never fails: a document without a frontmatter block, or with one
// that is not valid YAML, yields an empty map and the raw bytes as body.
// A broken metadata block must never drop a document; it just carries no
// declared policy.
func Parse(raw []byte) (map[string]any, string) {
	meta, body, ok := split(raw)
	if !ok {
		return map[string]any{}, string(raw)
	}

	fields := map[string]any{}
	if err := yaml.Unmarshal(meta, &fields); err != nil {
		return map[string]any{}, string(raw)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, body
}

// split extracts the bytes between the opening and closing "---" lines.
// It reports ok=false when the document has no well-formed block.
func split(raw []byte) (meta []byte, body string, ok bool) {
	// the opening delimiter must be the very first line
	trimmed := bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")) // tolerate a BOM
	if !bytes.HasPrefix(trimmed, delimiter) {
		return nil, "", false
	}
	rest := trimmed[len(delimiter):]
	if len(rest) == 0 {
		return nil, "", false
	}
	if rest[0] == '\r' {
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0] != '\n' {
		// "---foo" is a thematic break or junk, not a frontmatter fence
		return nil, "", false
	}
	rest = rest[1:]

	// find the closing delimiter on its own line
	for idx := 0; idx <= len(rest); {
		lineEnd := bytes.IndexByte(rest[idx:], '\n')
		var line []byte
		next := len(rest) + 1
		if lineEnd >= 0 {
			line = rest[idx : idx+lineEnd]
			next = idx + lineEnd + 1
		} else {
			line = rest[idx:]
		}
		if bytes.Equal(bytes.TrimRight(line, "\r"), delimiter) {
			return rest[:idx], string(rest[min(next, len(rest)):]), true
		}
		idx = next
	}
	return nil, "", false
}
