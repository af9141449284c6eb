// Package memo encodes the external-worker marker inside the free-text
// memo column of an attendance entry. The storage schema has no dedicated
// columns for external display names, so one text field carries
// "ネクサス / <name>[ / <memo>]" — a compatibility constraint inherited
// from the data, isolated here rather than parsed ad hoc at every reader.
package memo

import "strings"

// Marker identifies an external-path memo.
const Marker = "ネクサス"

const separator = " / "

// Encode builds the memo text for an external row.
func Encode(displayName, freeMemo string) string {
	freeMemo = strings.TrimSpace(freeMemo)
	if freeMemo == "" {
		return Marker + separator + displayName
	}
	return Marker + separator + displayName + separator + freeMemo
}

// normalize folds full-width slashes and ideographic spaces to their
// ASCII forms so hand-typed markers still decode.
func normalize(value string) string {
	value = strings.ReplaceAll(value, "／", "/")
	value = strings.ReplaceAll(value, "　", " ")
	return strings.TrimSpace(value)
}

// Decode splits an external memo into display name and free memo. ok is
// false when the text does not carry the marker; ordinary memos are never
// misread as external rows.
//
// Segments are split on " / " with no escape scheme, exactly like the data
// already in the column: a free memo containing a literal " / " will
// mis-split. Kept as-is for compatibility with stored rows.
func Decode(value string) (name, freeMemo string, ok bool) {
	normalized := normalize(value)
	if !strings.HasPrefix(normalized, Marker) {
		return "", "", false
	}
	rest := strings.TrimLeft(strings.TrimPrefix(normalized, Marker), " ")
	if strings.HasPrefix(rest, "/") {
		rest = strings.TrimSpace(rest[1:])
	}
	if rest == "" {
		return "", "", false
	}
	parts := strings.Split(rest, separator)
	name = strings.TrimSpace(parts[0])
	if name == "" {
		return "", "", false
	}
	if len(parts) > 1 {
		freeMemo = strings.Join(parts[1:], separator)
	}
	return name, freeMemo, true
}

// ParseName returns only the display name, or "" for non-external memos.
func ParseName(value string) string {
	name, _, ok := Decode(value)
	if !ok {
		return ""
	}
	return name
}

// IsExternal reports whether the memo text carries the marker prefix.
func IsExternal(value string) bool {
	_, _, ok := Decode(value)
	return ok
}
