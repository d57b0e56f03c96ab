package domain

import (
	"regexp"
	"strings"
)

// DefaultArchiveLabel names the archive when no usable label is available.
const DefaultArchiveLabel = "BOOTH_Download"

// maxLabelRunes keeps the archive name well under common filesystem limits.
const maxLabelRunes = 200

// invalidLabelChars matches characters no mainstream filesystem accepts.
var invalidLabelChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// SanitizeLabel turns a human-readable title into a safe archive base name.
// Invalid characters become "_", the result is truncated to 200 runes and
// trimmed. An empty result falls back to DefaultArchiveLabel.
func SanitizeLabel(label string) string {
	name := strings.TrimSpace(label)
	name = invalidLabelChars.ReplaceAllString(name, "_")
	if runes := []rune(name); len(runes) > maxLabelRunes {
		name = string(runes[:maxLabelRunes])
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultArchiveLabel
	}
	return name
}

// ArchiveFilename returns "<label>.zip" for a sanitised label.
func ArchiveFilename(label string) string {
	return SanitizeLabel(label) + ".zip"
}
