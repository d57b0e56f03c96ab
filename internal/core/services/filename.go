package services

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// defaultFilename is used when neither headers nor URLs yield a name.
const defaultFilename = "file.bin"

var (
	quotedFilename   = regexp.MustCompile(`(?i)filename\*?=\s*"([^"]+)"`)
	extendedFilename = regexp.MustCompile(`(?i)filename\*=UTF-8''([^;\s]+)`)
	bareFilename     = regexp.MustCompile(`(?i)filename\*?=\s*([^;\s]+)`)
)

// ResolveFilename picks the archive entry name for a fetched payload.
//
// Content-Disposition lines are tried in order for a quoted filename, an
// RFC 5987 filename*=UTF-8'' token and a bare filename token. When no line
// yields a name, the last path segment of finalURL (or originalURL when
// finalURL is empty) is used, defaulting to "file.bin". Every candidate is
// percent-decoded when possible and cut at the first '?'.
func ResolveFilename(responseHeaders, finalURL, originalURL string) string {
	for _, line := range strings.Split(responseHeaders, "\n") {
		if !strings.Contains(strings.ToLower(line), "content-disposition") {
			continue
		}
		if m := quotedFilename.FindStringSubmatch(line); m != nil {
			return cleanFilename(m[1])
		}
		if m := extendedFilename.FindStringSubmatch(line); m != nil {
			return cleanFilename(m[1])
		}
		if m := bareFilename.FindStringSubmatch(line); m != nil {
			return cleanFilename(strings.NewReplacer(`'`, "", `"`, "").Replace(m[1]))
		}
	}

	fallback := finalURL
	if fallback == "" {
		fallback = originalURL
	}
	segment := fallback[strings.LastIndex(fallback, "/")+1:]
	if segment == "" {
		segment = defaultFilename
	}
	return cleanFilename(segment)
}

// cleanFilename decodes token on a best-effort basis and strips any query.
func cleanFilename(token string) string {
	name := decodeComponent(token)
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	return name
}

// decodeComponent percent-decodes s. Malformed escapes or a result that is
// not valid UTF-8 leave s unchanged.
func decodeComponent(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil || !utf8.ValidString(decoded) {
		return s
	}
	return decoded
}
