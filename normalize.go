package gitglob

import (
	"bytes"
	"runtime"
	"strings"
)

// normalizePath normalizes a candidate path for matching.
//
// Steps, in order:
//  1. Convert backslashes to forward slashes (Windows only — on Unix, '\'
//     is a valid filename byte and must survive)
//  2. Collapse consecutive slashes
//  3. Remove every leading "./" so the result is idempotent
//  4. Remove a trailing slash
//
// Matcher applies this to candidate paths and to rule scopes. Pattern text is
// never normalized: patterns carry their own escaping and are matched as
// written.
func normalizePath(p string) string {
	if runtime.GOOS == "windows" {
		p = strings.ReplaceAll(p, "\\", "/")
	}

	// Collapse runs of '/' before the trailing slash is cut, so "a//" and
	// "a/" come out the same.
	if strings.Contains(p, "//") {
		var b strings.Builder
		b.Grow(len(p))
		prevSlash := false
		for i := 0; i < len(p); i++ {
			if p[i] == '/' {
				if !prevSlash {
					b.WriteByte('/')
				}
				prevSlash = true
			} else {
				b.WriteByte(p[i])
				prevSlash = false
			}
		}
		p = b.String()
	}

	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}

	return strings.TrimSuffix(p, "/")
}

// normalizeBasePath brings a rule scope into the same shape as candidate
// paths so prefix comparisons line up. Empty means the matching root.
func normalizeBasePath(basePath string) string {
	if basePath == "" {
		return ""
	}
	return normalizePath(basePath)
}

// normalizeContent prepares raw ignore-file bytes for line splitting:
// a UTF-8 BOM is stripped (repeatedly, for idempotency) and CRLF plus bare CR
// line endings become LF.
func normalizeContent(content []byte) []byte {
	if len(content) == 0 {
		return content
	}

	for len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	content = bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))

	return content
}

// trimTrailingSpaces removes trailing unescaped spaces from a pattern line.
//
// Git's rule is "trailing spaces are ignored unless they are quoted with
// backslash", and git trims spaces only — a trailing tab is pattern content.
// The scan runs forward with '\' consuming the byte after it, so the escape
// itself survives into the pattern text and is resolved during glob matching:
//
//	"foo "    -> "foo"
//	"foo\ "   -> "foo\ "  (escaped space kept, still escaped)
//	"foo\  "  -> "foo\ "  (only the second, unescaped space trimmed)
//	"foo\\ "  -> "foo\\"  (escaped backslash, space unescaped)
func trimTrailingSpaces(line string) string {
	lastSpace := -1
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			if lastSpace < 0 {
				lastSpace = i
			}
		case '\\':
			i++
			if i >= len(line) {
				return line // dangling escape; Parse rejects it later
			}
			lastSpace = -1
		default:
			lastSpace = -1
		}
	}
	if lastSpace < 0 {
		return line
	}
	return line[:lastSpace]
}
