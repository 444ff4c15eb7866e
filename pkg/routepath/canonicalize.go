// Package routepath normalizes navigation locations before they are matched
// against the route table, and maps them in and out of a history base.
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Result is a canonicalized location split into its parts.
type Result struct {
	// Path is the canonical path, always starting with "/".
	Path string

	// Query is the raw query string without the leading "?".
	Query string

	// Hash is the fragment without the leading "#".
	Hash string

	// Changed reports whether Path differs from the input path.
	Changed bool
}

// FullPath returns Path followed by the query and hash, if any.
func (r Result) FullPath() string {
	var b strings.Builder
	b.WriteString(r.Path)
	if r.Query != "" {
		b.WriteByte('?')
		b.WriteString(r.Query)
	}
	if r.Hash != "" {
		b.WriteByte('#')
		b.WriteString(r.Hash)
	}
	return b.String()
}

// Canonicalization errors.
var (
	ErrInvalidPath           = errors.New("invalid path")
	ErrBackslashInPath       = errors.New("path contains backslash")
	ErrNullByteInPath        = errors.New("path contains null byte")
	ErrInvalidPercentEscape  = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot       = errors.New("path escapes root via ..")
	ErrEncodedSlashInSegment = errors.New("encoded slash (%2F) in path segment")
)

// Canonicalize normalizes a location string.
//
// The path part is rewritten so that:
//   - it starts with "/" and has no trailing slash (except "/")
//   - repeated slashes are collapsed
//   - "." segments are dropped and ".." segments resolved
//
// Backslashes, NUL bytes, malformed percent escapes and ".." above the root
// are rejected. Query and hash are split off and kept verbatim.
func Canonicalize(input string) (Result, error) {
	if input == "" {
		return Result{Path: "/", Changed: true}, nil
	}

	rest, hash, _ := strings.Cut(input, "#")
	path, query, _ := strings.Cut(rest, "?")

	if strings.Contains(path, "\\") {
		return Result{}, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return Result{}, ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return Result{}, err
		}
	}

	original := path
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return Result{}, ErrPathEscapesRoot
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}
	path = "/" + strings.Join(segments, "/")

	return Result{
		Path:    path,
		Query:   query,
		Hash:    hash,
		Changed: path != original,
	}, nil
}

func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// DecodeSegment unescapes a single matched path segment. A decoded "/" is
// rejected so a parameter can never smuggle an extra segment.
func DecodeSegment(segment string) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	if strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInSegment
	}
	return decoded, nil
}

// ValidateNavPath canonicalizes a navigation target. Targets must be
// app-relative: absolute and protocol-relative URLs are rejected.
func ValidateNavPath(path string) (Result, error) {
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "//") {
		return Result{}, ErrInvalidPath
	}
	if !strings.HasPrefix(path, "/") {
		return Result{}, ErrInvalidPath
	}
	return Canonicalize(path)
}

// NormalizeBase turns a configured base URL into the prefix form used by
// history strategies: "" for the root, otherwise "/seg/seg" with no
// trailing slash. Any scheme and host are dropped.
func NormalizeBase(base string) string {
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		base = u.Path
	}
	base = strings.Trim(base, "/")
	if base == "" {
		return ""
	}
	return "/" + base
}

// StripBase removes a normalized base prefix from path. The second result
// is false when path lies outside base.
func StripBase(path, base string) (string, bool) {
	if base == "" {
		return path, true
	}
	if path == base {
		return "/", true
	}
	if rest, ok := strings.CutPrefix(path, base); ok && (strings.HasPrefix(rest, "/") || strings.HasPrefix(rest, "?") || strings.HasPrefix(rest, "#")) {
		if !strings.HasPrefix(rest, "/") {
			rest = "/" + rest
		}
		return rest, true
	}
	return path, false
}

// JoinBase prefixes an app-relative full path with a normalized base.
func JoinBase(base, fullPath string) string {
	return base + fullPath
}
