package router

import (
	"fmt"
	"net/url"
	"strings"
)

// patternParams lists the parameter names of a chi pattern in order.
// A trailing catch-all is reported as "*".
func patternParams(pattern string) ([]string, error) {
	var names []string
	err := walkPattern(pattern, func(static string) {}, func(name string) {
		names = append(names, name)
	})
	return names, err
}

// buildPath fills the placeholders of pattern with params.
func buildPath(pattern string, params map[string]string) (string, error) {
	var b strings.Builder
	var missing []string
	err := walkPattern(pattern, func(static string) {
		b.WriteString(static)
	}, func(name string) {
		value, ok := params[name]
		if name == "*" {
			b.WriteString(escapeCatchAll(value))
			return
		}
		if !ok || value == "" {
			missing = append(missing, name)
			return
		}
		b.WriteString(url.PathEscape(value))
	})
	if err != nil {
		return "", err
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, strings.Join(missing, ", "))
	}
	return b.String(), nil
}

// walkPattern splits pattern into static text and parameter names.
// Regexp constraints may contain braces, so placeholders are matched by depth.
func walkPattern(pattern string, static func(string), param func(string)) error {
	start := 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			static(pattern[start:i])
			depth := 1
			j := i + 1
			for ; j < len(pattern) && depth > 0; j++ {
				switch pattern[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
			}
			if depth != 0 {
				return fmt.Errorf("%w: unclosed parameter in %q", ErrInvalidPattern, pattern)
			}
			name, _, _ := strings.Cut(pattern[i+1:j-1], ":")
			if name == "" {
				return fmt.Errorf("%w: empty parameter name in %q", ErrInvalidPattern, pattern)
			}
			param(name)
			i = j - 1
			start = j
		case '*':
			if i != len(pattern)-1 {
				return fmt.Errorf("%w: catch-all must be last in %q", ErrInvalidPattern, pattern)
			}
			static(pattern[start:i])
			param("*")
			start = len(pattern)
		}
	}
	static(pattern[start:])
	return nil
}

func escapeCatchAll(value string) string {
	parts := strings.Split(strings.Trim(value, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
