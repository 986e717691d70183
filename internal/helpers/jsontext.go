package helpers

import (
	"errors"
	"strings"
)

// ExtractJSONObject returns the first balanced JSON object in s. Models
// occasionally wrap structured output in a ```json fence or add a sentence
// around it; both are tolerated. Braces inside strings are ignored.
func ExtractJSONObject(s string) (string, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	if inner, ok := unfence(s); ok {
		s = strings.TrimSpace(inner)
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			continue
		}
		if end, ok := balancedEnd(s, i); ok {
			return s[i : end+1], nil
		}
	}
	return "", errors.New("no balanced JSON object found")
}

// unfence returns the body of a leading ``` or ~~~ block, language tag dropped.
func unfence(s string) (string, bool) {
	for _, fence := range []string{"```", "~~~"} {
		if !strings.HasPrefix(s, fence) {
			continue
		}
		rest := s[len(fence):]
		nl := strings.IndexByte(rest, '\n')
		if nl == -1 {
			return "", false
		}
		rest = rest[nl+1:]
		end := strings.Index(rest, fence)
		if end == -1 {
			return "", false
		}
		return rest[:end], true
	}
	return "", false
}

// balancedEnd finds the index of the brace closing the one at start.
func balancedEnd(s string, start int) (int, bool) {
	depth := 0
	inString, escape := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escape:
				escape = false
			case c == '\\':
				escape = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i, c == '}'
			}
			if depth < 0 {
				return 0, false
			}
		}
	}
	return 0, false
}
