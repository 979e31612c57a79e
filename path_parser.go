package propedit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// pathParser tokenizes path text into ordered segments
type pathParser struct {
	// Compiled once; segment names follow identifier rules
	namePattern *regexp.Regexp
}

var defaultPathParser = newPathParser()

func newPathParser() *pathParser {
	return &pathParser{
		namePattern: regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),
	}
}

// Parse tokenizes path text into a PathExpression. A leading "Slot."
// segment switches the root to attachment addressing; a bare "Slot" with
// no follow-up segment is rejected. Malformed bracket syntax fails with
// ErrInvalidPath citing the offending segment, before any field lookup.
func Parse(path string) (*PathExpression, error) {
	return defaultPathParser.parse(path)
}

func (pp *pathParser) parse(path string) (*PathExpression, error) {
	if path == "" {
		return nil, newPathError(path, "empty path")
	}
	if len(path) > MaxPathLength {
		return nil, newPathError(path, fmt.Sprintf("path exceeds %d characters", MaxPathLength))
	}

	parts, err := pp.splitSegments(path)
	if err != nil {
		return nil, err
	}
	if len(parts) > MaxPathDepth {
		return nil, newPathError(path, fmt.Sprintf("path exceeds %d segments", MaxPathDepth))
	}

	expr := &PathExpression{Original: path}
	for i, part := range parts {
		seg, err := pp.parseSegment(path, part)
		if err != nil {
			return nil, err
		}
		if i == 0 && seg.Name == SlotRootName && seg.Kind == IndexNone {
			expr.SlotRooted = true
			continue
		}
		expr.Segments = append(expr.Segments, seg)
	}

	if len(expr.Segments) == 0 {
		if expr.SlotRooted {
			return nil, newPathError(path, "bare 'Slot' addresses nothing; a slot property must follow")
		}
		return nil, newPathError(path, "no segments")
	}
	return expr, nil
}

// splitSegments splits on dots while respecting bracket boundaries, so a
// map key may contain a literal dot.
func (pp *pathParser) splitSegments(path string) ([]string, error) {
	var parts []string
	var current strings.Builder
	depth := 0

	for _, ch := range path {
		switch ch {
		case '[':
			depth++
			if depth > 1 {
				return nil, newPathError(path, fmt.Sprintf("nested brackets in segment '%s'", current.String()+"["))
			}
			current.WriteRune(ch)
		case ']':
			depth--
			if depth < 0 {
				return nil, newPathError(path, fmt.Sprintf("unmatched ']' in segment '%s'", current.String()+"]"))
			}
			current.WriteRune(ch)
		case '.':
			if depth > 0 {
				current.WriteRune(ch)
				break
			}
			if current.Len() == 0 {
				return nil, newPathError(path, "empty segment")
			}
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	if depth > 0 {
		return nil, newPathError(path, fmt.Sprintf("unterminated index in segment '%s'", current.String()))
	}
	if current.Len() == 0 {
		return nil, newPathError(path, "empty segment")
	}
	parts = append(parts, current.String())
	return parts, nil
}

// parseSegment parses one "Name" or "Name[IndexOrKey]" token.
func (pp *pathParser) parseSegment(path, part string) (Segment, error) {
	if len(part) > MaxSegmentLength {
		return Segment{}, newPathError(path, fmt.Sprintf("segment '%s' exceeds %d characters", part, MaxSegmentLength))
	}

	name := part
	bracket := strings.IndexByte(part, '[')
	if bracket < 0 {
		if !pp.namePattern.MatchString(name) {
			return Segment{}, newPathError(path, fmt.Sprintf("invalid segment name '%s'", name))
		}
		return Segment{Name: name}, nil
	}

	if !strings.HasSuffix(part, "]") {
		return Segment{}, newPathError(path, fmt.Sprintf("unterminated index in segment '%s'", part))
	}
	name = part[:bracket]
	content := part[bracket+1 : len(part)-1]

	if !pp.namePattern.MatchString(name) {
		return Segment{}, newPathError(path, fmt.Sprintf("invalid segment name '%s'", name))
	}
	if content == "" {
		return Segment{}, newPathError(path, fmt.Sprintf("empty index in segment '%s'", part))
	}

	if isDigits(content) {
		idx, err := strconv.Atoi(content)
		if err != nil {
			return Segment{}, newPathError(path, fmt.Sprintf("invalid index '%s' in segment '%s'", content, part))
		}
		return Segment{Name: name, Kind: IndexNumeric, Index: idx}, nil
	}

	// Any non-numeric token is a map key, taken verbatim.
	return Segment{Name: name, Kind: IndexKeyed, Key: content}, nil
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
