package file_editor

import "strings"

// detectLineEnding picks the line-ending literal for raw content: \r\n if it
// occurs anywhere, else \n, else \r, defaulting to \n for content with none.
func detectLineEnding(raw []rune) string {
	s := string(raw)
	if strings.Contains(s, "\r\n") {
		return "\r\n"
	}
	if strings.Contains(s, "\n") {
		return "\n"
	}
	if strings.Contains(s, "\r") {
		return "\r"
	}
	return "\n"
}

func endsWithLiteral(raw []rune, literal string) bool {
	lr := []rune(literal)
	if len(raw) < len(lr) {
		return false
	}
	return string(raw[len(raw)-len(lr):]) == literal
}

// spliceSpans removes or replaces spans in raw content, applied in
// descending rawStart order so earlier splices don't invalidate later raw
// indices ( ordering guarantee). replacement is inserted in place of each
// span; pass nil to delete.
func spliceSpans(raw []rune, spans []Span, replacement []rune) []rune {
	ordered := make([]Span, len(spans))
	copy(ordered, spans)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[j].RawStart > ordered[i].RawStart {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	out := raw
	for _, sp := range ordered {
		tail := append([]rune{}, out[sp.RawEndExcl:]...)
		out = append(out[:sp.RawStart:sp.RawStart], replacement...)
		out = append(out, tail...)
	}
	return out
}

// spliceInsert inserts text at raw index idx.
func spliceInsert(raw []rune, idx int, text []rune) []rune {
	tail := append([]rune{}, raw[idx:]...)
	out := append(raw[:idx:idx], text...)
	out = append(out, tail...)
	return out
}

// findLineBoundaryLeft walks left from idx across whitespace scalars that
// are not \n or \r, stopping at index 0 or at a \n/\r scalar. It returns the
// stopped index, or -1 if a non-whitespace scalar was encountered first.
func findLineBoundaryLeft(raw []rune, idx int) int {
	i := idx
	for i > 0 {
		c := raw[i-1]
		if c == '\n' || c == '\r' {
			return i
		}
		if !isWS(c) {
			return -1
		}
		i--
	}
	return 0
}

// findLineBoundaryRight is the mirror of findLineBoundaryLeft.
func findLineBoundaryRight(raw []rune, idx int) int {
	n := len(raw)
	i := idx
	for i < n {
		c := raw[i]
		if c == '\n' || c == '\r' {
			return i
		}
		if !isWS(c) {
			return -1
		}
		i++
	}
	return n
}

// extendOverNewlineRun extends idx rightward across a run of \r/\n scalars,
// used to consume a moved line's trailing newline.
func extendOverNewlineRun(raw []rune, idx int) int {
	i := idx
	for i < len(raw) && (raw[i] == '\n' || raw[i] == '\r') {
		i++
	}
	return i
}

// resolveAnchor runs the match engine for anchorText, optionally restricted
// to the raw half-open range [rangeStart, rangeEnd), and requires exactly
// one exact match in that range. paramName is used to key suggestions in the
// returned OpError.
func resolveAnchor(v *flatView, anchorText string, rangeStart, rangeEnd int, paramName string) (Span, *OpError) {
	result := findMatches(v, anchorText)
	if result.IsEmpty() {
		return Span{}, opErr(ErrNoMatch)
	}
	if !result.IsExact() {
		suggestions := make([]SuggestedValue, 0, len(result.Fuzzy))
		for _, sp := range result.Fuzzy {
			suggestions = append(suggestions, SuggestedValue{paramName: string(v.raw[sp.RawStart:sp.RawEndExcl])})
		}
		return Span{}, opErr(ErrNoMatch, suggestions...)
	}

	var inRange []Span
	for _, sp := range result.Exact {
		if sp.RawStart >= rangeStart && sp.RawEndExcl <= rangeEnd {
			inRange = append(inRange, sp)
		}
	}
	switch len(inRange) {
	case 0:
		return Span{}, opErr(ErrNoMatch)
	case 1:
		return inRange[0], nil
	default:
		widened := disambiguate(v, inRange)
		suggestions := make([]SuggestedValue, 0, len(widened))
		for _, w := range widened {
			suggestions = append(suggestions, SuggestedValue{paramName: w})
		}
		return Span{}, opErr(ErrMultipleMatches, suggestions...)
	}
}

// resolveBlockRange resolves the optional [blockStartMarker, blockEndMarker)
// scope that insert/move anchor resolution may be restricted to. A nil
// marker leaves that boundary at the edge of the raw content.
func resolveBlockRange(v *flatView, startMarker, endMarker *string) (int, int, *OpError) {
	start, end := 0, len(v.raw)

	if startMarker != nil {
		result := findMatches(v, *startMarker)
		if !result.IsExact() {
			return 0, 0, opErr(ErrNoMatch)
		}
		first := result.Exact[0]
		for _, sp := range result.Exact[1:] {
			if sp.RawStart < first.RawStart {
				first = sp
			}
		}
		start = first.RawEndExcl
	}

	if endMarker != nil {
		result := findMatches(v, *endMarker)
		if !result.IsExact() {
			return 0, 0, opErr(ErrNoMatch)
		}
		var last *Span
		for i := range result.Exact {
			sp := result.Exact[i]
			if sp.RawStart < start {
				continue
			}
			if last == nil || sp.RawStart > last.RawStart {
				last = &result.Exact[i]
			}
		}
		if last == nil {
			return 0, 0, opErr(ErrNoMatch)
		}
		end = last.RawStart
	}

	return start, end, nil
}
