package file_editor

// disambiguate takes two or more exact matches whose flat-view slice is
// identical and repeatedly expands each member's raw span by one token on
// each side until every member's projected content is distinct, or until no
// further expansion is possible. It returns one raw-text string per input
// span (possibly widened) suitable for use as a retry suggestion.
func disambiguate(v *flatView, spans []Span) []string {
	type member struct {
		span         Span
		expandable   bool
	}
	members := make([]member, len(spans))
	for i, s := range spans {
		members[i] = member{span: s, expandable: true}
	}

	projection := func(m member) string {
		return string(v.flat[m.span.FlatStart:m.span.FlatEndExcl])
	}

	for {
		groups := map[string][]int{}
		for i, m := range members {
			p := projection(m)
			groups[p] = append(groups[p], i)
		}

		anyDuplicate := false
		for _, idxs := range groups {
			if len(idxs) >= 2 {
				anyDuplicate = true
			}
		}
		if !anyDuplicate {
			break
		}

		progressed := false
		for _, idxs := range groups {
			if len(idxs) < 2 {
				continue
			}
			for _, idx := range idxs {
				m := &members[idx]
				if !m.expandable {
					continue
				}
				newStart := expandLeftClamped(v.raw, m.span.RawStart-1)
				newEnd := expandRightClamped(v.raw, m.span.RawEndExcl+1)
				if newStart == m.span.RawStart && newEnd == m.span.RawEndExcl {
					m.expandable = false
					continue
				}
				m.span.RawStart = newStart
				m.span.RawEndExcl = newEnd
				m.span.FlatStart = v.rawToFlat[clampIdx(newStart, len(v.rawToFlat)-1)]
				m.span.FlatEndExcl = flatEndForRaw(v, newEnd)
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	out := make([]string, len(members))
	for i, m := range members {
		out[i] = string(v.raw[m.span.RawStart:m.span.RawEndExcl])
	}
	return out
}

func clampIdx(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

// flatEndForRaw computes the flat-space exclusive end corresponding to a raw
// exclusive end.
func flatEndForRaw(v *flatView, rawEndExcl int) int {
	if rawEndExcl <= 0 {
		return 0
	}
	if rawEndExcl > len(v.rawToFlat) {
		rawEndExcl = len(v.rawToFlat)
	}
	return v.rawToFlat[rawEndExcl-1] + 1
}

// expandLeftClamped/expandRightClamped apply expandLeft/expandRight with
// their seed index clamped into [0, len(raw)] first, per C6's bounds
// clamping requirement.
func expandLeftClamped(raw []rune, i int) int {
	if i < 0 {
		i = 0
	}
	return expandLeft(raw, i)
}

func expandRightClamped(raw []rune, i int) int {
	if i > len(raw) {
		i = len(raw)
	}
	return expandRight(raw, i)
}
