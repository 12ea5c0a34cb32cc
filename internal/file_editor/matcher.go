package file_editor

import "sort"

const maxCandidates = 3

// minMatchLen implements the length-scaled threshold.
func minMatchLen(m int) int {
	if m <= 8 {
		if m < 3 {
			return m
		}
		return 3
	}
	percent := 0.4 + 0.4*min1(float64(m)/1500.0, 1.0)
	return ceilDiv(m, percent)
}

func min1(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func ceilDiv(m int, percent float64) int {
	v := float64(m) * percent
	n := int(v)
	if float64(n) < v {
		n++
	}
	return n
}

// findMatches is the entry point of the match engine (C5). search is the
// caller's raw search string (whitespace is stripped before matching); v is
// the flat view of the target file's raw text.
func findMatches(v *flatView, search string) MatchResult {
	pattern := normalize(search)
	if len(pattern) == 0 {
		return MatchResult{}
	}

	exact := findExactMatches(v, pattern)
	if len(exact) > 0 {
		return MatchResult{Exact: exact}
	}

	fuzzy := findFuzzyCandidates(v, pattern)
	return MatchResult{Fuzzy: fuzzy}
}

// findExactMatches scans the flat text left-to-right, advancing the next
// scan position by +1 (not +len(pattern)) so overlapping seeds are allowed
// to surface for disambiguation. Capped at 3 matches, sorted by flatStart.
func findExactMatches(v *flatView, pattern []rune) []Span {
	text := v.flat
	m, n := len(pattern), len(text)
	if m == 0 || m > n {
		return nil
	}

	var spans []Span
	for p := 0; p+m <= n && len(spans) < maxCandidates; p++ {
		if runesEqual(text[p:p+m], pattern) {
			rs, re := v.reconstructRawSpan(p, p+m)
			spans = append(spans, Span{
				FlatStart: p, FlatEndExcl: p + m,
				RawStart: rs, RawEndExcl: re,
				IsExactMatch: true,
			})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].FlatStart < spans[j].FlatStart })
	return spans
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// findFuzzyCandidates runs the full fuzzy phase: prefix/suffix
// Z-array analysis, strict-interior automaton scanning, prefix+suffix
// combination, global ranking by matched length, and per-kind span
// materialization.
func findFuzzyCandidates(v *flatView, pattern []rune) []Span {
	text := v.flat
	m := len(pattern)
	minLen := minMatchLen(m)

	prefixArr := prefixMatchArray(pattern, text)
	suffixArr := suffixMatchArray(pattern, text)

	var prefixMatches, suffixMatches []rawMatch
	for p, l := range prefixArr {
		if l > 0 {
			prefixMatches = append(prefixMatches, rawMatch{kind: kindPrefix, flatStart: p, flatEndExcl: p + l, matchedLen: l})
		}
	}
	for s, l := range suffixArr {
		if l > 0 {
			suffixMatches = append(suffixMatches, rawMatch{kind: kindSuffix, flatStart: s, flatEndExcl: s + l, matchedLen: l})
		}
	}

	sam := newSuffixAutomaton(pattern)
	midOccs := sam.scanMid(text, m, minLen)
	var midMatches []rawMatch
	for _, o := range midOccs {
		midMatches = append(midMatches, rawMatch{
			kind:        kindMid,
			flatStart:   o.flatEndExcl - o.matchedLen,
			flatEndExcl: o.flatEndExcl,
			matchedLen:  o.matchedLen,
		})
	}

	combined := combineMatches(prefixMatches, suffixMatches, m, minLen)

	var pool []rawMatch
	for _, rm := range prefixMatches {
		if rm.matchedLen >= minLen {
			pool = append(pool, rm)
		}
	}
	for _, rm := range suffixMatches {
		if rm.matchedLen >= minLen {
			pool = append(pool, rm)
		}
	}
	pool = append(pool, midMatches...)
	pool = append(pool, combined...)

	if len(pool) == 0 {
		return nil
	}

	maxLen := 0
	for _, rm := range pool {
		if rm.matchedLen > maxLen {
			maxLen = rm.matchedLen
		}
	}

	type key struct{ s, e int }
	seen := map[key]bool{}
	var kept []rawMatch
	for _, rm := range pool {
		if rm.matchedLen != maxLen {
			continue
		}
		k := key{rm.flatStart, rm.flatEndExcl}
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, rm)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].flatStart < kept[j].flatStart })
	if len(kept) > maxCandidates {
		kept = kept[:maxCandidates]
	}

	spans := make([]Span, 0, len(kept))
	for _, rm := range kept {
		spans = append(spans, materializeCandidate(v, rm, m))
	}
	return spans
}

// combineMatches pairs kept prefix/suffix raw-matches into "combined"
// candidates anchored on both ends of the pattern.
func combineMatches(prefixMatches, suffixMatches []rawMatch, patternLen, minLen int) []rawMatch {
	halfThreshold := minLen / 2
	if halfThreshold < 1 {
		halfThreshold = 1
	}

	var keptPrefix, keptSuffix []rawMatch
	for _, rm := range prefixMatches {
		if rm.matchedLen >= halfThreshold {
			keptPrefix = append(keptPrefix, rm)
		}
	}
	for _, rm := range suffixMatches {
		if rm.matchedLen >= halfThreshold {
			keptSuffix = append(keptSuffix, rm)
		}
	}
	sort.Slice(keptSuffix, func(i, j int) bool { return keptSuffix[i].flatStart < keptSuffix[j].flatStart })

	lowBound := 0.75 * float64(patternLen)
	highBound := 1.25 * float64(patternLen)

	var combined []rawMatch
	for _, pre := range keptPrefix {
		for _, suf := range keptSuffix {
			if suf.flatStart < pre.flatEndExcl {
				continue
			}
			span := suf.flatEndExcl - pre.flatStart
			if float64(span) > highBound {
				break
			}
			if float64(span) < lowBound {
				continue
			}
			if pre.matchedLen+suf.matchedLen < minLen {
				continue
			}
			combined = append(combined, rawMatch{
				kind:        kindCombined,
				flatStart:   pre.flatStart,
				flatEndExcl: suf.flatEndExcl,
				matchedLen:  pre.matchedLen + suf.matchedLen,
			})
		}
	}
	return combined
}

// materializeCandidate reconstructs a raw span for a chosen raw-match and
// expands it to token boundaries for every kind except combined (whose
// endpoints are already anchored to substrings of the pattern).
func materializeCandidate(v *flatView, rm rawMatch, patternLen int) Span {
	raw := v.raw

	switch rm.kind {
	case kindPrefix:
		// Start at the first matched scalar, extend to the end of its
		// token, then widen rightward one token at a time until enough
		// non-whitespace content is captured.
		start, _ := v.reconstructRawSpan(rm.flatStart, rm.flatStart+1)
		end := expandRight(raw, start)
		for countNonWs(raw, start, end) < patternLen && end < len(raw) {
			next := expandRight(raw, end+1)
			if next == end {
				break
			}
			end = next
		}
		return Span{FlatStart: rm.flatStart, FlatEndExcl: rm.flatEndExcl, RawStart: start, RawEndExcl: end}

	case kindSuffix:
		// Mirror of prefix: anchor on the reconstructed raw end and widen
		// leftward.
		_, end := v.reconstructRawSpan(rm.flatStart, rm.flatEndExcl)
		start := expandLeft(raw, end)
		for countNonWs(raw, start, end) < patternLen && start > 0 {
			next := expandLeft(raw, start-1)
			if next == start {
				break
			}
			start = next
		}
		return Span{FlatStart: rm.flatStart, FlatEndExcl: rm.flatEndExcl, RawStart: start, RawEndExcl: end}

	case kindMid:
		startRaw, endRaw := v.reconstructRawSpan(rm.flatStart, rm.flatEndExcl)
		start := expandLeft(raw, startRaw)
		end := expandRight(raw, endRaw)
		count := countNonWs(raw, start, end)
		widenLeftNext := true
		for count < patternLen {
			newStart, newEnd := start, end
			if widenLeftNext && start > 0 {
				newStart = expandLeft(raw, start-1)
			} else if !widenLeftNext && end < len(raw) {
				newEnd = expandRight(raw, end+1)
			}
			if newStart == start && newEnd == end {
				// preferred side couldn't grow; try the other side once
				if widenLeftNext && end < len(raw) {
					newEnd = expandRight(raw, end+1)
				} else if !widenLeftNext && start > 0 {
					newStart = expandLeft(raw, start-1)
				}
			}
			newCount := countNonWs(raw, newStart, newEnd)
			if newCount <= count {
				break
			}
			start, end, count = newStart, newEnd, newCount
			widenLeftNext = !widenLeftNext
		}
		return Span{FlatStart: rm.flatStart, FlatEndExcl: rm.flatEndExcl, RawStart: start, RawEndExcl: end}

	default: // kindCombined: no token-boundary expansion
		start, end := v.reconstructRawSpan(rm.flatStart, rm.flatEndExcl)
		return Span{FlatStart: rm.flatStart, FlatEndExcl: rm.flatEndExcl, RawStart: start, RawEndExcl: end}
	}
}
