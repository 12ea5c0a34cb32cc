package file_editor

import "unicode"

// flatView is the whitespace-stripped projection of a raw scalar sequence,
// plus the two monotone index maps back to it.
//
//   - rawToFlat has length len(raw): for each raw index i, the flat index it
//     projects to. A whitespace run projects to the flat index that follows
//     it; the last raw index projects to len(flat) if it was whitespace.
//   - flatToRaw has length len(flat): for each flat index j, the raw index
//     of that scalar in raw.
type flatView struct {
	raw       []rune
	flat      []rune
	rawToFlat []int
	flatToRaw []int
}

// buildFlatView performs a single O(len(raw)) left-to-right pass; whitespace
// scalars are dropped from flat but still recorded in rawToFlat so later
// raw-span reconstruction can invert the projection.
func buildFlatView(raw []rune) *flatView {
	rawToFlat := make([]int, len(raw))
	flat := make([]rune, 0, len(raw))
	flatToRaw := make([]int, 0, len(raw))

	j := 0
	for i, c := range raw {
		if unicode.IsSpace(c) {
			rawToFlat[i] = j
			continue
		}
		rawToFlat[i] = j
		flatToRaw = append(flatToRaw, i)
		flat = append(flat, c)
		j++
	}

	return &flatView{
		raw:       raw,
		flat:      flat,
		rawToFlat: rawToFlat,
		flatToRaw: flatToRaw,
	}
}

// normalize removes all whitespace from a search/anchor string, projecting
// it into the same space as the flat view.
func normalize(s string) []rune {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for _, c := range runes {
		if !unicode.IsSpace(c) {
			out = append(out, c)
		}
	}
	return out
}

// reconstructRawSpan maps a flat-space half-open range back to the raw
// scalar sequence. flatEndExcl == flatStart yields a degenerate
// raw span anchored at the same reconstructed raw start.
func (v *flatView) reconstructRawSpan(flatStart, flatEndExcl int) (rawStart, rawEndExcl int) {
	if flatStart >= len(v.flatToRaw) {
		return len(v.raw), len(v.raw)
	}
	rawStart = v.flatToRaw[flatStart]
	if flatEndExcl <= flatStart {
		return rawStart, rawStart
	}
	last := flatEndExcl - 1
	if last >= len(v.flatToRaw) {
		last = len(v.flatToRaw) - 1
	}
	rawEndExcl = v.flatToRaw[last] + 1
	return rawStart, rawEndExcl
}

func isWS(c rune) bool { return unicode.IsSpace(c) }

// countNonWs counts non-whitespace scalars in raw[start:end).
func countNonWs(raw []rune, start, end int) int {
	n := 0
	for i := start; i < end && i < len(raw); i++ {
		if i >= 0 && !isWS(raw[i]) {
			n++
		}
	}
	return n
}

// expandLeft moves i left across any whitespace run, then left across the
// non-whitespace token immediately preceding it, returning the resulting
// index.
func expandLeft(raw []rune, i int) int {
	for i > 0 && isWS(raw[i-1]) {
		i--
	}
	for i > 0 && !isWS(raw[i-1]) {
		i--
	}
	return i
}

// expandRight is the mirror of expandLeft.
func expandRight(raw []rune, i int) int {
	n := len(raw)
	for i < n && isWS(raw[i]) {
		i++
	}
	for i < n && !isWS(raw[i]) {
		i++
	}
	return i
}
