package file_editor

import "sort"

// samState is one state of a suffix automaton built over the search
// pattern P. len is the length of the longest string in the state's
// equivalence class; link is the suffix link; minEnd/maxEnd are
// the minimum and maximum end position in P, over all occurrences in P of
// strings represented by this state, used to classify occurrences of T
// against the automaton as prefix/suffix/strict-interior.
type samState struct {
	len      int
	link     int
	trans    map[rune]int
	minEnd   int
	maxEnd   int
}

// suffixAutomaton is a standard online suffix automaton over a pattern,
// augmented with pattern-relative end-position bounds.
type suffixAutomaton struct {
	states []samState
	last   int
}

const samRoot = 0

func newSuffixAutomaton(pattern []rune) *suffixAutomaton {
	sa := &suffixAutomaton{
		states: make([]samState, 0, 2*len(pattern)+1),
		last:   samRoot,
	}
	sa.states = append(sa.states, samState{len: 0, link: -1, trans: map[rune]int{}})
	for i, c := range pattern {
		sa.extend(c, i)
	}
	sa.propagateEndBounds()
	return sa
}

// extend adds character c (found at pattern position pos) to the automaton.
func (sa *suffixAutomaton) extend(c rune, pos int) {
	cur := len(sa.states)
	sa.states = append(sa.states, samState{
		len:    sa.states[sa.last].len + 1,
		link:   -1,
		trans:  map[rune]int{},
		minEnd: pos,
		maxEnd: pos,
	})

	p := sa.last
	for p != -1 {
		if _, ok := sa.states[p].trans[c]; ok {
			break
		}
		sa.states[p].trans[c] = cur
		p = sa.states[p].link
	}

	if p == -1 {
		sa.states[cur].link = samRoot
	} else {
		q := sa.states[p].trans[c]
		if sa.states[p].len+1 == sa.states[q].len {
			sa.states[cur].link = q
		} else {
			clone := len(sa.states)
			cloned := samState{
				len:    sa.states[p].len + 1,
				link:   sa.states[q].link,
				trans:  make(map[rune]int, len(sa.states[q].trans)),
				minEnd: sa.states[q].minEnd,
				maxEnd: sa.states[q].maxEnd,
			}
			for k, v := range sa.states[q].trans {
				cloned.trans[k] = v
			}
			sa.states = append(sa.states, cloned)

			for p != -1 && sa.states[p].trans[c] == q {
				sa.states[p].trans[c] = clone
				p = sa.states[p].link
			}
			sa.states[q].link = clone
			sa.states[cur].link = clone
		}
	}
	sa.last = cur
}

// propagateEndBounds walks states in descending len order and
// folds each state's (minEnd, maxEnd) into its suffix-link parent, so that
// every state's bounds cover all occurrences reachable through it.
func (sa *suffixAutomaton) propagateEndBounds() {
	order := make([]int, len(sa.states))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return sa.states[order[i]].len > sa.states[order[j]].len
	})
	for _, v := range order {
		link := sa.states[v].link
		if link == -1 {
			continue
		}
		if sa.states[v].minEnd < sa.states[link].minEnd {
			sa.states[link].minEnd = sa.states[v].minEnd
		}
		if sa.states[v].maxEnd > sa.states[link].maxEnd {
			sa.states[link].maxEnd = sa.states[v].maxEnd
		}
	}
}

// automatonOccurrence is one strict-interior ("mid") occurrence discovered
// while streaming T through the automaton.
type automatonOccurrence struct {
	flatEndExcl int // exclusive end position in T
	matchedLen  int
}

// scanMid streams text through the automaton and emits every position whose
// current match length reaches minMatchLen and is neither a prefix nor a
// suffix occurrence of the pattern.
func (sa *suffixAutomaton) scanMid(text []rune, patternLen, minMatchLen int) []automatonOccurrence {
	var occs []automatonOccurrence
	s := samRoot
	length := 0
	for i, c := range text {
		for s != samRoot {
			if _, ok := sa.states[s].trans[c]; ok {
				break
			}
			s = sa.states[s].link
			length = sa.states[s].len
		}
		if next, ok := sa.states[s].trans[c]; ok {
			s = next
			length++
		} else {
			s = samRoot
			length = 0
		}

		if length >= minMatchLen {
			st := sa.states[s]
			isPrefixOcc := st.minEnd == length-1
			isSuffixOcc := st.maxEnd == patternLen-1
			if !isPrefixOcc && !isSuffixOcc {
				occs = append(occs, automatonOccurrence{flatEndExcl: i + 1, matchedLen: length})
			}
		}
	}
	return occs
}
