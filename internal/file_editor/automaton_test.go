package file_editor

import "testing"

func TestSuffixAutomatonEndBoundsInvariant(t *testing.T) {
	sa := newSuffixAutomaton([]rune("banana"))
	for v, st := range sa.states {
		if st.link == -1 {
			continue
		}
		u := sa.states[st.link]
		if u.minEnd > st.minEnd {
			t.Errorf("state %d: link minEnd %d > state minEnd %d", v, u.minEnd, st.minEnd)
		}
		if u.maxEnd < st.maxEnd {
			t.Errorf("state %d: link maxEnd %d < state maxEnd %d", v, u.maxEnd, st.maxEnd)
		}
	}
}

func TestScanMidFindsStrictInteriorOccurrence(t *testing.T) {
	// "nan" occurs strictly inside "banana" (not a prefix, not a suffix).
	sa := newSuffixAutomaton([]rune("banana"))
	occs := sa.scanMid([]rune("xxnanxx"), 6, 3)

	found := false
	for _, o := range occs {
		if o.matchedLen == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("scanMid did not report the strict-interior occurrence of length 3")
	}
}

func TestScanMidExcludesPrefixAndSuffixOccurrences(t *testing.T) {
	sa := newSuffixAutomaton([]rune("banana"))
	// "ban" is a prefix of the pattern; streaming exactly "ban" alone should
	// produce no mid occurrence.
	occs := sa.scanMid([]rune("ban"), 6, 3)
	if len(occs) != 0 {
		t.Errorf("scanMid reported %d occurrences for a pure prefix match, want 0", len(occs))
	}
}
