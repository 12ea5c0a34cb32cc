package file_editor

import "testing"

func TestMinMatchLen(t *testing.T) {
	cases := []struct {
		m    int
		want int
	}{
		{m: 1, want: 1},
		{m: 2, want: 2},
		{m: 5, want: 3},
		{m: 8, want: 3},
	}
	for _, c := range cases {
		if got := minMatchLen(c.m); got != c.want {
			t.Errorf("minMatchLen(%d) = %d, want %d", c.m, got, c.want)
		}
	}
}

func TestFindMatchesEmptyPatternReturnsNoSpans(t *testing.T) {
	v := buildFlatView([]rune("anything at all"))
	result := findMatches(v, "   \t\n")
	if !result.IsEmpty() {
		t.Errorf("expected empty result for all-whitespace search")
	}
}

func TestFindExactMatchesOverlapping(t *testing.T) {
	v := buildFlatView([]rune("aaaa"))
	result := findMatches(v, "aa")
	if !result.IsExact() {
		t.Fatalf("expected exact matches")
	}
	if len(result.Exact) != 3 {
		t.Errorf("overlapping exact scan found %d matches, want 3", len(result.Exact))
	}
	for i, sp := range result.Exact {
		if sp.FlatStart != i {
			t.Errorf("match %d flatStart = %d, want %d", i, sp.FlatStart, i)
		}
	}
}

func TestFindExactMatchesCappedAtThree(t *testing.T) {
	v := buildFlatView([]rune("aaaaaaaa"))
	result := findMatches(v, "a")
	if len(result.Exact) != maxCandidates {
		t.Errorf("exact matches = %d, want capped at %d", len(result.Exact), maxCandidates)
	}
}

func TestFindMatchesExactTakesPriorityOverFuzzy(t *testing.T) {
	v := buildFlatView([]rune("hello world"))
	result := findMatches(v, "hello")
	if !result.IsExact() || len(result.Fuzzy) != 0 {
		t.Errorf("expected exact-only result when an exact match exists")
	}
}

func TestFindMatchesFuzzyFallback(t *testing.T) {
	v := buildFlatView([]rune("function helloWorld() {\n  console.log('hi');\n}"))
	result := findMatches(v, "console.log(hi)")
	if result.IsExact() {
		t.Fatalf("did not expect an exact match")
	}
	if len(result.Fuzzy) == 0 {
		t.Fatalf("expected at least one fuzzy candidate")
	}
	found := false
	for _, sp := range result.Fuzzy {
		raw := string(v.raw[sp.RawStart:sp.RawEndExcl])
		if contains(raw, "console.log('hi')") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a fuzzy candidate containing console.log('hi')")
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func TestCombineMatches(t *testing.T) {
	prefix := []rawMatch{{kind: kindPrefix, flatStart: 0, flatEndExcl: 4, matchedLen: 4}}
	suffix := []rawMatch{{kind: kindSuffix, flatStart: 6, flatEndExcl: 10, matchedLen: 4}}
	combined := combineMatches(prefix, suffix, 10, 5)
	if len(combined) != 1 {
		t.Fatalf("expected one combined candidate, got %d", len(combined))
	}
	if combined[0].flatStart != 0 || combined[0].flatEndExcl != 10 {
		t.Errorf("combined span = [%d,%d), want [0,10)", combined[0].flatStart, combined[0].flatEndExcl)
	}
}

func TestCombineMatchesRejectsOutOfRangeSpan(t *testing.T) {
	prefix := []rawMatch{{kind: kindPrefix, flatStart: 0, flatEndExcl: 2, matchedLen: 2}}
	suffix := []rawMatch{{kind: kindSuffix, flatStart: 50, flatEndExcl: 52, matchedLen: 2}}
	combined := combineMatches(prefix, suffix, 10, 5)
	if len(combined) != 0 {
		t.Errorf("expected no combined candidates when span exceeds 1.25x pattern length, got %d", len(combined))
	}
}
