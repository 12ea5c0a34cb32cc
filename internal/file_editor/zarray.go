package file_editor

// virtualConcat implements V = P . sep . T without materializing it: index m
// (the length of P) is a sentinel that cannot match either side.
type virtualConcat struct {
	p, t []rune
	m, n int
}

func newVirtualConcat(p, t []rune) *virtualConcat {
	return &virtualConcat{p: p, t: t, m: len(p), n: len(t)}
}

func (v *virtualConcat) len() int { return v.m + 1 + v.n }

// at returns the scalar at virtual index i, or a sentinel rune (-1, which
// cannot equal any real scalar) at the separator position.
func (v *virtualConcat) at(i int) rune {
	switch {
	case i < v.m:
		return v.p[i]
	case i == v.m:
		return -1
	default:
		return v.t[i-v.m-1]
	}
}

// zArrayVirtual computes the Z-array over a virtualConcat without ever
// allocating the concatenated sequence; used so prefix/suffix analysis stays
// O(m+n) in time and memory.
func zArrayVirtual(v *virtualConcat) []int {
	n := v.len()
	z := make([]int, n)
	if n == 0 {
		return z
	}
	l, r := 0, 0
	for i := 1; i < n; i++ {
		if i < r {
			k := i - l
			if z[k] < r-i {
				z[i] = z[k]
				continue
			}
		}
		lo := r
		if i > lo {
			lo = i
		}
		for lo < n && v.at(lo-i) == v.at(lo) {
			lo++
		}
		z[i] = lo - i
		if lo > r {
			l, r = i, lo
		}
	}
	return z
}

// prefixMatchArray returns, for each text position p, the maximum length ℓ
// such that t[p:p+ℓ] == pat[0:ℓ].
func prefixMatchArray(pat, text []rune) []int {
	m, n := len(pat), len(text)
	out := make([]int, n)
	if m == 0 {
		return out
	}
	z := zArrayVirtual(newVirtualConcat(pat, text))
	for p := 0; p < n; p++ {
		l := z[m+1+p]
		if l > m {
			l = m
		}
		out[p] = l
	}
	return out
}

func reverseRunes(r []rune) []rune {
	out := make([]rune, len(r))
	for i, c := range r {
		out[len(r)-1-i] = c
	}
	return out
}

// suffixMatchArray returns, for each text start s, the maximum length ℓ such
// that t[s:s+ℓ] == pat[m-ℓ:m]. It is computed by reversing both
// sequences, running the same prefix analysis, and re-indexing the result
// back to a forward start position; when two reverse-derived matches would
// resolve to the same forward start, the longer one is kept.
func suffixMatchArray(pat, text []rune) []int {
	m, n := len(pat), len(text)
	out := make([]int, n)
	if m == 0 {
		return out
	}
	revPat := reverseRunes(pat)
	revText := reverseRunes(text)
	revPrefix := prefixMatchArray(revPat, revText)
	// revPrefix[q] is the max ℓ with revText[q:q+ℓ] == revPat[0:ℓ], i.e.
	// text[n-q-ℓ : n-q] == pat[m-ℓ:m]. The forward start is s = n-q-ℓ,
	// which depends on ℓ itself, so recover it directly per q.
	for q := 0; q < n; q++ {
		l := revPrefix[q]
		if l == 0 {
			continue
		}
		s := n - q - l
		if s < 0 {
			continue
		}
		if l > out[s] {
			out[s] = l
		}
	}
	return out
}
