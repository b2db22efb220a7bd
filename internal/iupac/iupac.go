// internal/iupac/iupac.go
package iupac

import "math/bits"

// 4-bit mask per base
const (
	A uint8 = 1 << iota
	C
	G
	T
)

// symMask maps every accepted column symbol to the set of bases it stands
// for. Ambiguity codes OR the two bases of the heterozygous call; the three
// missing markers carry the empty set so they vanish from per-site unions.
var symMask = map[byte]uint8{
	'A': A,
	'C': C,
	'G': G,
	'T': T,
	'R': A | G, // puRine
	'Y': C | T, // pYrimidine
	'S': C | G, // Strong
	'W': A | T, // Weak
	'K': G | T, // Keto
	'M': A | C, // aMino
	'-': 0,
	'?': 0,
	'N': 0,
}

// maskSym is the reverse table: one set bit decodes to the plain base,
// two set bits to the ambiguity code of the pair.
var maskSym = map[uint8]byte{
	A:     'A',
	C:     'C',
	G:     'G',
	T:     'T',
	A | G: 'R',
	C | T: 'Y',
	C | G: 'S',
	A | T: 'W',
	G | T: 'K',
	A | C: 'M',
}

// Mask returns the base set encoded by sym (zero for a missing marker) and
// whether sym belongs to the nucleotide alphabet at all.
func Mask(sym byte) (uint8, bool) {
	m, ok := symMask[sym]
	return m, ok
}

// Code returns the symbol for the unordered pair {a, b}: the base itself
// when a == b, the IUPAC two-base code otherwise. ok is false when either
// input is not a plain base.
func Code(a, b byte) (byte, bool) {
	ma, oka := symMask[a]
	mb, okb := symMask[b]
	if !oka || !okb || bits.OnesCount8(ma) != 1 || bits.OnesCount8(mb) != 1 {
		return 0, false
	}
	sym, ok := maskSym[ma|mb]
	return sym, ok
}

// Pair expands a one- or two-bit base set into its two bases (a plain base
// is duplicated). Bases come out in A<C<G<T order.
func Pair(mask uint8) (a, b byte, ok bool) {
	switch bits.OnesCount8(mask) {
	case 1:
		s := maskSym[mask]
		return s, s, true
	case 2:
		lo := mask & -mask // lowest set bit
		return maskSym[lo], maskSym[mask&^lo], true
	default:
		return 0, 0, false
	}
}

// Transition reports whether a two-base set is a within-class substitution:
// A/G (purines) or C/T (pyrimidines). Anything else is a transversion.
func Transition(mask uint8) bool {
	return mask == A|G || mask == C|T
}

// IsBase reports whether sym is one of the four plain nucleotides.
func IsBase(sym byte) bool {
	m, ok := symMask[sym]
	return ok && bits.OnesCount8(m) == 1
}

// IsAmbiguity reports whether sym is one of the six two-base codes.
func IsAmbiguity(sym byte) bool {
	m, ok := symMask[sym]
	return ok && bits.OnesCount8(m) == 2
}

// IsMissing reports whether sym is one of the missing markers '-', '?', 'N'.
func IsMissing(sym byte) bool {
	m, ok := symMask[sym]
	return ok && m == 0
}

// IsTernary reports whether sym is a binary-matrix state.
func IsTernary(sym byte) bool {
	return sym == '0' || sym == '1' || sym == '2'
}
