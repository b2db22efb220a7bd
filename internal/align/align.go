package align

import (
	"errors"
	"fmt"

	"github.com/isisarantes/Biallelic-SNP/internal/iupac"
)

// Sample is one specimen row: an identifier plus one symbol per column.
type Sample struct {
	ID  string
	Seq []byte // upper-case, one byte per alignment column
}

// Alignment is the uniform representation both input formats normalize to.
// Rows are read-only after construction and guaranteed equal length.
type Alignment struct {
	Samples []Sample
}

var (
	// ErrRagged flags rows of unequal length after normalization.
	ErrRagged = errors.New("sequences differ in length")
	// ErrAlphabet flags symbols outside both recognized alphabets.
	ErrAlphabet = errors.New("unrecognized sequence alphabet")
)

// New builds an Alignment, rejecting empty input and ragged rows.
func New(samples []Sample) (Alignment, error) {
	if len(samples) == 0 {
		return Alignment{}, errors.New("no sequences found")
	}
	want := len(samples[0].Seq)
	for _, s := range samples[1:] {
		if len(s.Seq) != want {
			return Alignment{}, fmt.Errorf("%w: %s has %d sites, %s has %d",
				ErrRagged, samples[0].ID, want, s.ID, len(s.Seq))
		}
	}
	return Alignment{Samples: samples}, nil
}

// Len returns the number of alignment columns.
func (a Alignment) Len() int {
	if len(a.Samples) == 0 {
		return 0
	}
	return len(a.Samples[0].Seq)
}

// IDs returns the specimen identifiers in input order.
func (a Alignment) IDs() []string {
	ids := make([]string, len(a.Samples))
	for i, s := range a.Samples {
		ids[i] = s.ID
	}
	return ids
}

// Format selects the per-site rule set the recoder applies.
type Format int

const (
	// Binary marks rows that already use the ternary alphabet {0,1,2}.
	Binary Format = iota
	// Nucleotide marks rows of bases and IUPAC ambiguity codes.
	Nucleotide
)

func (f Format) String() string {
	if f == Binary {
		return "binary"
	}
	return "nucleotide"
}

// Classify scans every non-missing symbol across all rows. All ternary
// digits → Binary; all bases/ambiguity codes → Nucleotide; anything else,
// or a mix of the two alphabets, is fatal. An alignment with nothing but
// missing markers degenerates to Binary (every site then counts as missing).
func Classify(a Alignment) (Format, error) {
	var sawTernary, sawNucleotide bool
	for _, s := range a.Samples {
		for _, sym := range s.Seq {
			switch {
			case iupac.IsMissing(sym):
			case iupac.IsTernary(sym):
				sawTernary = true
			case iupac.IsBase(sym) || iupac.IsAmbiguity(sym):
				sawNucleotide = true
			default:
				return 0, fmt.Errorf("%w: symbol %q in %s", ErrAlphabet, sym, s.ID)
			}
		}
	}
	if sawTernary && sawNucleotide {
		return 0, fmt.Errorf("%w: input mixes ternary digits and nucleotides", ErrAlphabet)
	}
	if sawNucleotide {
		return Nucleotide, nil
	}
	return Binary, nil
}
