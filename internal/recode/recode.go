package recode

import (
	"errors"
	"fmt"
	"math/bits"
	"math/rand"
	"time"

	"github.com/isisarantes/Biallelic-SNP/internal/align"
	"github.com/isisarantes/Biallelic-SNP/internal/iupac"
	"github.com/isisarantes/Biallelic-SNP/internal/report"
)

// Gap marks a missing call in the ternary matrix.
const Gap = '-'

// ErrData flags a symbol the recoder cannot place, which means the
// normalizer upstream let something through it should not have.
var ErrData = errors.New("recode: symbol outside the expected alphabet")

// Matrix is the recoded SNP matrix: one row of '0'/'1'/'2'/Gap per taxon.
// Rows stay index-aligned with Taxa through every downstream filter.
type Matrix struct {
	Taxa []string
	Rows [][]byte
}

// Sites reports the number of columns.
func (m *Matrix) Sites() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

// Mode selects which biallelic substitution classes survive recoding.
type Mode int

const (
	All Mode = iota
	TransversionsOnly
	TransitionsOnly
)

// Qualifier names the retained site class for log and report lines.
func (m Mode) Qualifier() string {
	switch m {
	case TransversionsOnly:
		return "transversion"
	case TransitionsOnly:
		return "transition"
	}
	return "biallelic"
}

// Options configure a nucleotide recoding pass. A nil Rand falls back to a
// time-seeded source; tests inject a fixed one.
type Options struct {
	Mode Mode
	Rand *rand.Rand
}

// Binary passes an already-ternary alignment through column by column.
// Columns with no call in {0,1,2} tally as missing, columns with a single
// distinct call as monomorphic; everything else is copied byte for byte,
// gap and missing markers included. The homozygote balance of the retained
// matrix feeds the report's sanity check.
func Binary(aln align.Alignment, rep *report.Report) *Matrix {
	m := &Matrix{Taxa: aln.IDs(), Rows: make([][]byte, len(aln.Samples))}
	for site := 0; site < aln.Len(); site++ {
		var seen [3]bool
		for _, s := range aln.Samples {
			if c := s.Seq[site]; c >= '0' && c <= '2' {
				seen[c-'0'] = true
			}
		}
		distinct := 0
		for _, hit := range seen {
			if hit {
				distinct++
			}
		}
		switch distinct {
		case 0:
			rep.Add(report.Missing, 1)
			continue
		case 1:
			rep.Add(report.Monomorphic, 1)
			continue
		}
		for i, s := range aln.Samples {
			m.Rows[i] = append(m.Rows[i], s.Seq[site])
		}
	}

	var zeros, twos int
	for _, row := range m.Rows {
		for _, sym := range row {
			switch sym {
			case '0':
				zeros++
			case '2':
				twos++
			}
		}
	}
	rep.SetBalance(zeros, twos)
	return m
}

// Nucleotide recodes a nucleotide alignment into the ternary matrix. Each
// column's symbols expand to base masks whose union fixes the allele count:
// zero and one allele tally as missing and monomorphic, three and four as
// tri- and tetra-allelic. Two-allele sites pass the mode filter and then
// recode, with the 0/2 polarity drawn fresh per site so neither base is
// systematically "0" across the matrix. Heterozygous codes always become
// '1' and missing symbols the gap marker.
func Nucleotide(aln align.Alignment, opt Options, rep *report.Report) (*Matrix, error) {
	rng := opt.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m := &Matrix{Taxa: aln.IDs(), Rows: make([][]byte, len(aln.Samples))}
	for site := 0; site < aln.Len(); site++ {
		var union uint8
		for _, s := range aln.Samples {
			mask, ok := iupac.Mask(s.Seq[site])
			if !ok {
				return nil, fmt.Errorf("site %d, sample %s: %w (%q)",
					site+1, s.ID, ErrData, s.Seq[site])
			}
			union |= mask
		}

		switch bits.OnesCount8(union) {
		case 0:
			rep.Add(report.Missing, 1)
			continue
		case 1:
			rep.Add(report.Monomorphic, 1)
			continue
		case 3:
			rep.Add(report.TriAllelic, 1)
			continue
		case 4:
			rep.Add(report.TetraAllelic, 1)
			continue
		}

		if opt.Mode == TransversionsOnly && iupac.Transition(union) {
			rep.Add(report.ExcludedTransition, 1)
			continue
		}
		if opt.Mode == TransitionsOnly && !iupac.Transition(union) {
			rep.Add(report.ExcludedTransversion, 1)
			continue
		}

		zero, two, _ := iupac.Pair(union)
		if rng.Intn(2) == 1 {
			zero, two = two, zero
		}
		for i, s := range aln.Samples {
			sym := s.Seq[site]
			switch {
			case sym == zero:
				m.Rows[i] = append(m.Rows[i], '0')
			case sym == two:
				m.Rows[i] = append(m.Rows[i], '2')
			case iupac.IsAmbiguity(sym):
				m.Rows[i] = append(m.Rows[i], '1')
			case iupac.IsMissing(sym):
				m.Rows[i] = append(m.Rows[i], Gap)
			default:
				return nil, fmt.Errorf("site %d, sample %s: %w (%q)",
					site+1, s.ID, ErrData, sym)
			}
		}
	}
	return m, nil
}
