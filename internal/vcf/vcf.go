package vcf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/isisarantes/Biallelic-SNP/internal/align"
	"github.com/isisarantes/Biallelic-SNP/internal/iupac"
	"github.com/isisarantes/Biallelic-SNP/internal/report"
)

var (
	// ErrNoHeader means a data record showed up before (or without) #CHROM.
	ErrNoHeader = errors.New("vcf: missing #CHROM header line")
	// ErrNoGT means the FORMAT column of a record lacks the GT subfield.
	ErrNoGT = errors.New("vcf: FORMAT column has no GT subfield")
)

// fixed VCF columns ahead of the per-specimen genotype fields
const (
	refIdx    = 3
	altIdx    = 4
	formatIdx = 8
	fixedCols = 9
)

const maxLine = 16 << 20 // cohort VCF rows get long

// Read normalizes minimal VCF text into the shared alignment shape: one
// base/ambiguity symbol per specimen per biallelic SNP record. `##` lines
// are skipped; the `#CHROM` header names the specimens (columns 10+).
// Indel and multi-allelic records are tallied on rep and skipped entirely;
// half-called genotypes become missing and are counted per genotype.
func Read(r io.Reader, rep *report.Report) (align.Alignment, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var ids []string
	var seqs [][]byte
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "##"):
			continue
		case strings.HasPrefix(line, "#"):
			fields := strings.Fields(line)
			if len(fields) <= fixedCols {
				return align.Alignment{}, fmt.Errorf("vcf line %d: header names no specimens", lineNo)
			}
			ids = fields[fixedCols:]
			seqs = make([][]byte, len(ids))
			continue
		}
		if ids == nil {
			return align.Alignment{}, ErrNoHeader
		}
		if err := record(line, lineNo, ids, seqs, rep); err != nil {
			return align.Alignment{}, err
		}
	}
	if err := sc.Err(); err != nil {
		return align.Alignment{}, fmt.Errorf("vcf: %w", err)
	}
	if ids == nil {
		return align.Alignment{}, ErrNoHeader
	}

	samples := make([]align.Sample, len(ids))
	for i := range ids {
		samples[i] = align.Sample{ID: ids[i], Seq: seqs[i]}
	}
	return align.New(samples)
}

// record appends one symbol per specimen for a biallelic SNP row, or tallies
// the row away (indel, three or four alleles) without touching the matrix.
func record(line string, lineNo int, ids []string, seqs [][]byte, rep *report.Report) error {
	fields := strings.Fields(line)
	if len(fields) != fixedCols+len(ids) {
		return fmt.Errorf("vcf line %d: want %d columns, got %d",
			lineNo, fixedCols+len(ids), len(fields))
	}
	ref := strings.ToUpper(fields[refIdx])
	alt := strings.ToUpper(fields[altIdx])

	if strings.Contains(alt, ",") {
		if len(strings.Split(alt, ",")) >= 3 { // REF plus three or more ALTs
			rep.Add(report.TetraAllelic, 1)
		} else {
			rep.Add(report.TriAllelic, 1)
		}
		return nil
	}
	if len(ref) != 1 || len(alt) != 1 {
		rep.Add(report.Indel, 1)
		return nil
	}

	gtIdx := -1
	for i, key := range strings.Split(fields[formatIdx], ":") {
		if key == "GT" {
			gtIdx = i
			break
		}
	}
	if gtIdx < 0 {
		return fmt.Errorf("%w (line %d)", ErrNoGT, lineNo)
	}

	for k := range ids {
		sym, err := genotypeSymbol(fields[fixedCols+k], gtIdx, ref[0], alt[0], rep)
		if err != nil {
			return fmt.Errorf("vcf line %d, specimen %s: %w", lineNo, ids[k], err)
		}
		seqs[k] = append(seqs[k], sym)
	}
	return nil
}

// genotypeSymbol resolves one specimen's GT subfield into a single symbol:
// the shared base for a homozygous call, the ambiguity code of the pair for
// a heterozygous one, '?' when either allele is uncalled. {REF,ALT} and
// {ALT,REF} yield the same code.
func genotypeSymbol(field string, gtIdx int, ref, alt byte, rep *report.Report) (byte, error) {
	subs := strings.Split(field, ":")
	if gtIdx >= len(subs) {
		return 0, fmt.Errorf("genotype %q lacks the GT subfield", field)
	}
	gt := subs[gtIdx]
	alleles := strings.FieldsFunc(gt, func(r rune) bool { return r == '/' || r == '|' })
	if len(alleles) != 2 {
		return 0, fmt.Errorf("unrecognized genotype %q", gt)
	}

	a, aMissing, err := resolveAllele(alleles[0], ref, alt)
	if err != nil {
		return 0, err
	}
	b, bMissing, err := resolveAllele(alleles[1], ref, alt)
	if err != nil {
		return 0, err
	}
	switch {
	case aMissing && bMissing:
		return '?', nil
	case aMissing || bMissing:
		rep.Add(report.HalfCall, 1)
		return '?', nil
	case a == b:
		return a, nil
	}
	sym, ok := iupac.Code(a, b)
	if !ok {
		return 0, fmt.Errorf("no ambiguity code for base pair %c/%c", a, b)
	}
	return sym, nil
}

// resolveAllele maps a genotype allele index onto the record's bases. The
// referenced base must be a plain nucleotide, which rejects REF/ALT values
// like `.` or `N` the moment a genotype actually uses them.
func resolveAllele(tok string, ref, alt byte) (base byte, missing bool, err error) {
	switch tok {
	case ".":
		return 0, true, nil
	case "0":
		base = ref
	case "1":
		base = alt
	default:
		return 0, false, fmt.Errorf("allele index %q outside {0,1,.}", tok)
	}
	if !iupac.IsBase(base) {
		return 0, false, fmt.Errorf("allele %q is not a nucleotide", base)
	}
	return base, false, nil
}
