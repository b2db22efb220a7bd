package sim

import (
	"bytes"
	"testing"

	"github.com/isisarantes/Biallelic-SNP/internal/align"
	"github.com/isisarantes/Biallelic-SNP/internal/iupac"
)

func TestMake_ShapeAndAlphabet(t *testing.T) {
	aln := Make(12, 500, 0.05, 0.10, 123)
	if len(aln.Samples) != 12 {
		t.Fatalf("ntax: got %d want 12", len(aln.Samples))
	}
	if aln.Len() != 500 {
		t.Fatalf("nsites: got %d want 500", aln.Len())
	}
	if aln.Samples[0].ID != "ind1" || aln.Samples[11].ID != "ind12" {
		t.Fatalf("ids: got %s..%s", aln.Samples[0].ID, aln.Samples[11].ID)
	}
	for _, s := range aln.Samples {
		for _, sym := range s.Seq {
			if !iupac.IsBase(sym) && !iupac.IsAmbiguity(sym) && !iupac.IsMissing(sym) {
				t.Fatalf("sample %s: unexpected symbol %q", s.ID, sym)
			}
		}
	}
	if format, err := align.Classify(aln); err != nil || format != align.Nucleotide {
		t.Fatalf("classify: %v %v", format, err)
	}
}

func TestMake_SeedDeterministic(t *testing.T) {
	a := Make(6, 2000, 0.1, 0.2, 42)
	b := Make(6, 2000, 0.1, 0.2, 42)
	for i := range a.Samples {
		if !bytes.Equal(a.Samples[i].Seq, b.Samples[i].Seq) {
			t.Fatalf("same seed should reproduce sample %d", i)
		}
	}
	c := Make(6, 2000, 0.1, 0.2, 43)
	same := true
	for i := range a.Samples {
		if !bytes.Equal(a.Samples[i].Seq, c.Samples[i].Seq) {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seed unexpectedly produced identical alignment")
	}
}

func TestMake_ExtremesAndClamp(t *testing.T) {
	gaps := Make(4, 200, 1, 0, 7)
	for _, s := range gaps.Samples {
		for _, sym := range s.Seq {
			if sym != '-' {
				t.Fatalf("expected only gaps when miss=1, saw %c", sym)
			}
		}
	}

	hets := Make(4, 200, 0, 1, 7)
	for _, s := range hets.Samples {
		for _, sym := range s.Seq {
			if !iupac.IsAmbiguity(sym) {
				t.Fatalf("expected only ambiguity codes when het=1, saw %c", sym)
			}
		}
	}

	if aln := Make(0, 10, 0.5, 0.5, 1); len(aln.Samples) != 0 {
		t.Fatalf("ntax 0 should return an empty alignment")
	}
	// het clamps to the room miss leaves
	if aln := Make(2, 100, 1, 0.5, 1); aln.Samples[0].Seq[0] != '-' {
		t.Fatalf("miss=1 must win over het")
	}
	// negative rates clamp to zero
	calls := Make(2, 100, -1, -1, 1)
	for _, s := range calls.Samples {
		for _, sym := range s.Seq {
			if !iupac.IsBase(sym) {
				t.Fatalf("expected only plain bases with rates clamped to 0, saw %c", sym)
			}
		}
	}
}
