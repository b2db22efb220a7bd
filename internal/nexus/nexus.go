package nexus

import (
	"fmt"
	"io"
	"os"

	"github.com/isisarantes/Biallelic-SNP/internal/recode"
	"github.com/isisarantes/Biallelic-SNP/internal/species"
)

// Write emits the matrix in the NEXUS form the downstream inference tool
// expects: integerdata with symbols '012' and '-' as gap, one row per
// specimen in matrix order, each named <specimen>_<species>. A non-empty
// annotation becomes a bracketed comment ahead of the data block.
func Write(w io.Writer, m *recode.Matrix, tbl *species.Table, annotation string) error {
	if _, err := fmt.Fprint(w, "#NEXUS\n\n"); err != nil {
		return err
	}
	if annotation != "" {
		if _, err := fmt.Fprintf(w, "[%s]\n", annotation); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w,
		"Begin data;\n\tDimensions ntax=%d nchar=%d;\n\tFormat datatype=integerdata symbols='012' gap=-;\n\tMatrix\n",
		len(m.Taxa), m.Sites()); err != nil {
		return err
	}
	for i, taxon := range m.Taxa {
		sp, ok := tbl.SpeciesOf(taxon)
		if !ok {
			return fmt.Errorf("nexus: specimen %s missing from the species table", taxon)
		}
		if _, err := fmt.Fprintf(w, "%s_%s\t%s\n", taxon, sp, m.Rows[i]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(w, "\t;\nEnd;\n"); err != nil {
		return err
	}
	return nil
}

// WriteFile writes the matrix to path, truncating any existing file.
func WriteFile(path string, m *recode.Matrix, tbl *species.Table, annotation string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, m, tbl, annotation); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
