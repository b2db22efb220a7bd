package phylip

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/isisarantes/Biallelic-SNP/internal/align"
)

const maxLine = 16 << 20 // sequences can run to whole-chromosome length

// Read parses PHYLIP-like text. The first line (the taxon/site count header)
// is ignored; every further non-blank line must be `<specimen_id> <sequence>`.
// Sequences are upper-cased; unequal row lengths are fatal.
func Read(r io.Reader) (align.Alignment, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var samples []align.Sample
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		fields := bytes.Fields(line)
		if len(fields) != 2 {
			return align.Alignment{}, fmt.Errorf(
				"phylip line %d: want `<specimen> <sequence>`, got %d fields", lineNo, len(fields))
		}
		samples = append(samples, align.Sample{
			ID:  string(fields[0]),
			Seq: bytes.ToUpper(fields[1]),
		})
	}
	if err := sc.Err(); err != nil {
		return align.Alignment{}, fmt.Errorf("phylip: %w", err)
	}
	return align.New(samples)
}
