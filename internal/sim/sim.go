package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/isisarantes/Biallelic-SNP/internal/align"
	"github.com/isisarantes/Biallelic-SNP/internal/iupac"
)

// Make returns a random nucleotide alignment of ntax samples by nsites
// columns. Each column draws two bases; each cell is missing with
// probability miss, heterozygous with probability het, and otherwise one of
// the column's two homozygotes. If seed==0 we use a time-based seed;
// otherwise results are reproducible.
func Make(ntax, nsites int, miss, het float64, seed int64) align.Alignment {
	if ntax <= 0 || nsites < 0 {
		return align.Alignment{}
	}
	if miss < 0 {
		miss = 0
	}
	if miss > 1 {
		miss = 1
	}
	if het < 0 {
		het = 0
	}
	if het > 1-miss {
		het = 1 - miss
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))

	bases := []byte{'A', 'C', 'G', 'T'}
	seqs := make([][]byte, ntax)
	for i := range seqs {
		seqs[i] = make([]byte, nsites)
	}
	for site := 0; site < nsites; site++ {
		pick := r.Perm(4)
		a, b := bases[pick[0]], bases[pick[1]]
		if b < a {
			a, b = b, a
		}
		amb, _ := iupac.Code(a, b)
		for i := range seqs {
			switch u := r.Float64(); {
			case u < miss:
				seqs[i][site] = '-'
			case u < miss+het:
				seqs[i][site] = amb
			case r.Intn(2) == 0:
				seqs[i][site] = a
			default:
				seqs[i][site] = b
			}
		}
	}

	samples := make([]align.Sample, ntax)
	for i := range samples {
		samples[i] = align.Sample{ID: fmt.Sprintf("ind%d", i+1), Seq: seqs[i]}
	}
	return align.Alignment{Samples: samples}
}
