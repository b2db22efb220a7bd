package recode

import (
	"math/rand"
	"sort"
	"time"

	"github.com/isisarantes/Biallelic-SNP/internal/report"
)

// Cap subsamples the matrix down to max columns, chosen uniformly without
// replacement and kept in original order. A cap of zero or less is a no-op.
// A cap at or above the survivor count keeps everything and leaves a note
// instead of a tally.
func Cap(m *Matrix, max int, rng *rand.Rand, rep *report.Report) {
	if max <= 0 {
		return
	}
	sites := m.Sites()
	if max >= sites {
		rep.Notef("maximum of %d sites requested but only %d available, keeping all", max, sites)
		return
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	keep := rng.Perm(sites)[:max]
	sort.Ints(keep)
	for i, row := range m.Rows {
		out := make([]byte, 0, max)
		for _, col := range keep {
			out = append(out, row[col])
		}
		m.Rows[i] = out
	}
	rep.Add(report.OverCap, sites-max)
}
