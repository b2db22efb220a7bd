package species

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/isisarantes/Biallelic-SNP/internal/recode"
	"github.com/isisarantes/Biallelic-SNP/internal/report"
)

func TestLoad(t *testing.T) {
	in := "Species\tSpecimens\n" +
		"\n" +
		"duck\tind1\n" +
		"duck\tind2\n" +
		"goose\tind3\n"

	tbl, err := Load(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"duck", "goose"}, tbl.Species())
	require.Equal(t, 3, tbl.Specimens())

	sp, ok := tbl.SpeciesOf("ind2")
	require.True(t, ok)
	require.Equal(t, "duck", sp)
	_, ok = tbl.SpeciesOf("ind9")
	require.False(t, ok)
}

func TestLoad_HeaderOptional(t *testing.T) {
	for _, in := range []string{
		"SPECIES sample\nduck ind1\n",
		"species\tSpecimen\nduck ind1\n",
		"duck ind1\n", // no header at all
	} {
		tbl, err := Load(strings.NewReader(in))
		require.NoError(t, err, "input %q", in)
		require.Equal(t, 1, tbl.Specimens(), "input %q", in)
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(strings.NewReader("duck ind1 extra\n"))
	require.ErrorContains(t, err, "line 1")

	_, err = Load(strings.NewReader("duck ind1\ngoose ind1\n"))
	require.ErrorContains(t, err, "listed under both duck and goose")

	_, err = Load(strings.NewReader("\n \n"))
	require.ErrorContains(t, err, "no specimens")
}

func TestValidate(t *testing.T) {
	tbl, err := Load(strings.NewReader("duck ind1\nduck ind2\ngoose ind3\n"))
	require.NoError(t, err)

	require.NoError(t, tbl.Validate([]string{"ind3", "ind1", "ind2"}))

	err = tbl.Validate([]string{"ind1", "ind2"})
	require.ErrorIs(t, err, ErrMismatch)
	require.ErrorContains(t, err, "only in table: ind3")

	err = tbl.Validate([]string{"ind1", "ind2", "ind3", "ind4"})
	require.ErrorIs(t, err, ErrMismatch)
	require.ErrorContains(t, err, "only in input: ind4")

	err = tbl.Validate([]string{"ind1", "ind1", "ind2", "ind3"})
	require.ErrorIs(t, err, ErrMismatch, "a duplicated input specimen is a multiset mismatch")
}

func TestFilter(t *testing.T) {
	tbl, err := Load(strings.NewReader("X a1\nX a2\nY b1\n"))
	require.NoError(t, err)

	m := &recode.Matrix{
		Taxa: []string{"a1", "a2", "b1"},
		Rows: [][]byte{
			[]byte("0-10"),
			[]byte("1-0-"),
			[]byte("20-2"),
		},
	}
	rep := report.New()
	Filter(m, tbl, rep)

	require.Equal(t, 2, m.Sites())
	require.Equal(t, "00", string(m.Rows[0]))
	require.Equal(t, "1-", string(m.Rows[1]))
	require.Equal(t, "22", string(m.Rows[2]))
	require.Equal(t, 2, rep.Count(report.SpeciesIncomplete))

	// already filtered: a second pass must drop nothing
	Filter(m, tbl, rep)
	require.Equal(t, 2, m.Sites())
	require.Equal(t, 2, rep.Count(report.SpeciesIncomplete))
}

func TestFilter_MissingMarkersAreNotCalls(t *testing.T) {
	// binary input passes '?' and 'N' through; they must not count as calls
	tbl, err := Load(strings.NewReader("X a1\nY b1\n"))
	require.NoError(t, err)

	m := &recode.Matrix{
		Taxa: []string{"a1", "b1"},
		Rows: [][]byte{
			[]byte("?N0"),
			[]byte("000"),
		},
	}
	rep := report.New()
	Filter(m, tbl, rep)

	require.Equal(t, 1, m.Sites())
	require.Equal(t, "0", string(m.Rows[0]))
	require.Equal(t, 2, rep.Count(report.SpeciesIncomplete))
}

func TestFilter_SpeciesWithoutSpecimens(t *testing.T) {
	// a species no specimen belongs to has no calls anywhere, so every
	// site is incomplete by definition
	tbl := &Table{
		bySpecimen: map[string]string{"a1": "X"},
		species:    []string{"X", "Ghost"},
	}
	m := &recode.Matrix{
		Taxa: []string{"a1"},
		Rows: [][]byte{[]byte("012")},
	}
	rep := report.New()
	Filter(m, tbl, rep)

	require.Equal(t, 0, m.Sites())
	require.Equal(t, 3, rep.Count(report.SpeciesIncomplete))
}
