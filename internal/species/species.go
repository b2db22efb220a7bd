package species

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/isisarantes/Biallelic-SNP/internal/recode"
	"github.com/isisarantes/Biallelic-SNP/internal/report"
)

// ErrMismatch means the table and the sequence input name different
// specimen sets.
var ErrMismatch = errors.New("species: table and alignment name different specimens")

// Table maps specimen IDs onto species. Species keep first-appearance
// order so filtering and reporting stay deterministic.
type Table struct {
	bySpecimen map[string]string
	species    []string
}

// Load parses `<species> <specimen>` lines. Blank lines are skipped, as is
// an optional header row. Listing a specimen under two species is fatal.
func Load(r io.Reader) (*Table, error) {
	t := &Table{bySpecimen: make(map[string]string)}
	seen := make(map[string]bool)

	sc := bufio.NewScanner(r)
	lineNo := 0
	first := true
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if first {
			first = false
			if isHeader(fields) {
				continue
			}
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("species table line %d: want `species specimen`, got %d fields",
				lineNo, len(fields))
		}
		sp, id := fields[0], fields[1]
		if prev, dup := t.bySpecimen[id]; dup {
			return nil, fmt.Errorf("species table line %d: specimen %s listed under both %s and %s",
				lineNo, id, prev, sp)
		}
		t.bySpecimen[id] = sp
		if !seen[sp] {
			seen[sp] = true
			t.species = append(t.species, sp)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("species table: %w", err)
	}
	if len(t.bySpecimen) == 0 {
		return nil, errors.New("species table names no specimens")
	}
	return t, nil
}

func isHeader(fields []string) bool {
	if len(fields) < 2 || !strings.EqualFold(fields[0], "species") {
		return false
	}
	switch strings.ToLower(fields[1]) {
	case "specimen", "specimens", "sample", "samples":
		return true
	}
	return false
}

// SpeciesOf returns the species a specimen belongs to.
func (t *Table) SpeciesOf(specimen string) (string, bool) {
	sp, ok := t.bySpecimen[specimen]
	return sp, ok
}

// Species lists the distinct species in table order.
func (t *Table) Species() []string { return t.species }

// Specimens reports how many specimens the table names.
func (t *Table) Specimens() int { return len(t.bySpecimen) }

// Validate checks that ids and the table cover exactly the same specimens,
// compared as multisets.
func (t *Table) Validate(ids []string) error {
	counts := make(map[string]int, len(t.bySpecimen))
	for id := range t.bySpecimen {
		counts[id]++
	}
	for _, id := range ids {
		counts[id]--
	}

	var tableOnly, inputOnly []string
	for id, n := range counts {
		switch {
		case n > 0:
			tableOnly = append(tableOnly, id)
		case n < 0:
			inputOnly = append(inputOnly, id)
		}
	}
	if len(tableOnly) == 0 && len(inputOnly) == 0 {
		return nil
	}
	sort.Strings(tableOnly)
	sort.Strings(inputOnly)

	var parts []string
	if len(tableOnly) > 0 {
		parts = append(parts, "only in table: "+strings.Join(tableOnly, ", "))
	}
	if len(inputOnly) > 0 {
		parts = append(parts, "only in input: "+strings.Join(inputOnly, ", "))
	}
	return fmt.Errorf("%w (%s)", ErrMismatch, strings.Join(parts, "; "))
}

// Filter drops every column at which some species has no informative call
// across its specimens. Column order is preserved, and a second pass over
// an already-filtered matrix drops nothing.
func Filter(m *recode.Matrix, tbl *Table, rep *report.Report) {
	members := make(map[string][]int, len(tbl.species))
	for row, taxon := range m.Taxa {
		if sp, ok := tbl.bySpecimen[taxon]; ok {
			members[sp] = append(members[sp], row)
		}
	}

	var keep []int
	for site := 0; site < m.Sites(); site++ {
		complete := true
		for _, sp := range tbl.species {
			if !hasCall(m, members[sp], site) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, site)
		}
	}
	dropped := m.Sites() - len(keep)
	if dropped == 0 {
		return
	}
	rep.Add(report.SpeciesIncomplete, dropped)
	for i, row := range m.Rows {
		out := make([]byte, 0, len(keep))
		for _, site := range keep {
			out = append(out, row[site])
		}
		m.Rows[i] = out
	}
}

// hasCall reports whether any of the rows carries a ternary call at site.
func hasCall(m *recode.Matrix, rows []int, site int) bool {
	for _, r := range rows {
		switch m.Rows[r][site] {
		case '0', '1', '2':
			return true
		}
	}
	return false
}
