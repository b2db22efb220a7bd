package report

import (
	"fmt"
	"math"
)

// Category indexes one exclusion or advisory tally.
type Category int

const (
	Missing Category = iota
	Monomorphic
	TriAllelic
	TetraAllelic
	Indel
	HalfCall
	ExcludedTransition
	ExcludedTransversion
	SpeciesIncomplete
	OverCap

	numCategories
)

// names key the machine-readable summary.
var names = [numCategories]string{
	"missing",
	"monomorphic",
	"triallelic",
	"tetraallelic",
	"indel",
	"half_call",
	"excluded_transition",
	"excluded_transversion",
	"species_incomplete",
	"over_cap",
}

func (c Category) String() string { return names[c] }

// lines holds the singular/plural warning templates per category.
var lines = [numCategories][2]string{
	Missing:              {"excluded %d site with no calls at all", "excluded %d sites with no calls at all"},
	Monomorphic:          {"excluded %d monomorphic site", "excluded %d monomorphic sites"},
	TriAllelic:           {"excluded %d site with three alleles", "excluded %d sites with three alleles"},
	TetraAllelic:         {"excluded %d site with four alleles", "excluded %d sites with four alleles"},
	Indel:                {"skipped %d indel record", "skipped %d indel records"},
	HalfCall:             {"treated %d half-called genotype as missing", "treated %d half-called genotypes as missing"},
	ExcludedTransition:   {"excluded %d transition site (transversions-only run)", "excluded %d transition sites (transversions-only run)"},
	ExcludedTransversion: {"excluded %d transversion site (transitions-only run)", "excluded %d transversion sites (transitions-only run)"},
	SpeciesIncomplete:    {"excluded %d site with no calls for at least one species", "excluded %d sites with no calls for at least one species"},
	OverCap:              {"dropped %d site above the requested maximum", "dropped %d sites above the requested maximum"},
}

// balanceTol is the literal threshold of the ascertainment sanity check:
// warn when the '0' share among homozygous states leaves 0.5 ± 0.01.
const balanceTol = 0.01

// Report accumulates exclusion tallies and advisory notes across one
// pipeline run. Counters only ever increment; the aggregation methods read
// them once the pass is complete.
type Report struct {
	counts  [numCategories]int
	zeros   int
	twos    int
	checked bool
	notes   []string
}

func New() *Report { return &Report{} }

// Add increments category c by n.
func (r *Report) Add(c Category, n int) { r.counts[c] += n }

// Count returns the tally of category c.
func (r *Report) Count(c Category) int { return r.counts[c] }

// SetBalance records the homozygous-state totals of a binary pass-through
// so Warnings can run the 0/2 balance check.
func (r *Report) SetBalance(zeros, twos int) {
	r.zeros, r.twos = zeros, twos
	r.checked = true
}

// Notef appends a free-form warning line, emitted after the tally lines.
func (r *Report) Notef(format string, args ...any) {
	r.notes = append(r.notes, fmt.Sprintf(format, args...))
}

// Warnings builds one pluralized line per nonzero tally in category order,
// then the balance warning (when applicable), then any notes. Purely a read;
// warnings never alter matrix content.
func (r *Report) Warnings() []string {
	var out []string
	for c := Category(0); c < numCategories; c++ {
		n := r.counts[c]
		if n == 0 {
			continue
		}
		tmpl := lines[c][1]
		if n == 1 {
			tmpl = lines[c][0]
		}
		out = append(out, fmt.Sprintf(tmpl, n))
	}
	if r.checked {
		if total := r.zeros + r.twos; total > 0 {
			p := float64(r.zeros) / float64(total)
			if math.Abs(p-0.5) > balanceTol {
				out = append(out, fmt.Sprintf(
					"unusual state balance: %.1f%% of homozygous calls are '0' (expected ~50%%)", p*100))
			}
		}
	}
	return append(out, r.notes...)
}

// Counts returns the nonzero tallies keyed by category name.
func (r *Report) Counts() map[string]int {
	m := make(map[string]int, numCategories)
	for c := Category(0); c < numCategories; c++ {
		if r.counts[c] != 0 {
			m[names[c]] = r.counts[c]
		}
	}
	return m
}

// Info builds the closing summary line: the retained-site count with its
// mode qualifier, or the removal count when the site cap kicked in.
func Info(qualifier string, retained, capDropped, cap int) string {
	if capDropped > 0 {
		return fmt.Sprintf("randomly dropped %d %s site%s to meet the maximum of %d",
			capDropped, qualifier, plural(capDropped), cap)
	}
	return fmt.Sprintf("retained %d %s site%s", retained, qualifier, plural(retained))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
