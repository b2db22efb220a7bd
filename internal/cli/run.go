package cli

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/isisarantes/Biallelic-SNP/internal/align"
	"github.com/isisarantes/Biallelic-SNP/internal/nexus"
	"github.com/isisarantes/Biallelic-SNP/internal/phylip"
	"github.com/isisarantes/Biallelic-SNP/internal/recode"
	"github.com/isisarantes/Biallelic-SNP/internal/report"
	"github.com/isisarantes/Biallelic-SNP/internal/species"
	"github.com/isisarantes/Biallelic-SNP/internal/vcf"
)

type options struct {
	Phylip        string
	VCF           string
	Table         string
	Out           string
	MaxSNPs       int
	Transversions bool
	Transitions   bool
	NoAnnotation  bool
	JSON          string
	Seed          int64
}

// run drives the fixed pipeline: read input, load and validate the species
// table, recode, filter, cap, write NEXUS, then report.
func run(cmd *cobra.Command, opt *options) error {
	if opt.MaxSNPs < 0 {
		return fmt.Errorf("--max-snps must be zero or positive, got %d", opt.MaxSNPs)
	}

	mode := recode.All
	switch {
	case opt.Transversions:
		mode = recode.TransversionsOnly
	case opt.Transitions:
		mode = recode.TransitionsOnly
	}

	seed := opt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// polarity draws and cap draws must not share a stream
	polarity := rand.New(rand.NewSource(seed))
	sampler := rand.New(rand.NewSource(seed + 1))

	rep := report.New()
	aln, format, err := readInput(opt, rep)
	if err != nil {
		return err
	}

	tblFile, err := os.Open(opt.Table)
	if err != nil {
		return err
	}
	tbl, err := species.Load(tblFile)
	tblFile.Close()
	if err != nil {
		return err
	}
	if err := tbl.Validate(aln.IDs()); err != nil {
		return err
	}

	var m *recode.Matrix
	if format == align.Binary {
		m = recode.Binary(aln, rep)
	} else {
		m, err = recode.Nucleotide(aln, recode.Options{Mode: mode, Rand: polarity}, rep)
		if err != nil {
			return err
		}
	}

	species.Filter(m, tbl, rep)

	before := m.Sites()
	recode.Cap(m, opt.MaxSNPs, sampler, rep)
	capDropped := before - m.Sites()

	if err := writeOutput(cmd, opt, m, tbl); err != nil {
		return err
	}

	for _, w := range rep.Warnings() {
		log.Warn(w)
	}
	log.Info(report.Info(mode.Qualifier(), m.Sites(), capDropped, opt.MaxSNPs))

	if opt.JSON != "" {
		if err := writeSummary(opt, format, seed, m, tbl, rep); err != nil {
			return err
		}
	}
	return nil
}

// readInput opens whichever input flag is set and normalizes it. PHYLIP
// alignments are classified by alphabet; VCF input is nucleotide by
// construction.
func readInput(opt *options, rep *report.Report) (align.Alignment, align.Format, error) {
	path, fromVCF := opt.Phylip, false
	if opt.VCF != "" {
		path, fromVCF = opt.VCF, true
	}
	in, err := openInput(path)
	if err != nil {
		return align.Alignment{}, 0, err
	}
	defer in.Close()

	if fromVCF {
		aln, err := vcf.Read(in, rep)
		return aln, align.Nucleotide, err
	}
	aln, err := phylip.Read(in)
	if err != nil {
		return align.Alignment{}, 0, err
	}
	format, err := align.Classify(aln)
	return aln, format, err
}

// openInput opens path ('-' means stdin) and transparently ungzips.
func openInput(path string) (io.ReadCloser, error) {
	var raw io.ReadCloser
	if path == "-" {
		raw = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		raw = f
	}
	br := bufio.NewReader(raw)
	if head, err := br.Peek(2); err == nil && head[0] == 0x1f && head[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			raw.Close()
			return nil, err
		}
		return &gzipInput{zr: zr, raw: raw}, nil
	}
	return &plainInput{br: br, raw: raw}, nil
}

type plainInput struct {
	br  *bufio.Reader
	raw io.ReadCloser
}

func (p *plainInput) Read(b []byte) (int, error) { return p.br.Read(b) }
func (p *plainInput) Close() error               { return p.raw.Close() }

type gzipInput struct {
	zr  *gzip.Reader
	raw io.ReadCloser
}

func (g *gzipInput) Read(b []byte) (int, error) { return g.zr.Read(b) }

func (g *gzipInput) Close() error {
	if err := g.zr.Close(); err != nil {
		g.raw.Close()
		return err
	}
	return g.raw.Close()
}

func writeOutput(cmd *cobra.Command, opt *options, m *recode.Matrix, tbl *species.Table) error {
	annotation := ""
	if !opt.NoAnnotation {
		annotation = provenance(cmd)
	}
	if opt.Out == "-" {
		return nexus.Write(cmd.OutOrStdout(), m, tbl, annotation)
	}
	return nexus.WriteFile(opt.Out, m, tbl, annotation)
}

// provenance renders the command name, version and every flag the caller
// set, for the bracketed comment ahead of the data block.
func provenance(cmd *cobra.Command) string {
	parts := []string{cmd.Name(), cmd.Root().Version}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		parts = append(parts, fmt.Sprintf("--%s=%s", f.Name, f.Value))
	})
	return strings.Join(parts, " ")
}

func writeSummary(opt *options, format align.Format, seed int64, m *recode.Matrix, tbl *species.Table, rep *report.Report) error {
	input := opt.Phylip
	if opt.VCF != "" {
		input = opt.VCF
	}
	out := struct {
		Input    string         `json:"input"`
		Format   string         `json:"format"`
		Output   string         `json:"output"`
		Taxa     int            `json:"taxa"`
		Species  int            `json:"species"`
		Sites    int            `json:"sites"`
		Seed     int64          `json:"seed"`
		Excluded map[string]int `json:"excluded,omitempty"`
	}{
		Input:    input,
		Format:   format.String(),
		Output:   opt.Out,
		Taxa:     len(m.Taxa),
		Species:  len(tbl.Species()),
		Sites:    m.Sites(),
		Seed:     seed,
		Excluded: rep.Counts(),
	}
	f, err := os.Create(opt.JSON)
	if err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if err := json.NewEncoder(f).Encode(out); err != nil {
		f.Close()
		return fmt.Errorf("encode json: %w", err)
	}
	return f.Close()
}
