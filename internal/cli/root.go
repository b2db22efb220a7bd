package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand wires the whole encoding pipeline behind a single command.
func NewRootCommand(version string) *cobra.Command {
	opt := &options{}

	cmd := &cobra.Command{
		Use:   "biallelic-snp",
		Short: "Encode aligned variants as a ternary biallelic SNP matrix",
		Long: `biallelic-snp reads a PHYLIP alignment or genotyped VCF records, recodes
every usable biallelic site into the ternary 0/1/2 alphabet, drops sites an
entire species misses, and writes a NEXUS integerdata block ready for
species-tree inference. Every excluded site is tallied and reported by
category.`,
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opt)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opt.Phylip, "phylip", "p", "", "PHYLIP alignment to encode ('-' reads stdin)")
	flags.StringVarP(&opt.VCF, "vcf", "v", "", "VCF genotype calls to encode ('-' reads stdin)")
	flags.StringVarP(&opt.Table, "table", "t", "", "species table, one '<species> <specimen>' pair per line")
	flags.StringVarP(&opt.Out, "out", "o", "snps.nex", "output NEXUS file ('-' writes stdout)")
	flags.IntVarP(&opt.MaxSNPs, "max-snps", "m", 0, "keep at most N sites, sampled uniformly (0 keeps all)")
	flags.BoolVar(&opt.Transversions, "transversions", false, "keep transversion sites only")
	flags.BoolVar(&opt.Transitions, "transitions", false, "keep transition sites only")
	flags.BoolVar(&opt.NoAnnotation, "no-annotation", false, "omit the provenance comment from the output")
	flags.StringVar(&opt.JSON, "json", "", "optional: write run summary JSON here")
	flags.Int64Var(&opt.Seed, "seed", 0, "seed for the randomized choices (0 seeds from the clock)")

	cmd.MarkFlagsOneRequired("phylip", "vcf")
	cmd.MarkFlagsMutuallyExclusive("phylip", "vcf")
	cmd.MarkFlagsMutuallyExclusive("transversions", "transitions")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}
