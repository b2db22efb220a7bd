package main

import (
	"os"

	"github.com/isisarantes/Biallelic-SNP/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
