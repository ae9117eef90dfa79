// SPDX-License-Identifier: MIT

// Command boolmf factorizes a binary matrix and prints one row per rank.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boolmf",
	Short: "Boolean matrix factorization",
	Long: `boolmf approximates a binary matrix X by the Boolean product of two
binary factors U and V.

Algorithms:
  - asso         greedy rank selection from association-matrix candidates
  - asso-iter    asso followed by column-wise refinement
  - asso-opt     asso followed by exact per-row refinement
  - lazy-update  multi-weight candidate pool with lazy updates`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "boolmf %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(versionCmd)
}
