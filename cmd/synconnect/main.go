// SPDX-License-Identifier: MIT

// Command synconnect builds synapse sets from a YAML network description,
// verifies them and stores them as compressed snapshots.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "synconnect",
		Short: "Create and inspect synapse sets",
		Long: `synconnect creates the synapses between two neuron groups from a list of
connection rules, checks that the edge list and adjacency indexes agree,
and writes the result as a compressed snapshot.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newInspectCmd(),
	)
	return rootCmd
}
