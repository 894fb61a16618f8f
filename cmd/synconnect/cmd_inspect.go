// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/synaptic/adjacency"
	"github.com/katalvlaran/synaptic/snapshot"
)

// degreeStats summarizes the list lengths of one adjacency index.
type degreeStats struct {
	Neurons  int     `json:"neurons"`
	Min      int     `json:"min"`
	Max      int     `json:"max"`
	Mean     float64 `json:"mean"`
	Isolated int     `json:"isolated"`
}

type inspectReport struct {
	Path       string      `json:"path"`
	SourceSize int         `json:"source_size"`
	TargetSize int         `json:"target_size"`
	Synapses   int         `json:"synapses"`
	OutDegree  degreeStats `json:"out_degree"`
	InDegree   degreeStats `json:"in_degree"`
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <snapshot>",
		Short: "Verify a snapshot and print degree statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			snap, err := snapshot.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}
			b, err := snap.Restore()
			if err != nil {
				return fmt.Errorf("failed to restore snapshot: %w", err)
			}
			defer b.Release()
			if err := b.Verify(); err != nil {
				return err
			}

			report := inspectReport{
				Path:       args[0],
				SourceSize: b.SourceSize(),
				TargetSize: b.TargetSize(),
				Synapses:   b.Len(),
				OutDegree:  summarizeDegrees(b.PreIndex()),
				InDegree:   summarizeDegrees(b.PostIndex()),
			}

			w := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(w).Encode(report)
			}
			fmt.Fprintf(w, "Snapshot: %s\n", report.Path)
			fmt.Fprintf(w, "Groups:   %d source × %d target\n", report.SourceSize, report.TargetSize)
			fmt.Fprintf(w, "Synapses: %d (verified)\n", report.Synapses)
			printDegrees(w, "Out-degree", report.OutDegree)
			printDegrees(w, "In-degree", report.InDegree)
			return nil
		},
	}
}

func summarizeDegrees(idx *adjacency.Index) degreeStats {
	s := degreeStats{Neurons: idx.Size()}
	if s.Neurons == 0 {
		return s
	}
	s.Min = idx.Total() + 1
	for _, ids := range idx.All() {
		d := len(ids)
		s.Min = min(s.Min, d)
		s.Max = max(s.Max, d)
		if d == 0 {
			s.Isolated++
		}
	}
	s.Mean = float64(idx.Total()) / float64(s.Neurons)
	return s
}

func printDegrees(w io.Writer, label string, s degreeStats) {
	fmt.Fprintf(w, "%-10s min %d, max %d, mean %.2f, isolated %d of %d\n",
		label+":", s.Min, s.Max, s.Mean, s.Isolated, s.Neurons)
}
