// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/synaptic/config"
	"github.com/katalvlaran/synaptic/growable"
	"github.com/katalvlaran/synaptic/kvarray"
	"github.com/katalvlaran/synaptic/logging"
	"github.com/katalvlaran/synaptic/snapshot"
	"github.com/katalvlaran/synaptic/synapses"
)

// connectionResult is the per-connection line of a run report.
type connectionResult struct {
	Name       string  `json:"name"`
	Pairs      int     `json:"pairs"`
	Accepted   int     `json:"accepted"`
	Rejected   int     `json:"rejected"`
	Created    int     `json:"created"`
	FirstID    int     `json:"first_id"`
	Flushes    int     `json:"flushes"`
	DurationMs float64 `json:"duration_ms"`
}

// runReport is the output of the run command.
type runReport struct {
	SourceSize  int                `json:"source_size"`
	TargetSize  int                `json:"target_size"`
	Synapses    int                `json:"synapses"`
	Storage     string             `json:"storage"`
	Snapshot    string             `json:"snapshot,omitempty"`
	Connections []connectionResult `json:"connections"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the synapses described by a config file",
		Long: `Build the synapses described by a YAML config, verify the result and
optionally write it as a snapshot.

Examples:
  synconnect run --config net.yaml
  synconnect run --config net.yaml --out edges.syn --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			out, _ := cmd.Flags().GetString("out")
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

			report, err := runConfig(cfg, out, logger)
			if err != nil {
				return err
			}
			return printRunReport(cmd, report, jsonOut)
		},
	}
	cmd.Flags().String("config", "", "Path to the network config (YAML)")
	cmd.Flags().String("out", "", "Write a snapshot of the result to this file")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

// runConfig builds every connection of cfg in order on one builder.
func runConfig(cfg *config.Config, out string, logger *slog.Logger) (*runReport, error) {
	opts := []synapses.Option{
		synapses.WithSeed(cfg.Seed),
		synapses.WithBufferSize(cfg.BufferSize),
		synapses.WithLogger(logger),
	}
	if cfg.MemoryLimitBytes > 0 {
		opts = append(opts, synapses.WithBudget(growable.NewBudget(cfg.MemoryLimitBytes)))
	}

	storage := config.StorageMemory
	if cfg.Storage.Kind == config.StorageBadger {
		storage = config.StorageBadger
		db, err := kvarray.OpenDB(kvarray.Options{Dir: cfg.Storage.Dir, InMemory: cfg.Storage.InMemory})
		if err != nil {
			return nil, fmt.Errorf("failed to open edge store: %w", err)
		}
		defer db.Close()
		pre, err := kvarray.Open(db, "pre")
		if err != nil {
			return nil, fmt.Errorf("failed to open edge store: %w", err)
		}
		post, err := kvarray.Open(db, "post")
		if err != nil {
			return nil, fmt.Errorf("failed to open edge store: %w", err)
		}
		opts = append(opts, synapses.WithEdgeStorage(pre, post))
	}

	b, err := synapses.New(cfg.SourceSize, cfg.TargetSize, opts...)
	if err != nil {
		return nil, err
	}
	defer b.Release()

	report := &runReport{SourceSize: cfg.SourceSize, TargetSize: cfg.TargetSize, Storage: storage}
	for _, conn := range cfg.Connections {
		stats, err := b.Connect(conn.Source.Pairs(), conn.Target.Pairs(), conn.Rule.Predicate())
		if err != nil {
			return nil, fmt.Errorf("connection %q: %w", conn.Name, err)
		}
		report.Connections = append(report.Connections, connectionResult{
			Name:       conn.Name,
			Pairs:      stats.Pairs,
			Accepted:   stats.Accepted,
			Rejected:   stats.Rejected,
			Created:    stats.Created,
			FirstID:    stats.FirstID,
			Flushes:    stats.Flushes,
			DurationMs: float64(stats.Duration.Microseconds()) / 1000,
		})
	}
	if err := b.Verify(); err != nil {
		return nil, err
	}
	report.Synapses = b.Len()

	if out != "" {
		snap, err := snapshot.FromBuilder(b)
		if err != nil {
			return nil, err
		}
		if err := snapshot.WriteFile(out, snap); err != nil {
			return nil, fmt.Errorf("failed to write snapshot: %w", err)
		}
		report.Snapshot = out
	}
	return report, nil
}

func printRunReport(cmd *cobra.Command, report *runReport, jsonOut bool) error {
	w := cmd.OutOrStdout()
	if jsonOut {
		return json.NewEncoder(w).Encode(report)
	}

	fmt.Fprintf(w, "Groups: %d source × %d target (%s storage)\n\n", report.SourceSize, report.TargetSize, report.Storage)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONNECTION\tPAIRS\tACCEPTED\tCREATED\tFIRST ID\tFLUSHES")
	for _, c := range report.Connections {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", c.Name, c.Pairs, c.Accepted, c.Created, c.FirstID, c.Flushes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTotal synapses: %d (verified)\n", report.Synapses)
	if report.Snapshot != "" {
		fmt.Fprintf(w, "Snapshot written to %s\n", report.Snapshot)
	}
	return nil
}
