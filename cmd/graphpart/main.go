// Command graphpart partitions a graph's node, edge, and role-membership
// tables into N roughly balanced, edge-local partitions.
//
// Usage:
//
//	graphpart <input_folder> <output_folder> <N> <alpha> <beta> <gamma>
//
// input_folder must contain node_table, edge_table, train_table, val_table,
// and test_table, each tab-separated with a header line. output_folder
// receives a metadata file and one part<k>/ directory per partition, each
// holding the same five tables restricted to that partition's rows.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dreamware/graphpart/internal/orchestrator"
)

func newRootCommand(logger *logrus.Logger) *cobra.Command {
	var (
		kHop              int
		shardCount        int
		poolSize          int
		sequential        bool
		verbose           bool
		fixValCoefficient bool
		writeRunSummary   bool
	)

	cmd := &cobra.Command{
		Use:   "graphpart <input_folder> <output_folder> <N> <alpha> <beta> <gamma>",
		Short: "Partition a graph's tables into N edge-local, role-balanced partitions",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}

			cfg, err := parseConfig(args)
			if err != nil {
				return err
			}
			cfg.KHop = kHop
			cfg.ShardCount = shardCount
			cfg.PoolSize = poolSize
			cfg.Sequential = sequential
			cfg.FixValCoefficient = fixValCoefficient
			cfg.WriteRunSummary = writeRunSummary
			cfg.Logger = logger

			summary, err := orchestrator.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			logger.WithFields(logrus.Fields{
				"component":       "cli",
				"blocks":          summary.Blocks,
				"partitions":      len(summary.Partitions),
				"elapsed_seconds": summary.ElapsedSeconds,
			}).Info("partitioning complete")
			return nil
		},
	}

	cmd.Flags().IntVar(&kHop, "k-hop", orchestrator.DefaultKHop, "BFS hop budget for neighborhood block construction")
	cmd.Flags().IntVar(&shardCount, "shards", 0, "idmap shard count (0 uses the compiled-in default)")
	cmd.Flags().IntVar(&poolSize, "pool-size", 0, "bounded worker pool size for broadcasting (0 uses GOMAXPROCS)")
	cmd.Flags().BoolVar(&sequential, "sequential", false, "broadcast sources one at a time in train, val, test order instead of over the worker pool")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	cmd.Flags().BoolVar(&fixValCoefficient, "fix-val-coefficient", false, "weight the balance score's validation term by beta instead of alpha")
	cmd.Flags().BoolVar(&writeRunSummary, "run-summary", false, "additionally write run_summary.yaml to the output folder")

	return cmd
}

// parseConfig parses the six positional arguments cobra.ExactArgs(6)
// already guaranteed are present.
func parseConfig(args []string) (orchestrator.Config, error) {
	n, err := strconv.Atoi(args[2])
	if err != nil {
		return orchestrator.Config{}, fmt.Errorf("graphpart: partition count %q is not an integer: %w", args[2], err)
	}
	alpha, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return orchestrator.Config{}, fmt.Errorf("graphpart: alpha %q is not a number: %w", args[3], err)
	}
	beta, err := strconv.ParseFloat(args[4], 64)
	if err != nil {
		return orchestrator.Config{}, fmt.Errorf("graphpart: beta %q is not a number: %w", args[4], err)
	}
	gamma, err := strconv.ParseFloat(args[5], 64)
	if err != nil {
		return orchestrator.Config{}, fmt.Errorf("graphpart: gamma %q is not a number: %w", args[5], err)
	}

	return orchestrator.Config{
		InputFolder:    args[0],
		OutputFolder:   args[1],
		PartitionCount: n,
		Alpha:          alpha,
		Beta:           beta,
		Gamma:          gamma,
	}, nil
}

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	if err := newRootCommand(logger).ExecuteContext(context.Background()); err != nil {
		logger.WithField("component", "cli").Error(err)
		os.Exit(1)
	}
}
