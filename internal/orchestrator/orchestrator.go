package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/dreamware/graphpart/internal/block"
	"github.com/dreamware/graphpart/internal/broadcast"
	"github.com/dreamware/graphpart/internal/graphdata"
	"github.com/dreamware/graphpart/internal/idmap"
	"github.com/dreamware/graphpart/internal/partition"
	"github.com/dreamware/graphpart/internal/tables"
)

// ErrInvalidPartitionCount is returned when the requested partition count is
// not a positive integer.
var ErrInvalidPartitionCount = errors.New("orchestrator: partition count must be >= 1")

// DefaultKHop is the compiled-in hop budget, exposed as a CLI flag.
const DefaultKHop = 1

// Config holds every parameter of a single partitioning run.
type Config struct {
	InputFolder    string
	OutputFolder   string
	PartitionCount int
	Alpha          float64
	Beta           float64
	Gamma          float64

	// KHop is the BFS hop budget. Zero is valid and means "claim only the
	// source itself" — anything one edge traversal away is never enqueued.
	KHop int
	// ShardCount is the number of idmap shards. Defaults to
	// idmap.DefaultShardCount when <= 0.
	ShardCount int
	// PoolSize bounds concurrent broadcast goroutines. Defaults to
	// runtime.GOMAXPROCS(0) when <= 0.
	PoolSize int
	// Sequential runs broadcasts one at a time in Train‖Val‖Test order
	// instead of over the worker pool, for deterministic output.
	Sequential bool
	// FixValCoefficient opts into weighting the balance score's validation
	// term by beta instead of alpha. See DESIGN.md for why this defaults to
	// false.
	FixValCoefficient bool
	// WriteRunSummary additionally emits run_summary.yaml alongside
	// metadata.
	WriteRunSummary bool

	Logger *logrus.Logger
}

// PartitionSummary is one partition's row counts, used in the optional run
// summary.
type PartitionSummary struct {
	Index int `yaml:"index"`
	Nodes int `yaml:"nodes"`
	Edges int `yaml:"edges"`
	Train int `yaml:"train"`
	Val   int `yaml:"val"`
	Test  int `yaml:"test"`
}

// RunSummary is the optional run_summary.yaml payload: block and partition
// counts plus elapsed time, giving the run a machine-readable record beyond
// the bare metadata file.
type RunSummary struct {
	Blocks         int                `yaml:"blocks"`
	Partitions     []PartitionSummary `yaml:"partitions"`
	ElapsedSeconds float64            `yaml:"elapsed_seconds"`
}

// Run executes the full pipeline: ingest, broadcast, build blocks, assign,
// and emit. Returns the run summary for callers that want it (the CLI logs
// it; tests assert against it).
func Run(ctx context.Context, cfg Config) (RunSummary, error) {
	start := time.Now()

	if cfg.PartitionCount < 1 {
		return RunSummary{}, fmt.Errorf("%w: got %d", ErrInvalidPartitionCount, cfg.PartitionCount)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	shardCount := cfg.ShardCount
	if shardCount <= 0 {
		shardCount = idmap.DefaultShardCount
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = runtime.GOMAXPROCS(0)
	}

	logger.WithFields(logrus.Fields{
		"component": "orchestrator",
		"input":     cfg.InputFolder,
		"output":    cfg.OutputFolder,
		"n":         cfg.PartitionCount,
		"k_hop":     cfg.KHop,
	}).Info("reading graph")

	graph, err := tables.ReadGraph(cfg.InputFolder)
	if err != nil {
		return RunSummary{}, err
	}

	adjacency := graphdata.BuildAdjacencyIndex(graph.Edges)
	ids := idmap.New(shardCount)
	sources := graphdata.MergeRoles(graph.Train, graph.Val, graph.Test)

	logger.WithFields(logrus.Fields{
		"component": "orchestrator",
		"sources":   len(sources),
	}).Info("broadcasting neighborhood blocks")

	caster := broadcast.New(adjacency, ids, cfg.KHop, poolSize, logger)
	if err := caster.Run(ctx, sources, cfg.Sequential); err != nil {
		return RunSummary{}, fmt.Errorf("orchestrator: broadcast: %w", err)
	}

	logger.WithField("component", "orchestrator").Info("constructing neighborhood blocks")
	blocks := block.NewBuilder(ids).Build(graph)

	logger.WithFields(logrus.Fields{
		"component": "orchestrator",
		"blocks":    len(blocks),
	}).Info("assigning blocks to partitions")

	coeff := partition.NewCoefficients(cfg.Alpha, cfg.Beta, cfg.Gamma,
		graph.TrainSize(), graph.ValSize(), graph.TestSize(), cfg.PartitionCount)
	coeff.FixValCoefficient = cfg.FixValCoefficient

	aggregators := partition.Assign(blocks, cfg.PartitionCount, coeff, logger)

	partitionTables := make([]graphdata.GraphTables, len(aggregators))
	summary := RunSummary{Blocks: len(blocks), Partitions: make([]PartitionSummary, len(aggregators))}
	for i, agg := range aggregators {
		agg.SetHeader(graph)
		t := agg.Tables()
		partitionTables[i] = t
		summary.Partitions[i] = PartitionSummary{
			Index: i,
			Nodes: len(t.Nodes.Rows),
			Edges: len(t.Edges.Rows),
			Train: len(t.Train.Keys),
			Val:   len(t.Val.Keys),
			Test:  len(t.Test.Keys),
		}
	}

	logger.WithField("component", "orchestrator").Info("writing metadata and partitions")

	if err := os.MkdirAll(cfg.OutputFolder, 0o755); err != nil {
		return RunSummary{}, fmt.Errorf("orchestrator: create output folder %s: %w", cfg.OutputFolder, err)
	}

	nodeKeyColumn := "node_id"
	if len(graph.Nodes.Header) > 0 {
		nodeKeyColumn = graph.Nodes.Header[0]
	}
	entries := tables.BuildMetadata(partitionTables)
	if err := tables.WriteMetadata(cfg.OutputFolder, nodeKeyColumn, entries); err != nil {
		return RunSummary{}, err
	}
	if err := tables.WritePartitions(cfg.OutputFolder, partitionTables); err != nil {
		return RunSummary{}, err
	}

	summary.ElapsedSeconds = time.Since(start).Seconds()

	if cfg.WriteRunSummary {
		if err := writeRunSummary(cfg.OutputFolder, summary); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

func writeRunSummary(outputFolder string, summary RunSummary) error {
	path := filepath.Join(outputFolder, "run_summary.yaml")
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("orchestrator: marshal run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("orchestrator: write %s: %w", path, err)
	}
	return nil
}
