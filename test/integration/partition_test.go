// Package integration exercises the full pipeline — ingest, broadcast,
// block construction, assignment, emission — end to end against real
// tab-separated files in a temp directory, driving the orchestrator
// in-process rather than spawning external binaries.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/graphpart/internal/orchestrator"
	"github.com/dreamware/graphpart/internal/tables"
)

type fixture struct {
	nodes []string
	edges [][2]string
	train []string
	val   []string
	test  []string
}

func writeFixture(t *testing.T, dir string, fx fixture) {
	t.Helper()

	nodeLines := "node_id\n"
	for _, n := range fx.nodes {
		nodeLines += n + "\n"
	}
	edgeLines := "src\tdst\n"
	for _, e := range fx.edges {
		edgeLines += e[0] + "\t" + e[1] + "\n"
	}
	roleLines := func(keys []string) string {
		out := "node_id\n"
		for _, k := range keys {
			out += k + "\n"
		}
		return out
	}

	files := map[string]string{
		"node_table":  nodeLines,
		"edge_table":  edgeLines,
		"train_table": roleLines(fx.train),
		"val_table":   roleLines(fx.val),
		"test_table":  roleLines(fx.test),
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

// TestSingletonPartition checks that a single requested partition collapses
// every node and edge into it.
func TestSingletonPartition(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "out")
	writeFixture(t, input, fixture{
		nodes: []string{"a", "b", "c"},
		edges: [][2]string{{"a", "b"}, {"b", "c"}},
		train: []string{"a"},
	})

	_, err := orchestrator.Run(context.Background(), orchestrator.Config{
		InputFolder:    input,
		OutputFolder:   output,
		PartitionCount: 1,
		Alpha:          1,
		Beta:           1,
		Gamma:          1,
		KHop:           1,
		Sequential:     true,
	})
	require.NoError(t, err)

	g, err := tables.ReadGraph(filepath.Join(output, "part0"))
	require.NoError(t, err)
	assert.Equal(t, 3, g.NodeSize())
	assert.Len(t, g.Edges.Rows, 2)
}

// TestKHopCoverage checks that a hop budget of 2 on a 4-node chain leaves
// the tail node unreached by broadcast, so it self-claims into its own
// singleton block and still appears in the metadata.
func TestKHopCoverage(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "out")
	writeFixture(t, input, fixture{
		nodes: []string{"a", "b", "c", "d"},
		edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}},
		train: []string{"a"},
	})

	_, err := orchestrator.Run(context.Background(), orchestrator.Config{
		InputFolder:    input,
		OutputFolder:   output,
		PartitionCount: 2,
		Alpha:          1,
		Beta:           1,
		Gamma:          1,
		KHop:           2,
		Sequential:     true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(output, "metadata"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "d\t")
}

// TestRaceFreedomUnderMutualEdges checks that a 2-cycle with both endpoints
// role-labeled runs to completion in both sequential and pooled broadcast
// mode and emits both nodes in the metadata.
func TestRaceFreedomUnderMutualEdges(t *testing.T) {
	input := t.TempDir()
	for _, sequential := range []bool{true, false} {
		output := filepath.Join(t.TempDir(), "out", strconv.FormatBool(sequential))
		writeFixture(t, input, fixture{
			nodes: []string{"a", "b"},
			edges: [][2]string{{"a", "b"}, {"b", "a"}},
			train: []string{"a", "b"},
		})

		_, err := orchestrator.Run(context.Background(), orchestrator.Config{
			InputFolder:    input,
			OutputFolder:   output,
			PartitionCount: 2,
			Alpha:          1,
			Beta:           1,
			Gamma:          1,
			KHop:           1,
			Sequential:     sequential,
		})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(output, "metadata"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "a\t")
		assert.Contains(t, string(data), "b\t")
	}
}

// TestCompletenessAndEdgeLocality checks that every node appears in exactly
// one partition and every edge is emitted only by the partition owning its
// source, against a slightly larger, multi-component graph.
func TestCompletenessAndEdgeLocality(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "out")
	nodes := []string{"a", "b", "c", "d", "e", "f"}
	edges := [][2]string{{"a", "b"}, {"b", "c"}, {"d", "e"}, {"e", "f"}}
	writeFixture(t, input, fixture{
		nodes: nodes,
		edges: edges,
		train: []string{"a", "d"},
		val:   []string{"c"},
		test:  []string{"f"},
	})

	_, err := orchestrator.Run(context.Background(), orchestrator.Config{
		InputFolder:    input,
		OutputFolder:   output,
		PartitionCount: 3,
		Alpha:          1,
		Beta:           1,
		Gamma:          1,
		KHop:           1,
		Sequential:     true,
	})
	require.NoError(t, err)

	seenNodes := map[string]int{}
	var partitions []int
	for k := 0; k < 3; k++ {
		g, err := tables.ReadGraph(filepath.Join(output, "part"+strconv.Itoa(k)))
		require.NoError(t, err)
		for _, row := range g.Nodes.Rows {
			seenNodes[row.Key()]++
		}
		partitions = append(partitions, g.NodeSize())

		srcOwners := map[string]bool{}
		for _, row := range g.Nodes.Rows {
			srcOwners[row.Key()] = true
		}
		for _, row := range g.Edges.Rows {
			assert.True(t, srcOwners[row.Src()], "edge %v emitted in a partition that does not own its source", row)
		}
	}

	for _, n := range nodes {
		assert.Equal(t, 1, seenNodes[n], "node %s should appear in exactly one partition", n)
	}
}

// TestDeterminismAcrossSequentialRuns checks that two sequential runs over
// identical input produce byte-identical metadata.
func TestDeterminismAcrossSequentialRuns(t *testing.T) {
	input := t.TempDir()
	writeFixture(t, input, fixture{
		nodes: []string{"a", "b", "c", "d", "e"},
		edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "e"}},
		train: []string{"a", "c"},
		val:   []string{"e"},
	})

	cfg := orchestrator.Config{
		InputFolder:    input,
		PartitionCount: 2,
		Alpha:          1,
		Beta:           1,
		Gamma:          1,
		KHop:           1,
		Sequential:     true,
	}

	outA := filepath.Join(t.TempDir(), "a")
	outB := filepath.Join(t.TempDir(), "b")
	cfgA, cfgB := cfg, cfg
	cfgA.OutputFolder = outA
	cfgB.OutputFolder = outB

	_, errA := orchestrator.Run(context.Background(), cfgA)
	_, errB := orchestrator.Run(context.Background(), cfgB)
	require.NoError(t, errA)
	require.NoError(t, errB)

	metaA, err := os.ReadFile(filepath.Join(outA, "metadata"))
	require.NoError(t, err)
	metaB, err := os.ReadFile(filepath.Join(outB, "metadata"))
	require.NoError(t, err)
	assert.Equal(t, string(metaA), string(metaB))
}
