package tables

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dreamware/graphpart/internal/graphdata"
)

// input folder layout.
const (
	nodeTableFile  = "node_table"
	edgeTableFile  = "edge_table"
	trainTableFile = "train_table"
	valTableFile   = "val_table"
	testTableFile  = "test_table"
	metadataFile   = "metadata"
)

// ReadGraph reads the five tables of an input folder (node_table,
// edge_table, train_table, val_table, test_table) and returns them as a
// GraphTables value.
func ReadGraph(inputFolder string) (graphdata.GraphTables, error) {
	nodes, err := ReadTable(filepath.Join(inputFolder, nodeTableFile))
	if err != nil {
		return graphdata.GraphTables{}, err
	}
	edges, err := ReadTable(filepath.Join(inputFolder, edgeTableFile))
	if err != nil {
		return graphdata.GraphTables{}, err
	}
	train, err := ReadRoleSet(filepath.Join(inputFolder, trainTableFile))
	if err != nil {
		return graphdata.GraphTables{}, err
	}
	val, err := ReadRoleSet(filepath.Join(inputFolder, valTableFile))
	if err != nil {
		return graphdata.GraphTables{}, err
	}
	test, err := ReadRoleSet(filepath.Join(inputFolder, testTableFile))
	if err != nil {
		return graphdata.GraphTables{}, err
	}

	return graphdata.GraphTables{Nodes: nodes, Edges: edges, Train: train, Val: val, Test: test}, nil
}

// MetadataEntry is one (node key, partition index) pair.
type MetadataEntry struct {
	NodeKey   string
	Partition int
}

// BuildMetadata walks each partition's node table in order and returns the
// flat (node_key, partition_index) list.
func BuildMetadata(partitions []graphdata.GraphTables) []MetadataEntry {
	var out []MetadataEntry
	for idx, p := range partitions {
		for _, row := range p.Nodes.Rows {
			out = append(out, MetadataEntry{NodeKey: row.Key(), Partition: idx})
		}
	}
	return out
}

// WriteMetadata writes the metadata file: a header line
// "<node-key-col>\tpartition-id:int64" followed by one (node_key,
// partition_index) pair per line.
func WriteMetadata(outputFolder, nodeKeyColumn string, entries []MetadataEntry) error {
	path := filepath.Join(outputFolder, metadataFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tables: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s\tpartition-id:int64\n", nodeKeyColumn); err != nil {
		return fmt.Errorf("tables: write %s: %w", path, err)
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(f, "%s\t%d\n", e.NodeKey, e.Partition); err != nil {
			return fmt.Errorf("tables: write %s: %w", path, err)
		}
	}
	return nil
}

// WritePartitions creates part<k>/ under outputFolder for every partition
// and writes its five tables, header rows copied from the source graph.
func WritePartitions(outputFolder string, partitions []graphdata.GraphTables) error {
	for k, p := range partitions {
		partFolder := filepath.Join(outputFolder, fmt.Sprintf("part%d", k))
		if err := os.MkdirAll(partFolder, 0o755); err != nil {
			return fmt.Errorf("tables: create %s: %w", partFolder, err)
		}
		if err := WriteTable(filepath.Join(partFolder, nodeTableFile), p.Nodes); err != nil {
			return err
		}
		if err := WriteTable(filepath.Join(partFolder, edgeTableFile), p.Edges); err != nil {
			return err
		}
		if err := WriteRoleSet(filepath.Join(partFolder, trainTableFile), p.Train); err != nil {
			return err
		}
		if err := WriteRoleSet(filepath.Join(partFolder, valTableFile), p.Val); err != nil {
			return err
		}
		if err := WriteRoleSet(filepath.Join(partFolder, testTableFile), p.Test); err != nil {
			return err
		}
	}
	return nil
}
