package graphdata

// Row is a single tab-separated record. For a node row, Row[0] is the node
// key. For an edge row, Row[0] is the source key and Row[1] the destination
// key. Remaining columns are preserved verbatim through to output.
type Row []string

// Key returns the node key of a node row (column 0).
func (r Row) Key() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Src returns the source key of an edge row (column 0).
func (r Row) Src() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Dst returns the destination key of an edge row (column 1), or the empty
// string for a ragged row with fewer than two columns.
func (r Row) Dst() string {
	if len(r) < 2 {
		return ""
	}
	return r[1]
}

// Table is a header plus zero or more rows, mirroring the tab-separated
// input/output file format: one header line, then one row per line.
type Table struct {
	Header []string
	Rows   []Row
}

// Clone returns a Table with the same header and an independent, empty row
// slice pre-sized to hold n rows. Used when fanning a shared header out to
// per-block or per-partition tables.
func (t Table) Clone(n int) Table {
	return Table{Header: t.Header, Rows: make([]Row, 0, n)}
}

// RoleSet is one of the three disjoint labeled key sequences (train,
// validation, test): a header line (typically a single column name) plus an
// ordered list of node keys.
type RoleSet struct {
	Header []string
	Keys   []string
}

// Clone returns a RoleSet with the same header and an independent, empty key
// slice pre-sized to hold n keys.
func (r RoleSet) Clone(n int) RoleSet {
	return RoleSet{Header: r.Header, Keys: make([]string, 0, n)}
}

// GraphTables groups a node table, an edge table, and the three role sets —
// the complete tabular content of a graph, a block, or a partition. Every
// later component (block.Block, partition.Aggregator) embeds one of these by
// value instead of inheriting from a shared base type.
type GraphTables struct {
	Nodes Table
	Edges Table
	Train RoleSet
	Val   RoleSet
	Test  RoleSet
}

// NodeSize reports the number of node rows.
func (g GraphTables) NodeSize() int { return len(g.Nodes.Rows) }

// TrainSize reports the number of train keys.
func (g GraphTables) TrainSize() int { return len(g.Train.Keys) }

// ValSize reports the number of validation keys.
func (g GraphTables) ValSize() int { return len(g.Val.Keys) }

// TestSize reports the number of test keys.
func (g GraphTables) TestSize() int { return len(g.Test.Keys) }

// MergeRoles returns the train, val, and test keys concatenated in that
// order. This fixed ordering is the deterministic broadcast order required
// in single-threaded mode.
func MergeRoles(train, val, test RoleSet) []string {
	out := make([]string, 0, len(train.Keys)+len(val.Keys)+len(test.Keys))
	out = append(out, train.Keys...)
	out = append(out, val.Keys...)
	out = append(out, test.Keys...)
	return out
}
