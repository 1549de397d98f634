package partition

import (
	"sync"

	"github.com/dreamware/graphpart/internal/block"
	"github.com/dreamware/graphpart/internal/graphdata"
)

// Aggregator accumulates the nodes, edges, and role members of zero or more
// blocks, maintaining a node set and an edge-destination set so that
// CrossEdge can answer cross-edge queries without rescanning the row tables.
//
// Rows, role keys, and the two sets change only inside AddBlock (SetHeader
// sets only the header rows), both only ever called from the
// single-threaded assignment and emission phases; the mutex exists so the type remains
// safe if that assumption is ever relaxed.
type Aggregator struct {
	mu sync.RWMutex

	tables graphdata.GraphTables

	nodeSet    map[string]struct{}
	edgeDstSet map[string]struct{}
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		nodeSet:    make(map[string]struct{}),
		edgeDstSet: make(map[string]struct{}),
	}
}

// SetHeader copies the node/edge/role headers from g, the way every emitted
// partition table must carry the source graph's header row even if the
// partition itself received zero rows for that table.
func (p *Aggregator) SetHeader(g graphdata.GraphTables) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tables.Nodes.Header = g.Nodes.Header
	p.tables.Edges.Header = g.Edges.Header
	p.tables.Train.Header = g.Train.Header
	p.tables.Val.Header = g.Val.Header
	p.tables.Test.Header = g.Test.Header
}

// NodeSize reports the number of node rows currently held.
func (p *Aggregator) NodeSize() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tables.Nodes.Rows)
}

// TrainSize reports the number of train keys currently held.
func (p *Aggregator) TrainSize() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tables.Train.Keys)
}

// ValSize reports the number of validation keys currently held.
func (p *Aggregator) ValSize() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tables.Val.Keys)
}

// TestSize reports the number of test keys currently held.
func (p *Aggregator) TestSize() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tables.Test.Keys)
}

// IsInNodeSet reports whether key names a node already in this partition.
func (p *Aggregator) IsInNodeSet(key string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.nodeSet[key]
	return ok
}

// IsInEdgeDstSet reports whether key appears as a destination among this
// partition's edges.
func (p *Aggregator) IsInEdgeDstSet(key string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.edgeDstSet[key]
	return ok
}

// CrossEdge counts how many existing references between b and this
// partition would become cross-partition if b joined it:
//
//	(edges in b whose destination is in this partition's node set)
//	  + (nodes in b whose key is in this partition's edge-destination set)
//
// This is a symmetric undercount of the bidirectional boundary — it never
// double-counts, because b's nodes and edges are disjoint categories and no
// edge between b and this partition exists in both directions in the same
// row. Side-effect-free: safe to call while scoring every candidate
// partition for a block.
func (p *Aggregator) CrossEdge(b *block.Block) int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	count := 0
	for _, row := range b.Edges.Rows {
		if _, ok := p.nodeSet[row.Dst()]; ok {
			count++
		}
	}
	for _, row := range b.Nodes.Rows {
		if _, ok := p.edgeDstSet[row.Key()]; ok {
			count++
		}
	}
	return count
}

// AddBlock merges every node, edge, and role member of b into this
// partition, updating the node set and edge-destination set so future
// CrossEdge queries stay consistent with the row tables.
func (p *Aggregator) AddBlock(b *block.Block) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, row := range b.Nodes.Rows {
		p.tables.Nodes.Rows = append(p.tables.Nodes.Rows, row)
		p.nodeSet[row.Key()] = struct{}{}
	}
	for _, row := range b.Edges.Rows {
		p.tables.Edges.Rows = append(p.tables.Edges.Rows, row)
		p.edgeDstSet[row.Dst()] = struct{}{}
	}
	p.tables.Train.Keys = append(p.tables.Train.Keys, b.Train.Keys...)
	p.tables.Val.Keys = append(p.tables.Val.Keys, b.Val.Keys...)
	p.tables.Test.Keys = append(p.tables.Test.Keys, b.Test.Keys...)
}

// Tables returns a copy of the partition's current GraphTables content,
// suitable for emission. Rows themselves are not deep-copied (they are
// treated as read-only once ingested), and the header slices are shared, but
// the row and key slices are independent of the Aggregator's internal state.
func (p *Aggregator) Tables() graphdata.GraphTables {
	p.mu.RLock()
	defer p.mu.RUnlock()

	nodes := make([]graphdata.Row, len(p.tables.Nodes.Rows))
	copy(nodes, p.tables.Nodes.Rows)
	edges := make([]graphdata.Row, len(p.tables.Edges.Rows))
	copy(edges, p.tables.Edges.Rows)
	train := make([]string, len(p.tables.Train.Keys))
	copy(train, p.tables.Train.Keys)
	val := make([]string, len(p.tables.Val.Keys))
	copy(val, p.tables.Val.Keys)
	test := make([]string, len(p.tables.Test.Keys))
	copy(test, p.tables.Test.Keys)

	return graphdata.GraphTables{
		Nodes: graphdata.Table{Header: p.tables.Nodes.Header, Rows: nodes},
		Edges: graphdata.Table{Header: p.tables.Edges.Header, Rows: edges},
		Train: graphdata.RoleSet{Header: p.tables.Train.Header, Keys: train},
		Val:   graphdata.RoleSet{Header: p.tables.Val.Header, Keys: val},
		Test:  graphdata.RoleSet{Header: p.tables.Test.Header, Keys: test},
	}
}
