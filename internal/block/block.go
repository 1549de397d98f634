package block

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/dreamware/graphpart/internal/graphdata"
	"github.com/dreamware/graphpart/internal/idmap"
)

// Block is a group of nodes, edges, and role members sharing the same
// broadcast owner key. Blocks are created once during Build and then moved
// (not copied) into partitions by the Assigner; they are not mutated after
// that move.
type Block struct {
	Owner string
	graphdata.GraphTables
}

// Builder constructs Blocks from a GraphTables value and the idmap.Map that
// broadcasting populated.
type Builder struct {
	ids *idmap.Map
}

// NewBuilder returns a Builder backed by ids, the map broadcasting wrote
// into.
func NewBuilder(ids *idmap.Map) *Builder {
	return &Builder{ids: ids}
}

// ownerOf returns key's owner, self-claiming it if broadcasting never reached
// it. At this point in the pipeline no broadcaster is running, so the
// ordinary single-threaded get-then-insert here needs no lock beyond the
// idmap shard's own — there is no race to protect against.
func (bb *Builder) ownerOf(key string) string {
	if owner, ok := bb.ids.Get(key); ok {
		return owner
	}
	bb.ids.TryClaim(key, key)
	return key
}

// Build groups every node row, edge row, and role member by owner key and
// returns the resulting blocks sorted by node count descending. Ties are
// broken by owner key ascending, which is both deterministic given
// deterministic inputs and total (owner keys are unique), so no additional
// stability requirement is needed from the sort itself.
func (bb *Builder) Build(g graphdata.GraphTables) []*Block {
	byOwner := make(map[string]*Block)
	get := func(owner string) *Block {
		blk, ok := byOwner[owner]
		if !ok {
			blk = &Block{
				Owner: owner,
				GraphTables: graphdata.GraphTables{
					Nodes: g.Nodes.Clone(0),
					Edges: g.Edges.Clone(0),
					Train: g.Train.Clone(0),
					Val:   g.Val.Clone(0),
					Test:  g.Test.Clone(0),
				},
			}
			byOwner[owner] = blk
		}
		return blk
	}

	for _, row := range g.Nodes.Rows {
		owner := bb.ownerOf(row.Key())
		blk := get(owner)
		blk.Nodes.Rows = append(blk.Nodes.Rows, row)
	}
	for _, row := range g.Edges.Rows {
		owner := bb.ownerOf(row.Src())
		blk := get(owner)
		blk.Edges.Rows = append(blk.Edges.Rows, row)
	}
	for _, key := range g.Train.Keys {
		owner := bb.ownerOf(key)
		blk := get(owner)
		blk.Train.Keys = append(blk.Train.Keys, key)
	}
	for _, key := range g.Val.Keys {
		owner := bb.ownerOf(key)
		blk := get(owner)
		blk.Val.Keys = append(blk.Val.Keys, key)
	}
	for _, key := range g.Test.Keys {
		owner := bb.ownerOf(key)
		blk := get(owner)
		blk.Test.Keys = append(blk.Test.Keys, key)
	}

	blocks := make([]*Block, 0, len(byOwner))
	for _, blk := range byOwner {
		blocks = append(blocks, blk)
	}

	slices.SortFunc(blocks, func(a, bx *Block) int {
		if a.NodeSize() != bx.NodeSize() {
			return bx.NodeSize() - a.NodeSize() // descending by node count
		}
		return strings.Compare(a.Owner, bx.Owner)
	})

	return blocks
}
