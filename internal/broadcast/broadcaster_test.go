package broadcast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/graphpart/internal/graphdata"
	"github.com/dreamware/graphpart/internal/idmap"
)

func edgeTable(pairs [][2]string) graphdata.Table {
	t := graphdata.Table{Header: []string{"src", "dst"}}
	for _, p := range pairs {
		t.Rows = append(t.Rows, graphdata.Row{p[0], p[1]})
	}
	return t
}

func TestBroadcastSingletonChain(t *testing.T) {
	// S1-style: a -> b -> c, K=1, Train={a}.
	adj := graphdata.BuildAdjacencyIndex(edgeTable([][2]string{{"a", "b"}, {"b", "c"}}))
	ids := idmap.New(8)
	b := New(adj, ids, 1, 4, nil)

	require.NoError(t, b.Run(context.Background(), []string{"a"}, true))

	owner, ok := ids.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", owner)

	owner, ok = ids.Get("b")
	require.True(t, ok)
	assert.Equal(t, "a", owner)

	// c is 2 hops away; K=1 must not reach it.
	_, ok = ids.Get("c")
	assert.False(t, ok)
}

func TestBroadcastKHopCoverage(t *testing.T) {
	// S3: K=2, chain a->b->c->d, Train={a}. Claims a,b,c but not d.
	adj := graphdata.BuildAdjacencyIndex(edgeTable([][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}}))
	ids := idmap.New(8)
	b := New(adj, ids, 2, 4, nil)

	require.NoError(t, b.Run(context.Background(), []string{"a"}, true))

	for _, k := range []string{"a", "b", "c"} {
		owner, ok := ids.Get(k)
		require.Truef(t, ok, "expected %q to be claimed", k)
		assert.Equal(t, "a", owner)
	}
	_, ok := ids.Get("d")
	assert.False(t, ok, "d is 3 hops away and must not be claimed")
}

func TestBroadcastSelfSeedingPreventsCrossClaim(t *testing.T) {
	// S4: K=1, nodes {a,b}, edges (a,b) and (b,a), Train={a,b}. Regardless of
	// execution order, both self-claim before any broadcast can cross-claim.
	adj := graphdata.BuildAdjacencyIndex(edgeTable([][2]string{{"a", "b"}, {"b", "a"}}))
	ids := idmap.New(8)
	b := New(adj, ids, 1, 4, nil)

	require.NoError(t, b.Run(context.Background(), []string{"a", "b"}, false))

	ownerA, ok := ids.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", ownerA)

	ownerB, ok := ids.Get("b")
	require.True(t, ok)
	assert.Equal(t, "b", ownerB)
}

func TestBroadcastZeroHopClaimsOnlySelf(t *testing.T) {
	adj := graphdata.BuildAdjacencyIndex(edgeTable([][2]string{{"a", "b"}}))
	ids := idmap.New(8)
	b := New(adj, ids, 0, 4, nil)

	require.NoError(t, b.Run(context.Background(), []string{"a"}, true))

	owner, ok := ids.Get("a")
	require.True(t, ok)
	assert.Equal(t, "a", owner)

	_, ok = ids.Get("b")
	assert.False(t, ok)
}

func TestBroadcastConcurrentIsRaceFree(t *testing.T) {
	// Many broadcasts racing over a densely connected graph: every node must
	// end up with exactly one owner, regardless of goroutine scheduling.
	edges := [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "e"},
		{"e", "a"}, {"a", "c"}, {"b", "d"}, {"c", "e"},
	}
	adj := graphdata.BuildAdjacencyIndex(edgeTable(edges))
	ids := idmap.New(8)
	b := New(adj, ids, 2, 8, nil)

	sources := []string{"a", "b", "c", "d", "e"}
	require.NoError(t, b.Run(context.Background(), sources, false))

	for _, n := range []string{"a", "b", "c", "d", "e"} {
		_, ok := ids.Get(n)
		assert.True(t, ok, "node %s must have an owner", n)
	}
}

func TestNewPanicsOnNegativeHops(t *testing.T) {
	assert.Panics(t, func() {
		New(graphdata.BuildAdjacencyIndex(graphdata.Table{}), idmap.New(8), -1, 1, nil)
	})
}
