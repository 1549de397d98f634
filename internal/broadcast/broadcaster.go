package broadcast

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/dreamware/graphpart/internal/graphdata"
	"github.com/dreamware/graphpart/internal/idmap"
)

// frontierItem is one entry in a single broadcast's local BFS queue.
type frontierItem struct {
	key           string
	hopsRemaining int
}

// Broadcaster performs bounded K-hop BFS broadcasts from role-labeled source
// keys into a shared idmap.Map, claiming every vertex it reaches for the
// first source to get there.
type Broadcaster struct {
	adjacency *graphdata.AdjacencyIndex
	ids       *idmap.Map
	hops      int
	poolSize  int
	logger    *logrus.Logger
}

// New constructs a Broadcaster. hops is the K-hop budget (must be >= 0);
// poolSize bounds the number of concurrent broadcast goroutines. A nil
// logger is replaced with a logger that discards output.
func New(adjacency *graphdata.AdjacencyIndex, ids *idmap.Map, hops, poolSize int, logger *logrus.Logger) *Broadcaster {
	if hops < 0 {
		panic("broadcast: hops must be >= 0")
	}
	if poolSize < 1 {
		poolSize = 1
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Broadcaster{adjacency: adjacency, ids: ids, hops: hops, poolSize: poolSize, logger: logger}
}

// SeedSelfOwnership claims key → key for every source, unconditionally, using
// TryClaim. This must run to completion before any broadcast starts —
// otherwise a neighbor's BFS could race in and overwrite a source's
// self-ownership before the source claims itself.
func (b *Broadcaster) SeedSelfOwnership(sources []string) {
	for _, key := range sources {
		b.ids.TryClaim(key, key)
	}
}

// broadcastOne performs the bounded BFS walk for a single source, attempting
// to claim every vertex it visits. Termination is guaranteed because each
// dequeue strictly decreases the hop counter.
func (b *Broadcaster) broadcastOne(source string) {
	queue := []frontierItem{{key: source, hopsRemaining: b.hops}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if b.ids.TryClaim(cur.key, source) {
			b.logger.WithFields(logrus.Fields{
				"component": "broadcast",
				"source":    source,
				"vertex":    cur.key,
			}).Debug("claimed vertex")
		}

		if cur.hopsRemaining <= 0 {
			continue
		}
		for _, n := range b.adjacency.Neighbors(cur.key) {
			queue = append(queue, frontierItem{key: n, hopsRemaining: cur.hopsRemaining - 1})
		}
	}
}

// Run seeds self-ownership for every source and then broadcasts from each.
//
// When sequential is false (the default), broadcasts run across a worker
// pool bounded to poolSize concurrent goroutines using errgroup+semaphore —
// no ordering is guaranteed across sources, and the resulting assignment is
// valid but non-deterministic run-to-run.
//
// When sequential is true, broadcasts run one at a time on the calling
// goroutine in the order sources was given. Callers wanting a deterministic,
// single-threaded run must pass sources in Train‖Val‖Test order
// (graphdata.MergeRoles already produces that order).
func (b *Broadcaster) Run(ctx context.Context, sources []string, sequential bool) error {
	b.SeedSelfOwnership(sources)

	b.logger.WithFields(logrus.Fields{
		"component":  "broadcast",
		"sources":    len(sources),
		"k_hop":      b.hops,
		"sequential": sequential,
	}).Info("broadcasting neighborhood blocks")

	if sequential {
		for _, source := range sources {
			b.broadcastOne(source)
		}
		return nil
	}

	sem := semaphore.NewWeighted(int64(b.poolSize))
	g, gctx := errgroup.WithContext(ctx)
	for _, source := range sources {
		source := source
		if err := sem.Acquire(gctx, 1); err != nil {
			return err
		}
		g.Go(func() error {
			defer sem.Release(1)
			b.broadcastOne(source)
			return nil
		})
	}
	return g.Wait()
}
