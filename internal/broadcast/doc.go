// Package broadcast implements the per-source, bounded-hop BFS that claims
// vertices for role-labeled sources in the sharded idmap.Map.
//
// # Design
//
// Each source gets its own local FIFO queue; there is no shared frontier.
// A vertex may be enqueued many times by different broadcasts racing for it
// — that duplication is the price of lock-free enqueueing, and the only
// contention point is idmap.Map.TryClaim's per-shard mutex. Broadcasts run
// over a bounded worker pool of per-source BFS tasks built on
// golang.org/x/sync's errgroup and weighted semaphore, rather than one
// goroutine per source.
package broadcast
