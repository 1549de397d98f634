// Package idmap implements the sharded node-key-to-owner-key map that makes
// concurrent neighborhood broadcasting safe.
//
// # Overview
//
// Logically the map is a single node_key → owner_key mapping. Physically it
// is split into a fixed number of independently-hashed, independently-locked
// shards. Here the "shard" is a lock-contention boundary rather than a unit
// of data placement: S mutexes permit up to S concurrent broadcast writers
// with no inter-shard coordination.
//
// # First-writer-wins
//
// TryClaim inserts a key only if it is currently absent from its shard. This
// is the correctness anchor of the whole partitioner: many broadcasts may
// race to claim the same vertex, but only the first one to acquire the
// shard's mutex and observe the key as absent succeeds. The resulting
// assignment is well-formed regardless of which broadcast wins — ties simply
// go to whichever goroutine got there first.
package idmap
