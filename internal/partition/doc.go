// Package partition implements the two halves of block-to-partition
// placement: Aggregator, the accumulator a block is merged into, and Assign,
// the greedy score-maximizing placement.
//
// # Design
//
// Aggregator is an RWMutex-guarded accumulator with copy-out accessors and
// append-only mutations: "which rows, role members, and membership sets does
// this partition hold". It is only ever mutated from the single-threaded
// assignment phase, so the lock exists for clarity about the concurrency
// boundary rather than genuine contention.
//
// Assign scores every candidate partition and places the block into the
// maximizer, generalized to the CE×BS objective: cross-edge locality traded
// against remaining role-set capacity.
package partition
