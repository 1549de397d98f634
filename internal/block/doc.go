// Package block groups node rows, edge rows, and role members by their
// broadcast owner into Block records, the unit the Assigner places into
// partitions.
//
// Invariant established by Build: for every Block B owning key b, every node
// row in B has owner b, and every edge row in B has a source whose owner is
// b — the destination may live in a different block, which is exactly the
// future cross-edge the Assigner scores.
package block
