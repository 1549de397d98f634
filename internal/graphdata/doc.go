// Package graphdata defines the tabular data model shared by every stage of
// the partitioner: the node and edge tables read from disk, the three
// role-labeled key sequences (train/val/test), and the adjacency index built
// once from the edge table for BFS traversal.
//
// # Overview
//
// A GraphTables value is the "graph-like" record every later stage embeds by
// composition rather than inheriting from a base Graph type: blocks
// (internal/block) and partitions (internal/partition) each hold a
// GraphTables and grow it, instead of subclassing a shared Graph base. There
// is no dynamic dispatch anywhere in this hierarchy — GraphTables is a plain
// value type.
//
// # Rows
//
// Node rows and edge rows are opaque beyond their key columns: a node row's
// column 0 is its key, an edge row's columns 0 and 1 are source and
// destination. Every other column rides along unexamined from input to
// output.
package graphdata
