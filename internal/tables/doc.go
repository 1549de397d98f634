// Package tables implements the tabular I/O collaborator: reading the
// node/edge/role tables that make up an input graph, and writing the
// metadata file and per-partition table tree that make up the output.
//
// No suitable third-party TSV/CSV library was available, so this package is
// built on the standard library's bufio, regexp, and strings, a choice
// recorded in DESIGN.md. Fields are
// separated by runs of the tab character, and a trailing \r or \n is
// stripped from each line before splitting.
package tables
