// Package frame implements the in-memory storage model the operators run on: frames (tables) made
// of named vecs (columns), each vec partitioned into contiguous row-range chunks.
//
// Cells are float64. A missing cell (NA) is stored as NaN. A categorical vec carries a domain, an
// ordered list of unique level strings, and every non-NA cell of a categorical vec is an integer
// code indexing that domain.
//
// Vecs and frames are immutable: every operation that "changes" a column builds a new vec. Vecs
// built with the same chunk size and row count have the same layout, which is what lets the
// executor map aligned partitions of several vecs together.
package frame
