// Package prim implements the primitive operators of the expression layer.
//
// Every primitive applies to already evaluated argument values and produces a new value; inputs
// are never modified. Frame-valued work is expressed as parallel passes of an exec.Executor whose
// per-partition bodies are pure, and every aggregate such a body depends on (maximum domain length,
// distinct-code table, a materialized right-hand matrix) is computed in a sequential pre-pass and
// captured read-only.
//
// Operator families:
//   - Unary math (abs, sign, trunc, log2, acosh, digamma, ...): Elementwise dispatch over a number
//     or every cell of a frame.
//   - is.na: missing-value predicate over numbers, frames and texts.
//   - Domain registry: nlevels, levels, setLevel, setDomain.
//   - match: level lookup against a literal table with ULP-tolerant numeric comparison.
//   - which: row or column positions of true indicators.
//   - nrow, runif, t, x: row count, uniform random column, transpose and matrix product.
package prim
