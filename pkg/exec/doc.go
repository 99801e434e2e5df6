// Package exec is the data-parallel execution framework the operators run on.
//
// Key components:
//   - Executor: applies a per-partition function to aligned chunks of a set of input vecs in
//     parallel (Map) and collects the distinct integer codes of a vec in a sequential scan
//     (CollectDomain).
//   - MapFunc: the per-partition body. It reads the input chunks of one partition and appends the
//     output rows of the same partition. Bodies must not share mutable state: partitions run
//     concurrently and in no particular order.
//   - Metrics: Prometheus counters for passes, partitions, rows and failures.
//
// Output partition i always holds the rows produced from input partition i, so the output vecs of
// a row-preserving body share the layout of the inputs. A Map call is a barrier: it returns after
// every partition finished, and the first failing partition fails the whole pass.
package exec
