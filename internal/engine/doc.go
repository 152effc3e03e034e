// Package engine implements the parallel dispatch-and-assembly core: it
// enumerates the work items of a batch, fans each one out to a bounded pool
// of workers, captures per-item success or failure without letting one item
// abort its siblings, and merges the ordered outcomes back into a batch
// attribute under an explicit merge strategy.
//
// Failures are data. A worker converts both returned errors and panics into
// Failure outcomes; errors only escalate at assembly time, and only as an
// all-or-nothing aggregate carrying every failing position. A pipeline step
// therefore either fully updates its target attribute or leaves it
// untouched with a complete failure report.
package engine
