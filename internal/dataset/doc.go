// Package dataset implements the indexed batch store: an ordered index of
// item identifiers plus a small closed set of attribute columns addressable
// by identifier or by position.
//
// Columns come in two container kinds. A rows column holds one value per
// item, positionally aligned with the index. A stacked column holds one
// composite array whose leading axis is the item position. Every column's
// length must equal the index length; the store refuses assignments that
// would break that invariant.
//
// During a parallel pipeline step the store is read-only: workers read
// per-item inputs enumerated out of columns, and the single-threaded
// assembly step writes one new column back when every item has finished.
package dataset
