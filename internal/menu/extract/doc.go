// Package extract is the menu extraction engine. It turns a document
// subtree into offering candidates using two strategies tried in order: a
// table strategy for classic one-table-per-weekday layouts and a
// modern-structure strategy for heading/tab/class based layouts. When both
// come up empty, closure detection classifies the document as intentionally
// empty or as an extraction failure.
//
// The engine never performs network I/O and never returns an error for an
// empty document; emptiness is a classified outcome, not a failure.
package extract
