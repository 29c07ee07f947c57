// Package memstore provides an in-memory implementation of the store
// interfaces defined in internal/store. All records live in a single map
// guarded by a read/write mutex and are discarded when the process exits;
// there is no persistence.
package memstore
