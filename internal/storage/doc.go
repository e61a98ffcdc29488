// Package storage persists the shown-entry history.
//
// It records which vocabulary entries were delivered and why (interval,
// signal, force). Writes are best-effort: a storage failure is logged by
// the caller and never reaches the rotation loop. The rotation cursor is
// deliberately not persisted; every run starts at the top of the sequence.
package storage
