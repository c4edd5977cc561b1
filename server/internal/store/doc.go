// Package store holds the launch dataset. The Store is built once at startup
// from a CSV source and is never mutated afterwards, so any number of request
// goroutines may read from it without locking.
//
// Load(path) and Read(r) parse the CSV; a missing required column or any
// malformed row is an error and the caller is expected to abort startup.
package store
