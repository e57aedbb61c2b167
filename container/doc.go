// Package container owns the persisted file form of strict values.
//
// Ownership boundary:
// - the fixed 128 byte header and its field layout
// - payload checksums and semantic id checks on read
// - size limits applied before a payload is buffered
package container
