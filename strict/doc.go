// Package strict owns the strict encoding wire contract and its runtime.
//
// Ownership boundary:
// - primitive codec and type tags
// - confinement of strings and collections
// - struct/tuple/union/enum writer and reader scopes
// - canonical set/map ordering
// - identifiers and restricted character sets
// - self-description of encoded types
package strict
