// Package schema owns the self-description of strict types.
//
// Ownership boundary:
// - registry of described types keyed by library and type name
// - semantic ids derived from the canonical form of a type tree
// - CBOR and YAML export of type trees
//
// Describing a value is done by strict.Describe; this package only
// stores, identifies and exports the resulting trees.
package schema
