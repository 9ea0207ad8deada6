// Package casedata models the semi-structured content of YAML case files.
//
// Case files are user-authored and carry arbitrary keys next to a handful of
// reserved ones, so they are not decoded into fixed structs. Instead every
// mapping becomes a *Map, an insertion-ordered string-keyed map, and every
// other node becomes a plain Go value (nil, bool, int, float64, string or
// []any). Key order survives a load/save round trip, which keeps rendered
// output and diffs stable.
//
// Decoding goes through the yaml.v3 node API so that the full YAML feature
// set is honoured: anchors and aliases, "<<" merge keys and block scalars.
package casedata
