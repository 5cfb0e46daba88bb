// Package token provides the token stream primitives the correction
// engine manipulates: immutable token records, contiguous-run presence
// testing, run splicing, and rendered-offset computation.
//
// Streams are value slices; every edit produces a new stream rather
// than mutating in place, so callers may hold old streams safely.
package token
