// Package text defines the storage capability the query tree is generic over.
//
// Every text-bearing field in the tree (identifiers, string literals, enum
// symbols) uses the tree's single type parameter, so a document is either
// fully borrowing or fully owned — mixing the two is unrepresentable.
package text

import "strings"

// Value is one piece of source text carried by an AST node. The two
// instantiations are Borrowed (a view into the source buffer) and Owned
// (an independent copy). Equality and ordering are the underlying string's.
type Value interface {
	~string
}

// Borrowed is a substring of the original source. It shares the source
// buffer's backing array, so building a tree of Borrowed values allocates
// nothing — at the cost of keeping the whole buffer reachable for as long
// as any node holds a view into it.
type Borrowed string

// Owned is an independently allocated copy of a piece of source text,
// valid regardless of what happens to the buffer it was read from.
type Owned string

// Own copies s into storage independent of any source buffer.
func Own[T Value](s T) Owned {
	return Owned(strings.Clone(string(s)))
}

// String returns the plain view used for comparison and serialization.
func String[T Value](v T) string { return string(v) }

// Compare orders two values lexicographically by their text.
func Compare[T Value](a, b T) int {
	return strings.Compare(string(a), string(b))
}
