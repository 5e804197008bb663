// Package editor implements deferred, composable replacement of go/ast nodes.
//
// An Editor maps original nodes (by identity) to producers of their
// replacements. Nothing is mutated in place: emission walks the original
// tree, copies only the nodes on a path to a replacement and shares every
// untouched subtree with the original.
//
// A producer may return several nodes. This is how a single top-level
// declaration is replaced by a group of declarations.
package editor
