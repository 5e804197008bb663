// Package analyze loads the program that is about to be rewritten.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to produce a
// Program: the root packages of one compilation unit, their syntax trees and
// the semantic information used to resolve identifiers.
//
// Key types:
//   - Program: file set, root packages (dependencies first) and main module
//   - File: one parsed Go file with its owning package
//   - Options: working directory, environment and the in-memory overlay
package analyze
