// Package gen renders and writes generated Go files.
//
// Generation approach uses text/template + go/format. Backends contribute
// Fragments (imports and declarations); RenderLib merges them into one
// library file.
//
// Writing is all-or-nothing per file: WriteFileAtomic writes a temporary
// file and renames it over the destination.
package gen
