// Package match finds near misses between configured and observed names.
//
// It backs the "did you mean" hints of diagnostics: a runtime import path
// that no package imports, or a factory the runtime package does not
// export.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the most similar candidate within a distance budget
package match
