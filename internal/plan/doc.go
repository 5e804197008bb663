// Package plan aggregates compile tasks and turns them into the single
// generation step of the library package.
//
// Pipeline:
//  1. The transformer records one CompileTask per rewritten factory call
//     with a Lib, in discovery order.
//  2. Once every file is transformed, Lib.Finalize freezes the tasks into a
//     Plan: per-kind bindings of generated functions to hoisted models.
//  3. Plan.Emit runs the backend once per non-empty kind, concurrently, and
//     writes one library file. Either every backend succeeds and the file is
//     written, or nothing is written.
package plan
