// Package transform rewrites calls to the serializer factories of the
// runtime package.
//
// For every recognized call the transformer:
//   - hoists the model argument into an exported package-level variable
//     placed right before the enclosing top-level declaration
//   - replaces the call with a reference to a function of the generated
//     library package, imported under a fresh alias
//   - records a compile task with the plan.Tasks it was given
//
// Calls are recognized by resolved symbol identity, so renamed imports and
// package-level re-exports (var F = churi.CreateUcSerializer) are handled.
package transform
