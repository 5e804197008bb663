// Package backend provides plan.Backend implementations.
//
// Exec runs an external compiler command per task kind. The request is
// written to the command's stdin as JSON and the generated fragment is read
// from its stdout as JSON.
package backend
