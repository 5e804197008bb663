// Package diagnostic provides structured warnings and notes produced while
// rewriting factory calls.
//
// Diagnostics never fail a rewrite. They flag call sites that were rewritten
// with a loss of information (extra factory arguments) or that were
// recognized but left untouched.
package diagnostic
