// Package token defines the lexical token model for the Panther compiler.
// Invariants:
//   - Token records are fixed-size; string payloads live out-of-line in the
//     owning Buffer so buffer growth never invalidates a Token.
//   - Locations use 1-based line and byte-column counters; the end column is
//     inclusive.
//   - Which payload a token carries is determined by its Kind (BoolLit, IntLit,
//     FloatLit, StringLit); payload accessors panic on a kind mismatch.
//   - A Buffer is append-only until Lock(); any append afterwards panics.
//   - IDs are dense indices into the owning Buffer and stay valid for the
//     Buffer's lifetime.
package token
