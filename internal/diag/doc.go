// Package diag defines the diagnostic model shared by the whole front end.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     file loading and tokenization.
//   - Render diagnostics to a terminal with source excerpts, without coupling
//     producers to any particular output destination.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – Info, Warning, Error, or Fatal (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – human oriented text; keep it short and actionable.
//   - Location – optional source.Location; nil when the finding has no
//     position (a nonexistent file path, a session-wide condition).
//   - Infos – optional secondary messages with locations of their own.
//
// Infos should add new context ("declared here") rather than repeating the
// diagnostic message.
//
// # Emission
//
// The session owns a single diag.Callback and invokes it under a lock the
// moment a diagnostic is created, so diagnostics stream out in emission order
// even when worker threads produce them concurrently. Nothing in the core
// accumulates diagnostics; Bag exists for batch CLI paths and tests.
//
// # Rendering
//
// DefaultCallback(printer) produces the standard terminal form:
//
//	<Error|LEX2001> unknown character '§'
//	        main.pthr:3:6
//	        3 | x := §
//	          |      ^
//
// RenderLocation strips the quoted line's leading whitespace and pulls the
// underline column left by the same amount. Multi-line spans render only
// their first physical line, a caret at the start column and tildes to the
// end of the visible text. Printer styles degrade to plain text when colors
// are disabled, keeping output byte-stable for pipes and tests.
package diag
