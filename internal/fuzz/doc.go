// Package fuzztests houses the Go fuzz harness that exercises the panther
// front end (source store -> tokenizer). Its goal is robustness: arbitrary
// input must either tokenize into a well-formed buffer or fail with a
// reported lexical fault, never panic and never produce a buffer that
// violates the token invariants.
package fuzztests
