// Package content holds the subject-independent mechanics of the lesson
// pipeline: regex extraction of fields and items from Lua source, keyword
// difficulty scoring, marker-based injection with whole-function
// replacement, and the coarse balance check run over injected output.
//
// Everything here is syntactic. Nested braces, escaped quotes, or items that
// straddle braces will under- or over-match; inputs are LLM-generated Lua,
// not adversarial text.
package content
