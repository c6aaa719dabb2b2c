// Package sanitize cleans untrusted user input before it is stored or
// rendered.
//
// Sanitize escapes markup-significant characters and strips control
// characters; StripControl performs the control-character pass alone for
// sinks that never render markup. Both are idempotent and neither is a
// substitute for context-aware output encoding.
package sanitize
