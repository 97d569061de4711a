// Package notification holds the per-recipient notification record produced by the
// post-commit notification hook.
package notification
