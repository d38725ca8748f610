// Package errors provides implx's structured error type. Every error carries
// a stable ErrorCode so callers and tests can branch on the class of failure
// without matching message text.
package errors
