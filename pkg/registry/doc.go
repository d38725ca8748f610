// Package registry provides a generic, thread-safe, name-keyed store. It
// backs the master index (one entry per trait) and the table of output
// formatters.
package registry
