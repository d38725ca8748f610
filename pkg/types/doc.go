// Package types holds the data shapes shared by every implx package:
// trait paths, implementor entries, the per-library buckets a fragment
// delivers and the filesystem interface fragment loading reads through.
package types
