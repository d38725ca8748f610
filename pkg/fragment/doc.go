// Package fragment holds the producer side of implementor registration.
//
// A Fragment carries every implementor of one trait. Running it hands that
// data to a handoff.Handoff exactly once. Fragments are produced by the
// documentation build and stored as files, one per trait, in any of these
// formats:
//
//	.json  .yaml/.yml  .toml   {trait, implementors: {library: [entry, ...]}}
//	.js                        rustdoc's implementors script
//
// For the script format, and for documents that omit "trait", the trait
// path comes from the file's location: implementors/core/ops/trait.BitXor.js
// becomes core::ops::BitXor.
package fragment
