// Package snapshot persists search results as self-describing documents.
//
// A snapshot records the lethal combinations found by one search run,
// together with the parameters that produced them. The on-disk format is a
// small header (magic, codec name, compression name) followed by the encoded
// document, so snapshots written with any codec/compression combination can
// be read back without out-of-band knowledge.
//
// Storage backends implement the Store interface. MemoryStore and LocalStore
// live in this package; an S3 backend lives in snapshot/s3.
package snapshot
