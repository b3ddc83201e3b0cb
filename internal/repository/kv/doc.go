// Package kv provides the key/value store behind persisted settings.
//
// Values are opaque byte slices (JSON documents in practice). FileStore keeps
// every key in one JSON object on disk; SQLiteStore keeps one row per key.
// Both rewrite a key on every Put, so persistence is best effort and last
// write wins.
package kv
