// Package sensor implements the reading store and the ingestion pipeline.
//
// The pipeline enforces one ordering invariant: persist before publish.
// A reading or actuator change is durably written to SQLite before any
// subscriber hears about it, so every broadcast event refers to a row that
// is already queryable. Broadcast delivery itself is best-effort; a slow
// or dead subscriber can neither block nor fail a write.
package sensor
