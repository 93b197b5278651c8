// Package catalog owns the reference data: the demo actor and the tracked
// asset catalog.
//
// Seeding is idempotent. The actor is inserted only when no user with its name
// exists; assets are upserted on the unique symbol index.
package catalog
