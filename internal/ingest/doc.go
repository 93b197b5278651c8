// Package ingest implements the fetch-transform-persist loop.
//
// A Cycle fetches prices for the catalog, resolves stored asset ids and appends
// one observation per asset in a single transaction. It never panics or
// returns an error; it reports a Result whose Outcome the Driver interprets:
//
//   - Ingested: rows committed (possibly zero)
//   - Skipped:  price fetch failed, nothing written
//   - Failed:   persistence failed, transaction rolled back
//   - Aborted:  context canceled
//
// The Driver runs one cycle immediately and then one per interval until its
// context is canceled or the RetryPolicy gives up.
package ingest
