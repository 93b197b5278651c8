// Package database manages the TimescaleDB connection and schema.
//
// The ingester is the only writer, so it holds a single long-lived connection
// (a pool capped at one connection) with TCP keepalives for long runs.
//
// Tables:
//   - users, assets: relational reference data
//   - transactions: observation hypertable partitioned on ts
package database
