// Package model defines shared data types used across the ingester.
//
// All types mirror the database schema created by database.EnsureSchema.
//
// Conventions:
//   - IDs: int32, matching SERIAL columns
//   - Prices and amounts: float64, stored as NUMERIC
//   - Timestamps: time.Time in UTC, stored as TIMESTAMPTZ
package model
