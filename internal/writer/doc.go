// Package writer appends observations to the transactions hypertable.
//
// Writes are append-only: one multi-row INSERT per cycle, never an UPDATE or
// DELETE. The caller owns the transaction so a failed cycle can be rolled back
// as a unit.
package writer
