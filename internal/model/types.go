package model

import "time"

// -----------------------------------------------------------------------------
// Reference Types
// -----------------------------------------------------------------------------

// Actor is the user observations are recorded for (users table).
type Actor struct {
	ID   int32  // Primary key
	Name string // Display name
}

// Asset is a tracked crypto asset (assets table).
type Asset struct {
	ID     int32  // Primary key
	Symbol string // Unique ticker symbol (e.g., "BTC")
	Name   string // Display name
}

// CatalogEntry ties a price API id to the asset stored under Symbol.
type CatalogEntry struct {
	SourceID string // Price API id (e.g., "bitcoin")
	Symbol   string
	Name     string
}

// -----------------------------------------------------------------------------
// Time-Series Types
// -----------------------------------------------------------------------------

// Observation is one price record for an asset at a point in time
// (transactions hypertable). Append-only.
type Observation struct {
	ActorID int32     // Foreign key to users
	AssetID int32     // Foreign key to assets
	Amount  float64   // Quantity held
	Price   float64   // Unit price in the quote currency
	TS      time.Time // Observation time (UTC)
}

// Value returns Amount * Price.
func (o Observation) Value() float64 {
	return o.Amount * o.Price
}
