package ingest

import (
	"time"

	"github.com/google/uuid"
)

// Outcome classifies a finished cycle.
type Outcome int

const (
	// Ingested means the cycle committed its rows, possibly zero.
	Ingested Outcome = iota
	// Skipped means the price fetch failed and the store was not touched.
	Skipped
	// Failed means persisting failed and the transaction was rolled back.
	Failed
	// Aborted means the context was canceled during the cycle.
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case Ingested:
		return "ingested"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result describes one cycle.
type Result struct {
	CycleID uuid.UUID
	Outcome Outcome
	Rows    int64     // Rows committed
	TS      time.Time // Observation timestamp; zero if the fetch failed
	Err     error
}
