package ingest

// Action is what the driver does after a cycle.
type Action int

const (
	// Continue waits for the next interval.
	Continue Action = iota
	// Stop ends the loop cleanly.
	Stop
	// Abort ends the loop with an error.
	Abort
)

// RetryPolicy decides whether the loop keeps going after a cycle.
type RetryPolicy struct {
	// MaxConsecutiveFailures aborts after this many Skipped or Failed cycles
	// in a row. Zero retries forever.
	MaxConsecutiveFailures int
}

// Decide maps an outcome and the current run of consecutive failures
// (including this cycle) to an Action.
func (p RetryPolicy) Decide(o Outcome, consecutiveFailures int) Action {
	switch o {
	case Aborted:
		return Stop
	case Skipped, Failed:
		if p.MaxConsecutiveFailures > 0 && consecutiveFailures >= p.MaxConsecutiveFailures {
			return Abort
		}
		return Continue
	default:
		return Continue
	}
}
