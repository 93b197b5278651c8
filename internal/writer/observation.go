package writer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rickgao/coin-ingest/internal/database"
	"github.com/rickgao/coin-ingest/internal/model"
)

const (
	insertPrefix   = "INSERT INTO transactions (user_id, asset_id, amount, price_usd, ts) VALUES "
	columnsPerRow  = 5
	maxRowsPerStmt = 65535 / columnsPerRow // Postgres bind parameter limit
)

// WriterMetrics tracks writer performance.
type WriterMetrics struct {
	Inserts int64 // Rows written
	Errors  int64 // Failed statements
	Flushes int64 // Successful statements
}

// ObservationWriter builds and executes the batch insert for one cycle.
type ObservationWriter struct {
	logger *slog.Logger

	mu      sync.Mutex
	metrics WriterMetrics
}

// NewObservationWriter creates a new ObservationWriter.
func NewObservationWriter(logger *slog.Logger) *ObservationWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ObservationWriter{logger: logger}
}

// Insert appends rows with a single multi-row INSERT on q, usually a pgx.Tx.
// It returns the number of rows written.
func (w *ObservationWriter) Insert(ctx context.Context, q database.Querier, rows []model.Observation) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(rows) > maxRowsPerStmt {
		return 0, fmt.Errorf("batch of %d rows exceeds %d", len(rows), maxRowsPerStmt)
	}

	start := time.Now()
	sql, args := BuildInsert(rows)

	ct, err := q.Exec(ctx, sql, args...)
	if err != nil {
		w.mu.Lock()
		w.metrics.Errors++
		w.mu.Unlock()
		return 0, fmt.Errorf("insert observations: %w", err)
	}

	n := ct.RowsAffected()
	w.mu.Lock()
	w.metrics.Inserts += n
	w.metrics.Flushes++
	w.mu.Unlock()

	w.logger.Debug("inserted observations",
		"count", n,
		"duration", time.Since(start),
	)
	return n, nil
}

// Stats returns current metrics.
func (w *ObservationWriter) Stats() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// BuildInsert renders the multi-row INSERT statement and its arguments.
func BuildInsert(rows []model.Observation) (string, []any) {
	var sb strings.Builder
	sb.Grow(len(insertPrefix) + len(rows)*32)
	sb.WriteString(insertPrefix)

	args := make([]any, 0, len(rows)*columnsPerRow)
	for i, r := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * columnsPerRow
		sb.WriteByte('(')
		for c := 1; c <= columnsPerRow; c++ {
			if c > 1 {
				sb.WriteString(", ")
			}
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(base + c))
		}
		sb.WriteByte(')')

		args = append(args, r.ActorID, r.AssetID, r.Amount, r.Price, r.TS)
	}

	return sb.String(), args
}
