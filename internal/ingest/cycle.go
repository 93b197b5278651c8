package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/coin-ingest/internal/api"
	"github.com/rickgao/coin-ingest/internal/catalog"
	"github.com/rickgao/coin-ingest/internal/database"
	"github.com/rickgao/coin-ingest/internal/model"
	"github.com/rickgao/coin-ingest/internal/writer"
)

// PriceSource fetches current prices. *api.Client satisfies it.
type PriceSource interface {
	SimplePrice(ctx context.Context, ids []string, currency string) (api.SimplePriceResponse, error)
}

// Cycle runs one fetch-transform-persist pass.
type Cycle struct {
	cfg     Config
	db      database.DB
	prices  PriceSource
	catalog *catalog.Catalog
	writer  *writer.ObservationWriter
	actorID int32
	logger  *slog.Logger

	now func() time.Time
}

// NewCycle creates a new Cycle recording observations for actorID.
func NewCycle(cfg Config, db database.DB, prices PriceSource, cat *catalog.Catalog, actorID int32, logger *slog.Logger) *Cycle {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cycle{
		cfg:     cfg,
		db:      db,
		prices:  prices,
		catalog: cat,
		writer:  writer.NewObservationWriter(logger),
		actorID: actorID,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes the cycle and reports what happened.
func (c *Cycle) Run(ctx context.Context) Result {
	res := Result{CycleID: uuid.New()}
	logger := c.logger.With("cycle_id", res.CycleID)

	quotes, err := c.prices.SimplePrice(ctx, c.catalog.SourceIDs(), c.cfg.Currency)
	if err != nil {
		return c.fail(ctx, logger, res, err)
	}

	res.TS = c.now().UTC()

	if len(quotes) == 0 {
		logger.Info("no prices returned", "ts", res.TS)
		res.Outcome = Ingested
		return res
	}

	n, err := c.persist(ctx, quotes, res.TS)
	if err != nil {
		return c.fail(ctx, logger, res, err)
	}

	res.Outcome = Ingested
	res.Rows = n
	logger.Info("inserted rows",
		"rows", n,
		"ts", res.TS.Format(time.RFC3339Nano),
	)
	return res
}

// persist resolves asset ids and appends the rows in one transaction. The
// deferred rollback undoes everything unless Commit succeeded.
func (c *Cycle) persist(ctx context.Context, quotes api.SimplePriceResponse, ts time.Time) (int64, error) {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin ingest tx: %w", err)
	}
	defer tx.Rollback(ctx)

	assetIDs, err := catalog.AssetIDs(ctx, tx)
	if err != nil {
		return 0, err
	}

	rows, err := c.buildRows(quotes, assetIDs, ts)
	if err != nil {
		return 0, err
	}

	n, err := c.writer.Insert(ctx, tx, rows)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit ingest tx: %w", err)
	}
	return n, nil
}

// buildRows turns a price response into observations in catalog order.
func (c *Cycle) buildRows(quotes api.SimplePriceResponse, assetIDs map[string]int32, ts time.Time) ([]model.Observation, error) {
	for id := range quotes {
		if _, ok := c.catalog.Lookup(id); !ok {
			return nil, fmt.Errorf("price for untracked asset %q", id)
		}
	}

	rows := make([]model.Observation, 0, len(quotes))
	for _, e := range c.catalog.Entries() {
		if _, ok := quotes[e.SourceID]; !ok {
			continue
		}
		price, ok := quotes.Price(e.SourceID, c.cfg.Currency)
		if !ok {
			return nil, fmt.Errorf("no %s quote for %s", c.cfg.Currency, e.SourceID)
		}

		assetID, ok := assetIDs[e.Symbol]
		if !ok {
			return nil, fmt.Errorf("asset %s not seeded", e.Symbol)
		}

		rows = append(rows, model.Observation{
			ActorID: c.actorID,
			AssetID: assetID,
			Amount:  c.cfg.DefaultAmount,
			Price:   price,
			TS:      ts,
		})
	}
	return rows, nil
}

// fail classifies err into an outcome and logs it.
func (c *Cycle) fail(ctx context.Context, logger *slog.Logger, res Result, err error) Result {
	res.Err = err
	switch {
	case ctx.Err() != nil:
		res.Outcome = Aborted
		logger.Info("cycle aborted", "error", err)
	case api.IsFetchError(err):
		res.Outcome = Skipped
		logger.Warn("price fetch failed, skipping cycle", "error", err)
	default:
		res.Outcome = Failed
		logger.Error("ingest failed, rolled back cycle", "error", err)
	}
	return res
}
