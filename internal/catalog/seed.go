package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rickgao/coin-ingest/internal/database"
	"github.com/rickgao/coin-ingest/internal/model"
)

const (
	insertActorSQL = `
		INSERT INTO users (name)
		SELECT $1::text
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE name = $1::text)`

	selectActorSQL = `SELECT id FROM users WHERE name = $1 ORDER BY id LIMIT 1`

	insertAssetSQL = `
		INSERT INTO assets (symbol, name)
		VALUES ($1, $2)
		ON CONFLICT (symbol) DO NOTHING`

	selectAssetsSQL = `SELECT id, symbol FROM assets`
)

// ErrActorNotFound is returned when the demo actor has not been seeded.
var ErrActorNotFound = errors.New("actor not found")

// Seed inserts the demo actor and every catalog asset if absent, in one
// transaction, and returns the stored actor.
func Seed(ctx context.Context, db database.DB, actorName string, c *Catalog) (model.Actor, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return model.Actor{}, fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, insertActorSQL, actorName); err != nil {
		return model.Actor{}, fmt.Errorf("insert actor: %w", err)
	}

	actorID, err := ActorID(ctx, tx, actorName)
	if err != nil {
		return model.Actor{}, err
	}

	for _, e := range c.entries {
		if _, err := tx.Exec(ctx, insertAssetSQL, e.Symbol, e.Name); err != nil {
			return model.Actor{}, fmt.Errorf("insert asset %s: %w", e.Symbol, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Actor{}, fmt.Errorf("commit seed tx: %w", err)
	}
	return model.Actor{ID: actorID, Name: actorName}, nil
}

// ActorID returns the lowest id of the user with the given name.
func ActorID(ctx context.Context, q database.Querier, name string) (int32, error) {
	var id int32
	err := q.QueryRow(ctx, selectActorSQL, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", ErrActorNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("select actor: %w", err)
	}
	return id, nil
}

// AssetIDs returns symbol -> asset id for every stored asset.
func AssetIDs(ctx context.Context, q database.Querier) (map[string]int32, error) {
	rows, err := q.Query(ctx, selectAssetsSQL)
	if err != nil {
		return nil, fmt.Errorf("select assets: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int32)
	for rows.Next() {
		var a model.Asset
		if err := rows.Scan(&a.ID, &a.Symbol); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		ids[a.Symbol] = a.ID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}
	return ids, nil
}
