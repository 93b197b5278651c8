package api

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

// SimplePriceResponse maps asset id to currency to price,
// e.g. {"bitcoin": {"usd": 67000.0}}.
type SimplePriceResponse map[string]map[string]float64

// Price returns the quote for an asset in the given currency.
func (r SimplePriceResponse) Price(assetID, currency string) (float64, bool) {
	quotes, ok := r[assetID]
	if !ok {
		return 0, false
	}
	price, ok := quotes[currency]
	return price, ok
}

// SimplePrice fetches current prices for the given asset ids in one request.
// Every failure is returned as a *FetchError.
func (c *Client) SimplePrice(ctx context.Context, ids []string, currency string) (SimplePriceResponse, error) {
	if len(ids) == 0 {
		return nil, &FetchError{Op: "get simple price", Err: errors.New("no asset ids")}
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", currency)

	var resp SimplePriceResponse
	if err := c.get(ctx, "/simple/price", query, &resp); err != nil {
		return nil, &FetchError{Op: "get simple price", Err: err}
	}

	return resp, nil
}
