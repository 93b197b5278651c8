// Package api provides the price API client.
//
// Endpoints (CoinGecko v3):
//   - Public: https://api.coingecko.com/api/v3
//   - Pro:    https://pro-api.coingecko.com/api/v3
//
// Only /simple/price is used: one GET per poll cycle returning
// {"<asset id>": {"<currency>": <price>}}.
package api
