package basket

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// PriceFeed fetches USD spot prices for assets from a JSON HTTP endpoint.
// The response shape varies across providers, so the price is extracted with
// a configurable jsonpath instead of a fixed struct.
type PriceFeed struct {
	// Client defaults to a daily-cached HTTP client.
	Client *http.Client
	// BaseURL is queried as BaseURL?asset=<id>.
	BaseURL string
	// Path locates the USD price in the response; default "$.data[0].usd".
	Path string
}

const defaultPricePath = "$.data[0].usd"

// Spot returns the current USD price of one whole token of asset.
func (f *PriceFeed) Spot(asset AssetID) (decimal.Decimal, error) {
	client := f.Client
	if client == nil {
		client = daily()
	}
	path := f.Path
	if path == "" {
		path = defaultPricePath
	}
	addr := f.BaseURL + "?asset=" + url.QueryEscape(string(asset))

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return decimal.Zero, fmt.Errorf("error in wget %q: %w", asset, err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing %q: %q %w", asset, path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer or
	// a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		// some providers return the value as a string
		sval, ok := jval.(string)
		if !ok {
			return decimal.Zero, fmt.Errorf("cannot read price of %q: neither a float nor a string: %v", asset, jval)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return decimal.Zero, fmt.Errorf("cannot read price of %q: invalid string %q: %w", asset, sval, err)
		}
	}
	if val == 0 {
		return decimal.Zero, fmt.Errorf("empty quote for %q: no value to return", asset)
	}
	return decimal.NewFromFloat(val), nil
}

// Refresh fetches spot prices for all given assets, returning the quotes it
// could obtain alongside the joined errors for those it could not.
func (f *PriceFeed) Refresh(assets []AssetID) (map[AssetID]decimal.Decimal, error) {
	prices := make(map[AssetID]decimal.Decimal, len(assets))
	var errs error
	for _, asset := range assets {
		price, err := f.Spot(asset)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("could not get quote for %q: %w", asset, err))
			continue
		}
		prices[asset] = price
	}
	return prices, errs
}
