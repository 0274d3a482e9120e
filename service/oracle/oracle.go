package oracle

import (
	"context"
	"fmt"
	"time"

	"sblend/core"

	"github.com/bluele/gcache"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	tickerCacheSize = 64
	tickerCacheTTL  = 5 * time.Second
)

type service struct {
	client *resty.Client
	cache  gcache.Cache
}

// New new price oracle service backed by the configured endpoint. Replies
// are cached briefly so workers polling within one block share a single
// upstream call.
func New(cfg *core.Config) core.IPriceOracleService {
	return &service{
		client: resty.New().
			SetBaseURL(cfg.Oracle.EndPoint).
			SetTimeout(10 * time.Second),
		cache: gcache.New(tickerCacheSize).LRU().Build(),
	}
}

type tickerResponse struct {
	Provider string          `json:"provider"`
	Symbol   string          `json:"symbol"`
	Price    decimal.Decimal `json:"price"`
	Time     int64           `json:"time"`
}

func (s *service) PullPriceTicker(ctx context.Context, symbol string, t time.Time) (*core.PriceTicker, error) {
	if v, err := s.cache.Get(symbol); err == nil {
		if ticker, ok := v.(*core.PriceTicker); ok {
			return ticker, nil
		}
	}

	var body tickerResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("symbol", symbol).
		SetResult(&body).
		Get("/prices/ticker")
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("oracle: ticker request failed with status %d", resp.StatusCode())
	}

	if body.Price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("oracle: invalid price %s for %s", body.Price, symbol)
	}

	ticker := &core.PriceTicker{
		Provider: body.Provider,
		Symbol:   body.Symbol,
		Price:    body.Price,
		Time:     time.Unix(body.Time, 0),
	}
	_ = s.cache.SetWithExpire(symbol, ticker, tickerCacheTTL)

	return ticker, nil
}
