package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultBaseURL = "https://api.binance.com"
	// MaxCandleLimit is the largest page the klines endpoint serves.
	MaxCandleLimit = 1000

	klinesPath  = "/api/v3/klines"
	tickersPath = "/api/v3/ticker/24hr"
)

// Client is a read-only client for the exchange's public market data endpoints.
// It does not retry, cache or rate limit.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		userAgent:  "ebikline/1.0",
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// KlineQuery selects a batch of candles. Zero StartTime/EndTime are omitted.
type KlineQuery struct {
	Symbol    string
	Interval  Interval
	Limit     int
	StartTime int64
	EndTime   int64
}

func (q KlineQuery) values() url.Values {
	limit := q.Limit
	if limit <= 0 || limit > MaxCandleLimit {
		limit = MaxCandleLimit
	}

	v := url.Values{}
	v.Set("symbol", q.Symbol)
	v.Set("interval", q.Interval.String())
	v.Set("limit", strconv.Itoa(limit))
	if q.StartTime > 0 {
		v.Set("startTime", strconv.FormatInt(q.StartTime, 10))
	}
	if q.EndTime > 0 {
		v.Set("endTime", strconv.FormatInt(q.EndTime, 10))
	}
	return v
}

// FetchCandles returns candles in ascending open time.
func (c *Client) FetchCandles(ctx context.Context, q KlineQuery) ([]Candle, error) {
	body, err := c.get(ctx, klinesPath, q.values())
	if err != nil {
		return nil, fmt.Errorf("klines [%s %s]: %w", q.Symbol, q.Interval, err)
	}

	var raw [][]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("klines [%s %s]: %w: %v", q.Symbol, q.Interval, ErrDecode, err)
	}

	candles, err := parseKlines(raw)
	if err != nil {
		return nil, fmt.Errorf("klines [%s %s]: %w", q.Symbol, q.Interval, err)
	}

	c.logger.DebugContext(ctx, "fetched klines",
		"symbol", q.Symbol,
		"interval", q.Interval.String(),
		"end_time", q.EndTime,
		"count", len(candles),
	)
	return candles, nil
}

// FetchTickers returns the 24h snapshot restricted to USDT quoted symbols.
func (c *Client) FetchTickers(ctx context.Context) ([]Ticker, error) {
	body, err := c.get(ctx, tickersPath, nil)
	if err != nil {
		return nil, fmt.Errorf("tickers: %w", err)
	}

	var tickers []Ticker
	if err := json.Unmarshal(body, &tickers); err != nil {
		return nil, fmt.Errorf("tickers: %w: %v", ErrDecode, err)
	}

	out := filterQuote(tickers, QuoteAsset)
	c.logger.DebugContext(ctx, "fetched tickers", "total", len(tickers), "kept", len(out))
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %s - %s", ErrNetwork, resp.Status, string(excerpt))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: body read: %v", ErrNetwork, err)
	}
	return body, nil
}
