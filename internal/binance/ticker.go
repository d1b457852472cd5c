package binance

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteAsset is the quote currency the ticker snapshot is filtered to.
const QuoteAsset = "USDT"

// Ticker is one 24h rolling window entry from /api/v3/ticker/24hr.
// Numeric fields are kept as the decimal strings the exchange sends.
type Ticker struct {
	Symbol             string `json:"symbol"`
	PriceChange        string `json:"priceChange"`
	PriceChangePercent string `json:"priceChangePercent"`
	WeightedAvgPrice   string `json:"weightedAvgPrice"`
	PrevClosePrice     string `json:"prevClosePrice"`
	LastPrice          string `json:"lastPrice"`
	LastQty            string `json:"lastQty"`
	BidPrice           string `json:"bidPrice"`
	AskPrice           string `json:"askPrice"`
	OpenPrice          string `json:"openPrice"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
	Volume             string `json:"volume"`
	QuoteVolume        string `json:"quoteVolume"`
	OpenTime           int64  `json:"openTime"`
	CloseTime          int64  `json:"closeTime"`
	Count              int64  `json:"count"`
}

func (t Ticker) ChangePercent() float64 {
	return DecimalOrZero(t.PriceChangePercent)
}

func (t Ticker) Last() float64 {
	return DecimalOrZero(t.LastPrice)
}

func (t Ticker) QuoteVol() float64 {
	return DecimalOrZero(t.QuoteVolume)
}

func (t Ticker) ClosedAt() time.Time {
	return time.UnixMilli(t.CloseTime)
}

// ParseDecimal parses an exchange decimal string.
func ParseDecimal(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	return d.InexactFloat64(), nil
}

// DecimalOrZero parses s and falls back to 0 on any parse failure.
func DecimalOrZero(s string) float64 {
	v, err := ParseDecimal(s)
	if err != nil {
		return 0
	}
	return v
}

func filterQuote(tickers []Ticker, quote string) []Ticker {
	out := make([]Ticker, 0, len(tickers))
	for _, t := range tickers {
		if strings.HasSuffix(t.Symbol, quote) {
			out = append(out, t)
		}
	}
	return out
}
