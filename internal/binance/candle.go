package binance

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// klineFields is the number of positional fields in a kline row.
const klineFields = 12

// Candle is one kline as returned by /api/v3/klines.
type Candle struct {
	OpenTime                 int64
	Open                     float64
	High                     float64
	Low                      float64
	Close                    float64
	Volume                   float64
	CloseTime                int64
	QuoteAssetVolume         float64
	NumberOfTrades           int64
	TakerBuyBaseAssetVolume  float64
	TakerBuyQuoteAssetVolume float64
	Ignore                   string
}

func (c Candle) OpenAt() time.Time {
	return time.UnixMilli(c.OpenTime)
}

// Mid is the midpoint of the candle's high-low span.
func (c Candle) Mid() float64 {
	return (c.High + c.Low) / 2
}

// Bullish reports whether the candle closed above its open.
func (c Candle) Bullish() bool {
	return c.Close > c.Open
}

// parseKlines converts the raw wire rows into candles.
//
// Row layout:
//
//	[0]  open time        (number, unix ms)
//	[1]  open             (string)
//	[2]  high             (string)
//	[3]  low              (string)
//	[4]  close            (string)
//	[5]  volume           (string)
//	[6]  close time       (number, unix ms)
//	[7]  quote volume     (string)
//	[8]  trade count      (number)
//	[9]  taker buy base   (string)
//	[10] taker buy quote  (string)
//	[11] ignore           (string)
func parseKlines(raw [][]json.RawMessage) ([]Candle, error) {
	out := make([]Candle, 0, len(raw))
	for i, r := range raw {
		c, err := parseKline(r)
		if err != nil {
			return nil, fmt.Errorf("kline[%d]: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func parseKline(r []json.RawMessage) (Candle, error) {
	if len(r) < klineFields {
		return Candle{}, fmt.Errorf("%w: row has %d fields, want %d", ErrDecode, len(r), klineFields)
	}

	p := rowParser{row: r}
	c := Candle{
		OpenTime:                 p.integer(0, "open_time"),
		Open:                     p.number(1, "open"),
		High:                     p.number(2, "high"),
		Low:                      p.number(3, "low"),
		Close:                    p.number(4, "close"),
		Volume:                   p.number(5, "volume"),
		CloseTime:                p.integer(6, "close_time"),
		QuoteAssetVolume:         p.number(7, "quote_volume"),
		NumberOfTrades:           p.integer(8, "trades"),
		TakerBuyBaseAssetVolume:  p.number(9, "taker_buy_base"),
		TakerBuyQuoteAssetVolume: p.number(10, "taker_buy_quote"),
		Ignore:                   unquote(r[11]),
	}
	if p.err != nil {
		return Candle{}, p.err
	}
	return c, nil
}

// rowParser keeps the first field error so a row is parsed in one expression.
type rowParser struct {
	row []json.RawMessage
	err error
}

func (p *rowParser) number(idx int, name string) float64 {
	if p.err != nil {
		return 0
	}
	s := unquote(p.row[idx])
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = fmt.Errorf("%w: %s: %w: %q", ErrDecode, name, ErrParse, s)
		return 0
	}
	return v
}

func (p *rowParser) integer(idx int, name string) int64 {
	if p.err != nil {
		return 0
	}
	s := unquote(p.row[idx])
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		p.err = fmt.Errorf("%w: %s: %w: %q", ErrDecode, name, ErrParse, s)
		return 0
	}
	return v
}

// unquote strips surrounding quotes from a JSON scalar token.
func unquote(raw json.RawMessage) string {
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}
