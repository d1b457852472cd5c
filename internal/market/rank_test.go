package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temidaradev/ebikline/internal/binance"
)

var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func ticker(symbol, change, last, quoteVolume string) binance.Ticker {
	return binance.Ticker{
		Symbol:             symbol,
		PriceChangePercent: change,
		LastPrice:          last,
		QuoteVolume:        quoteVolume,
		OpenTime:           testNow.Add(-24 * time.Hour).UnixMilli(),
		CloseTime:          testNow.Add(-time.Minute).UnixMilli(),
	}
}

func createTestTickers() []binance.Ticker {
	stale := ticker("OLDUSDT", "50", "1", "999999999")
	stale.CloseTime = testNow.Add(-72 * time.Hour).UnixMilli()

	return []binance.Ticker{
		ticker("ETHUSDT", "2.5", "3500.1", "900000000"),
		ticker("BTCUSDT", "-1.2", "67000", "2000000000"),
		ticker("SOLUSDT", "7.75", "150", "300000000"),
		ticker("XRPUSDT", "-4.0", "0.6", "100000000"),
		ticker("ABUSDT", "0", "ab", "n/a"),
		stale,
	}
}

func symbols(tickers []binance.Ticker) []string {
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, t.Symbol)
	}
	return out
}

func TestRank(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		query    string
		want     []string
	}{
		{name: "all by symbol", category: All, want: []string{"ABUSDT", "BTCUSDT", "ETHUSDT", "SOLUSDT", "XRPUSDT"}},
		{name: "gainers descending", category: Gainers, want: []string{"SOLUSDT", "ETHUSDT"}},
		{name: "losers most negative first", category: Losers, want: []string{"XRPUSDT", "BTCUSDT"}},
		{name: "volume descending", category: Volume, want: []string{"BTCUSDT", "ETHUSDT", "SOLUSDT", "XRPUSDT", "ABUSDT"}},
		{name: "search lower case", category: All, query: "eth", want: []string{"ETHUSDT"}},
		{name: "search within category", category: Volume, query: " usdt ", want: []string{"BTCUSDT", "ETHUSDT", "SOLUSDT", "XRPUSDT", "ABUSDT"}},
		{name: "search without match", category: Gainers, query: "BTC", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(createTestTickers(), tt.category, tt.query, testNow)
			assert.Equal(t, tt.want, symbols(got))
		})
	}
}

func TestRankProperties(t *testing.T) {
	tickers := createTestTickers()

	byVolume := Rank(tickers, Volume, "", testNow)
	for i := 1; i < len(byVolume); i++ {
		assert.GreaterOrEqual(t, byVolume[i-1].QuoteVol(), byVolume[i].QuoteVol())
	}

	for _, g := range Rank(tickers, Gainers, "", testNow) {
		assert.Greater(t, g.ChangePercent(), 0.0)
	}
	for _, l := range Rank(tickers, Losers, "", testNow) {
		assert.Less(t, l.ChangePercent(), 0.0)
	}
}

func TestRankDropsStaleTickers(t *testing.T) {
	for _, c := range Categories() {
		assert.NotContains(t, symbols(Rank(createTestTickers(), c, "", testNow)), "OLDUSDT", c.String())
	}
}

func TestRankStaleCutoffBoundary(t *testing.T) {
	edge := createTestTickers()[0]
	edge.CloseTime = testNow.Add(-StaleAfter).UnixMilli()
	past := edge
	past.Symbol = "PASTUSDT"
	past.CloseTime--

	got := symbols(Rank([]binance.Ticker{edge, past}, All, "", testNow))
	assert.Equal(t, []string{edge.Symbol}, got)
}

func TestRankUnparseableFieldsCountAsZero(t *testing.T) {
	got := Rank([]binance.Ticker{ticker("ABUSDT", "x", "ab", "")}, All, "", testNow)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Last())
	assert.Equal(t, 0.0, got[0].ChangePercent())
	assert.Equal(t, 0.0, got[0].QuoteVol())
}

func TestRankDoesNotModifyInput(t *testing.T) {
	tickers := createTestTickers()
	before := symbols(tickers)
	Rank(tickers, Volume, "sol", testNow)
	assert.Equal(t, before, symbols(tickers))
}

func TestSymbolFromQuery(t *testing.T) {
	tests := map[string]string{
		"btc":      "BTCUSDT",
		" ethusdt": "ETHUSDT",
		"SOLUSDT":  "SOLUSDT",
		"":         "",
		"   ":      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SymbolFromQuery(in), in)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseCategory("gainers")
	require.NoError(t, err)
	assert.Equal(t, Gainers, got)

	_, err = ParseCategory("top")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
