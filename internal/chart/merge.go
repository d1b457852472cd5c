package chart

import (
	"slices"

	"github.com/temidaradev/ebikline/internal/binance"
)

// PrependHistory returns a new series with the older batch in front of
// existing. Candles of the batch that do not end strictly before the current
// oldest candle are dropped, as are duplicate open times within the batch.
// The returned count is how many candles were added.
func PrependHistory(existing, older []binance.Candle) ([]binance.Candle, int) {
	batch := make([]binance.Candle, 0, len(older))
	for _, c := range older {
		if len(existing) > 0 && c.OpenTime >= existing[0].OpenTime {
			continue
		}
		batch = append(batch, c)
	}
	if len(batch) == 0 {
		return existing, 0
	}

	slices.SortStableFunc(batch, func(a, b binance.Candle) int {
		switch {
		case a.OpenTime < b.OpenTime:
			return -1
		case a.OpenTime > b.OpenTime:
			return 1
		}
		return 0
	})
	batch = slices.CompactFunc(batch, func(a, b binance.Candle) bool {
		return a.OpenTime == b.OpenTime
	})

	merged := make([]binance.Candle, 0, len(batch)+len(existing))
	merged = append(merged, batch...)
	merged = append(merged, existing...)
	return merged, len(batch)
}
