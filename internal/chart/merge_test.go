package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temidaradev/ebikline/internal/binance"
)

func TestPrependHistory(t *testing.T) {
	existing := createTestCandles(5, 1_000_000)

	tests := []struct {
		name      string
		existing  []binance.Candle
		older     []binance.Candle
		wantAdded int
		wantFirst int64
	}{
		{
			name:      "disjoint batch",
			existing:  existing,
			older:     createTestCandles(3, 1_000_000-180000),
			wantAdded: 3,
			wantFirst: 1_000_000 - 180000,
		},
		{
			name:      "batch overlapping the oldest candle",
			existing:  existing,
			older:     createTestCandles(5, 1_000_000-180000),
			wantAdded: 3,
			wantFirst: 1_000_000 - 180000,
		},
		{
			name:      "unordered batch with duplicates",
			existing:  existing,
			older:     []binance.Candle{{OpenTime: 880000}, {OpenTime: 940000}, {OpenTime: 880000}, {OpenTime: 820000}},
			wantAdded: 3,
			wantFirst: 820000,
		},
		{
			name:      "empty batch",
			existing:  existing,
			older:     nil,
			wantAdded: 0,
			wantFirst: 1_000_000,
		},
		{
			name:      "nothing loaded yet",
			existing:  nil,
			older:     createTestCandles(2, 0),
			wantAdded: 2,
			wantFirst: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, added := PrependHistory(tt.existing, tt.older)
			assert.Equal(t, tt.wantAdded, added)
			require.Len(t, merged, len(tt.existing)+tt.wantAdded)
			assert.Equal(t, tt.wantFirst, merged[0].OpenTime)
			assertStrictlyIncreasing(t, merged)

			seen := map[int64]bool{}
			for _, c := range merged {
				assert.False(t, seen[c.OpenTime], "duplicate open time %d", c.OpenTime)
				seen[c.OpenTime] = true
			}
		})
	}
}

func TestPrependHistoryDoesNotMutateInputs(t *testing.T) {
	existing := createTestCandles(3, 1_000_000)
	older := []binance.Candle{{OpenTime: 900000}, {OpenTime: 800000}}
	snapshot := append([]binance.Candle(nil), older...)

	merged, _ := PrependHistory(existing, older)
	merged[0].Close = 42

	assert.Equal(t, snapshot, older)
	assert.Equal(t, createTestCandles(3, 1_000_000), existing)
}
