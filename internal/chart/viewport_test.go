package chart

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temidaradev/ebikline/internal/binance"
)

func createTestCandles(count int, startTime int64) []binance.Candle {
	candles := make([]binance.Candle, count)
	for i := 0; i < count; i++ {
		base := 100.0 + float64(i)
		candles[i] = binance.Candle{
			OpenTime:  startTime + int64(i)*60000,
			Open:      base,
			High:      base + 5,
			Low:       base - 5,
			Close:     base + 2,
			Volume:    1000 + float64(i*10),
			CloseTime: startTime + int64(i+1)*60000 - 1,
		}
	}
	return candles
}

func newTestViewport() *Viewport {
	v := NewViewport()
	v.SetCanvasSize(800, 600)
	return v
}

func TestNewViewportDefaults(t *testing.T) {
	v := NewViewport()
	assert.Equal(t, 1.0, v.XZoom)
	assert.Equal(t, 1.0, v.YZoom)
	assert.Equal(t, 0.0, v.XOffset)
	assert.Equal(t, 0.0, v.YOffset)
	assert.True(t, v.InitialPosition)
	assert.False(t, v.HasCanvas())
	assert.Equal(t, 25.0, v.Step())
}

func TestIndexToXMonotonic(t *testing.T) {
	v := newTestViewport()
	for _, zoom := range []float64{MinXZoom, 0.5, 1, 3, MaxXZoom} {
		v.XZoom = zoom
		v.XOffset = -1234.5
		prev := math.Inf(-1)
		for i := 0; i < 200; i++ {
			x := v.IndexToX(i)
			assert.GreaterOrEqual(t, x, prev)
			prev = x
		}
	}
}

func TestPriceToYMonotonic(t *testing.T) {
	v := newTestViewport()
	for _, zoom := range []float64{MinYZoom, 1, MaxYZoom} {
		v.YZoom = zoom
		prev := math.Inf(1)
		for p := 90.0; p <= 210; p += 0.5 {
			y := v.PriceToY(p, 90, 210)
			assert.LessOrEqual(t, y, prev)
			prev = y
		}
	}
}

func TestPriceToYBounds(t *testing.T) {
	v := newTestViewport()
	v.YOffset = 10
	assert.InDelta(t, 610.0, v.PriceToY(100, 100, 200), 1e-9)
	assert.InDelta(t, 10.0, v.PriceToY(200, 100, 200), 1e-9)
	assert.InDelta(t, 150.0, v.YToPrice(v.PriceToY(150, 100, 200), 100, 200), 1e-9)
}

func TestXToIndexRoundTrip(t *testing.T) {
	v := newTestViewport()
	v.XOffset = -300
	for i := 0; i < 50; i++ {
		assert.Equal(t, i, v.XToIndex(v.IndexToX(i)+1))
	}
}

func TestZoomClamp(t *testing.T) {
	v := newTestViewport()
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		switch r.Intn(4) {
		case 0:
			v.ZoomX(r.Float64()*4, r.Float64()*v.Width)
		case 1:
			v.ScrollZoom(r.Float64()*2 - 1)
		case 2:
			v.DragYZoom(r.Float64()*20 - 10)
		case 3:
			v.ZoomY(r.Float64()*10-2, r.Float64()*v.Height)
		}
		require.GreaterOrEqual(t, v.XZoom, MinXZoom)
		require.LessOrEqual(t, v.XZoom, MaxXZoom)
		require.GreaterOrEqual(t, v.YZoom, MinYZoom)
		require.LessOrEqual(t, v.YZoom, MaxYZoom)
	}
}

func TestZoomXKeepsFocalPoint(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		focal  float64
		offset float64
	}{
		{name: "zoom in center", factor: 1.5, focal: 400, offset: -200},
		{name: "zoom out left", factor: 0.5, focal: 37, offset: -1000},
		{name: "clamped high", factor: 50, focal: 600, offset: 10},
		{name: "clamped low", factor: 0.0001, focal: 123, offset: -5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViewport()
			v.XOffset = tt.offset
			idx := v.XToIndex(tt.focal)

			v.ZoomX(tt.factor, tt.focal)

			assert.LessOrEqual(t, math.Abs(v.IndexToX(idx)-tt.focal), v.CandleWidth()+v.CandleSpacing())
			assert.False(t, v.InitialPosition)
		})
	}
}

func TestScrollZoom(t *testing.T) {
	v := newTestViewport()
	v.XOffset = -500
	center := v.Width / 2
	idx := v.XToIndex(center)

	v.ScrollZoom(-1)
	assert.InDelta(t, 1.1, v.XZoom, 1e-9)
	v.ScrollZoom(1)
	v.ScrollZoom(1)
	assert.InDelta(t, 0.9, v.XZoom, 1e-9)
	assert.LessOrEqual(t, math.Abs(v.IndexToX(idx)-center), v.Step())

	v.ScrollZoom(0.05)
	assert.InDelta(t, 0.9, v.XZoom, 1e-9)
}

func TestDragYZoom(t *testing.T) {
	v := newTestViewport()
	v.DragYZoom(-1.5)
	assert.Equal(t, 1.0, v.YZoom)

	v.DragYZoom(-10)
	assert.InDelta(t, 1.05, v.YZoom, 1e-9)

	v.DragYZoom(10)
	v.DragYZoom(10)
	assert.InDelta(t, 0.95, v.YZoom, 1e-9)
}

func TestZoomYKeepsCenterPrice(t *testing.T) {
	v := newTestViewport()
	v.YOffset = -120
	center := v.Height / 2
	before := v.YToPrice(center, 100, 200)

	v.ZoomY(2.5, center)

	assert.InDelta(t, before, v.YToPrice(center, 100, 200), 1e-9)
	assert.Equal(t, 2.5, v.YZoom)
}

func TestPanClampsToContent(t *testing.T) {
	v := newTestViewport()
	n := 100

	v.Pan(1e6, 1e6, n)
	assert.InDelta(t, v.Width-v.Step(), v.XOffset, 1e-9)
	assert.InDelta(t, v.Height-0.1*v.Height, v.YOffset, 1e-9)

	v.Pan(-1e7, -1e7, n)
	assert.InDelta(t, v.Step()-v.ContentWidth(n), v.XOffset, 1e-9)
	assert.InDelta(t, 0.1*v.Height-v.Height, v.YOffset, 1e-9)

	v.XOffset, v.YOffset = -100, 20
	v.Pan(15, -5, n)
	assert.Equal(t, -85.0, v.XOffset)
	assert.Equal(t, 15.0, v.YOffset)
}

func TestAutoCenter(t *testing.T) {
	candles := createTestCandles(100, 1_700_000_000_000)

	v := NewViewport()
	assert.False(t, v.AutoCenter(candles), "no canvas yet")
	assert.False(t, NewViewport().AutoCenter(nil))

	v.SetCanvasSize(800, 600)
	require.True(t, v.AutoCenter(candles))
	assert.False(t, v.InitialPosition)

	lastX := v.IndexToX(len(candles))
	assert.InDelta(t, 800-800*0.05, lastX, 1e-9)

	minPrice, maxPrice := v.PriceRange(candles)
	last := candles[len(candles)-1]
	assert.InDelta(t, 300.0, v.PriceToY(last.Mid(), minPrice, maxPrice), 1e-9)

	v.XOffset = 42
	assert.False(t, v.AutoCenter(candles), "runs once per arm")
	assert.Equal(t, 42.0, v.XOffset)

	v.Reset()
	assert.True(t, v.AutoCenter(candles))
}

func TestStablePriceLock(t *testing.T) {
	v := newTestViewport()
	candles := createTestCandles(10, 0)
	minPrice, maxPrice := v.PriceRange(candles)
	assert.Equal(t, 95.0, minPrice)
	assert.Equal(t, 114.0, maxPrice)

	v.LockPrices(minPrice, maxPrice)
	wider := append([]binance.Candle{{OpenTime: -1, Open: 10, High: 500, Low: 1, Close: 20}}, candles...)
	gotMin, gotMax := v.PriceRange(wider)
	assert.Equal(t, minPrice, gotMin)
	assert.Equal(t, maxPrice, gotMax)

	v.UnlockPrices()
	gotMin, gotMax = v.PriceRange(wider)
	assert.Equal(t, 1.0, gotMin)
	assert.Equal(t, 500.0, gotMax)
}

func TestDataPriceRangeFlat(t *testing.T) {
	minPrice, maxPrice := DataPriceRange([]binance.Candle{{Open: 5, High: 5, Low: 5, Close: 5}})
	assert.Less(t, minPrice, maxPrice)
	minPrice, maxPrice = DataPriceRange(nil)
	assert.Equal(t, 0.0, minPrice)
	assert.Equal(t, 100.0, maxPrice)
}

func TestNearDataStart(t *testing.T) {
	v := newTestViewport()
	v.XOffset = -161
	assert.False(t, v.NearDataStart())
	v.XOffset = -159
	assert.True(t, v.NearDataStart())
	v.XOffset = 100
	assert.True(t, v.NearDataStart())
}

func TestVisibleRange(t *testing.T) {
	v := newTestViewport()
	_, _, ok := v.VisibleRange(0)
	assert.False(t, ok)

	v.XOffset = -250
	first, last, ok := v.VisibleRange(100)
	require.True(t, ok)
	assert.Equal(t, 10, first)
	assert.Equal(t, 42, last)

	first, last, _ = v.VisibleRange(20)
	assert.Equal(t, 10, first)
	assert.Equal(t, 19, last)
}
