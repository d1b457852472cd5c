package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatVolume(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: 999.9, want: "999"},
		{in: 1500, want: "1.5K"},
		{in: 1_234_567, want: "1.2M"},
		{in: 2_560_000_000, want: "2.5B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatVolume(tt.in))
	}
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+2.56%", FormatChange(2.567))
	assert.Equal(t, "-1.23%", FormatChange(-1.239))
	assert.Equal(t, "+0%", FormatChange(0))
}

func TestFormatPrices(t *testing.T) {
	assert.Equal(t, "37200.5", FormatPrice(37200.509))
	assert.Equal(t, "$67000.12", FormatLastPrice(67000.12345))
	assert.Equal(t, "$0.6", FormatLastPrice(0.6))
}

func TestFormatDates(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 0, 0, time.Local)
	assert.Equal(t, "03/09/2024 07:05", FormatDateTime(ts))
	assert.Equal(t, "03/09", FormatDate(ts))
}
