package binance

import (
	"fmt"
	"time"
)

// Interval is a kline timeframe token understood by the exchange.
type Interval string

const (
	OneMinute      Interval = "1m"
	FiveMinutes    Interval = "5m"
	FifteenMinutes Interval = "15m"
	OneHour        Interval = "1h"
	FourHours      Interval = "4h"
	OneDay         Interval = "1d"
)

var intervalDurations = map[Interval]time.Duration{
	OneMinute:      time.Minute,
	FiveMinutes:    time.Minute * 5,
	FifteenMinutes: time.Minute * 15,
	OneHour:        time.Hour,
	FourHours:      time.Hour * 4,
	OneDay:         time.Hour * 24,
}

// Intervals returns the supported intervals from shortest to longest.
func Intervals() []Interval {
	return []Interval{OneMinute, FiveMinutes, FifteenMinutes, OneHour, FourHours, OneDay}
}

func ParseInterval(s string) (Interval, error) {
	iv := Interval(s)
	if _, ok := intervalDurations[iv]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidInterval, s)
	}
	return iv, nil
}

func (i Interval) String() string {
	return string(i)
}

// Duration is the length of one candle, or zero for unknown tokens.
func (i Interval) Duration() time.Duration {
	return intervalDurations[i]
}
