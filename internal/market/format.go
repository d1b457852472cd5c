package market

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FormatVolume abbreviates v with K/M/B and one truncated decimal.
func FormatVolume(v float64) string {
	switch {
	case v >= 1e9:
		return strconv.FormatFloat(truncate(v/1e9, 1), 'f', -1, 64) + "B"
	case v >= 1e6:
		return strconv.FormatFloat(truncate(v/1e6, 1), 'f', -1, 64) + "M"
	case v >= 1e3:
		return strconv.FormatFloat(truncate(v/1e3, 1), 'f', -1, 64) + "K"
	}
	return strconv.Itoa(int(v))
}

// FormatPrice prints a price truncated to two decimals.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(truncate(p, 2), 'f', -1, 64)
}

// FormatLastPrice is the list price cell: "$" and at most eight characters.
func FormatLastPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if len(s) > 8 {
		s = s[:8]
	}
	return "$" + s
}

// FormatChange prints a signed percent change truncated to two decimals.
func FormatChange(pct float64) string {
	prefix := ""
	if pct >= 0 {
		prefix = "+"
	}
	return fmt.Sprintf("%s%s%%", prefix, strconv.FormatFloat(truncate(pct, 2), 'f', -1, 64))
}

// FormatDateTime is the crosshair time label, in local time.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("01/02/2006 15:04")
}

// FormatDate is the time bar label, in local time.
func FormatDate(t time.Time) string {
	return t.Local().Format("01/02")
}

func truncate(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Trunc(v*p) / p
}
