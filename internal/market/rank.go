package market

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/temidaradev/ebikline/internal/binance"
)

var ErrInvalidCategory = errors.New("invalid category")

// Category selects how the ticker list is filtered and ordered.
type Category int

const (
	All Category = iota
	Gainers
	Losers
	Volume
)

var categoryNames = map[Category]string{
	All:     "ALL",
	Gainers: "GAINERS",
	Losers:  "LOSERS",
	Volume:  "VOLUME",
}

// Categories returns the categories in tab order.
func Categories() []Category {
	return []Category{All, Gainers, Losers, Volume}
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// StaleAfter is how long after its window closed a ticker is treated as delisted.
const StaleAfter = 48 * time.Hour

// Rank filters out stale tickers, applies the category filter and order, then
// keeps symbols containing query, case-insensitively. The input is not modified.
func Rank(tickers []binance.Ticker, category Category, query string, now time.Time) []binance.Ticker {
	cutoff := now.Add(-StaleAfter)
	out := make([]binance.Ticker, 0, len(tickers))
	for _, t := range tickers {
		if t.ClosedAt().Before(cutoff) {
			continue
		}
		switch category {
		case Gainers:
			if t.ChangePercent() <= 0 {
				continue
			}
		case Losers:
			if t.ChangePercent() >= 0 {
				continue
			}
		}
		out = append(out, t)
	}

	switch category {
	case All:
		slices.SortStableFunc(out, func(a, b binance.Ticker) int {
			return strings.Compare(a.Symbol, b.Symbol)
		})
	case Gainers:
		slices.SortStableFunc(out, func(a, b binance.Ticker) int {
			return cmp.Compare(b.ChangePercent(), a.ChangePercent())
		})
	case Losers:
		slices.SortStableFunc(out, func(a, b binance.Ticker) int {
			return cmp.Compare(a.ChangePercent(), b.ChangePercent())
		})
	case Volume:
		slices.SortStableFunc(out, func(a, b binance.Ticker) int {
			return cmp.Compare(b.QuoteVol(), a.QuoteVol())
		})
	}

	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return out
	}
	return slices.DeleteFunc(out, func(t binance.Ticker) bool {
		return !strings.Contains(strings.ToUpper(t.Symbol), q)
	})
}

// SymbolFromQuery turns a search query into the symbol to open directly.
// It returns "" for a blank query.
func SymbolFromQuery(query string) string {
	s := strings.ToUpper(strings.TrimSpace(query))
	if s == "" {
		return ""
	}
	if !strings.HasSuffix(s, binance.QuoteAsset) {
		s += binance.QuoteAsset
	}
	return s
}
