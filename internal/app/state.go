package app

import (
	"github.com/temidaradev/ebikline/internal/binance"
	"github.com/temidaradev/ebikline/internal/market"
)

type Page int

const (
	HomePage Page = iota
	ChartPage
)

func (p Page) String() string {
	switch p {
	case HomePage:
		return "home"
	case ChartPage:
		return "chart"
	}
	return "unknown"
}

// State is the application state shared by the listing and chart screens.
// It is only touched from the UI goroutine.
type State struct {
	Page     Page
	Symbol   string
	Interval binance.Interval
	Category market.Category
	Query    string
	// Tickers caches the last listing snapshot so returning home does not refetch.
	Tickers []binance.Ticker
}

func NewState(symbol string, interval binance.Interval) *State {
	return &State{
		Page:     HomePage,
		Symbol:   symbol,
		Interval: interval,
		Category: market.Volume,
	}
}

// SelectPair opens the chart for symbol.
func (s *State) SelectPair(symbol string) {
	s.Symbol = symbol
	s.Page = ChartPage
}

// SubmitQuery opens the chart for the symbol the query names. It reports
// false and does nothing when the query is blank.
func (s *State) SubmitQuery() bool {
	symbol := market.SymbolFromQuery(s.Query)
	if symbol == "" {
		return false
	}
	s.SelectPair(symbol)
	return true
}

// ChangeTimeframe reports whether the interval actually changed.
func (s *State) ChangeTimeframe(iv binance.Interval) bool {
	if s.Interval == iv {
		return false
	}
	s.Interval = iv
	return true
}

// GoBack returns to the listing. It reports false when already there.
func (s *State) GoBack() bool {
	if s.Page == HomePage {
		return false
	}
	s.Page = HomePage
	return true
}

func (s *State) SetTickers(tickers []binance.Ticker) {
	s.Tickers = tickers
}

func (s *State) SetCategory(c market.Category) {
	s.Category = c
}

func (s *State) SetQuery(q string) {
	s.Query = q
}
