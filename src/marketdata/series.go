package marketdata

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Series is an in-memory market-data feed keyed by calendar date. The spot
// observations define the trading calendar; rate and volatility series may
// cover fewer dates than the calendar.
type Series struct {
	spots         map[string]float64
	rates         map[string]float64
	volatilities  map[string]float64
	dividendYield float64

	dates  []time.Time
	sorted bool
}

func NewSeries(dividendYield float64) *Series {
	return &Series{
		spots:         make(map[string]float64),
		rates:         make(map[string]float64),
		volatilities:  make(map[string]float64),
		dividendYield: dividendYield,
	}
}

func (s *Series) AddSpot(date time.Time, price float64) {
	key := date.Format(dateLayout)
	if _, exists := s.spots[key]; !exists {
		s.dates = append(s.dates, date)
		s.sorted = false
	}

	s.spots[key] = price
}

func (s *Series) AddRate(date time.Time, rate float64) {
	s.rates[date.Format(dateLayout)] = rate
}

func (s *Series) AddVolatility(date time.Time, volatility float64) {
	s.volatilities[date.Format(dateLayout)] = volatility
}

func (s *Series) Dates() []time.Time {
	if !s.sorted {
		sort.Slice(s.dates, func(i, j int) bool {
			return s.dates[i].Before(s.dates[j])
		})
		s.sorted = true
	}

	return s.dates
}

func (s *Series) Spot(date time.Time) (float64, bool) {
	price, ok := s.spots[date.Format(dateLayout)]
	return price, ok
}

func (s *Series) Rate(date time.Time) (float64, bool) {
	rate, ok := s.rates[date.Format(dateLayout)]
	return rate, ok
}

func (s *Series) Volatility(date time.Time) (float64, bool) {
	volatility, ok := s.volatilities[date.Format(dateLayout)]
	return volatility, ok
}

func (s *Series) DividendYield() float64 {
	return s.dividendYield
}
