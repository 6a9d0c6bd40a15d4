package marketdata

import (
	"fmt"
	"time"
)

const syntheticRate = 0.02
const syntheticVolatilityWindow = 30

// BusinessDays returns the Monday-to-Friday calendar between start and end,
// inclusive. Exchange holidays are not modeled.
func BusinessDays(start, end time.Time) []time.Time {
	var days []time.Time

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}

		days = append(days, d)
	}

	return days
}

// NewSyntheticSeries builds a deterministic, network-free feed covering the
// business days between start and end: a linear price ramp from 100 to 101,
// a constant annualized rate, and rolling volatility derived from the ramp.
// Intended for offline runs and tests where a real data source is absent.
func NewSyntheticSeries(start, end time.Time, dividendYield float64) (*Series, error) {
	days := BusinessDays(start, end)
	if len(days) < 4 {
		return nil, fmt.Errorf("NewSyntheticSeries: need at least four business days between %s and %s", start.Format(dateLayout), end.Format(dateLayout))
	}

	prices := make([]float64, len(days))
	for i := range days {
		prices[i] = 100.0 + float64(i)/float64(len(days)-1)
	}

	// the sample standard deviation needs at least two returns per window
	window := syntheticVolatilityWindow
	if window > len(prices)-2 {
		window = len(prices) - 2
	}
	if window < 2 {
		window = 2
	}

	volatilities, err := RollingVolatility(prices, window)
	if err != nil {
		return nil, fmt.Errorf("NewSyntheticSeries: %w", err)
	}

	series := NewSeries(dividendYield)
	for i, day := range days {
		series.AddSpot(day, prices[i])
		series.AddRate(day, syntheticRate)
		series.AddVolatility(day, volatilities[i])
	}

	return series, nil
}
