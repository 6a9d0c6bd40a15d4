package marketdata

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// tradingDaysPerYear annualizes daily return statistics.
const tradingDaysPerYear = 252

// RollingVolatility computes the annualized rolling standard deviation of
// daily log returns. Entry i covers the window of returns ending at price i.
// Leading entries without a full window are back-filled from the first
// complete one.
func RollingVolatility(prices []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("RollingVolatility: window must be positive, found %d", window)
	}

	if len(prices) < 2 {
		return nil, fmt.Errorf("RollingVolatility: need at least two prices, found %d", len(prices))
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] <= 0 || prices[i] <= 0 {
			return nil, fmt.Errorf("RollingVolatility: found non-positive price at index %d", i)
		}

		returns = append(returns, math.Log(prices[i]/prices[i-1]))
	}

	volatilities := make([]float64, len(prices))
	firstComplete := -1

	for i := range prices {
		if i < window {
			continue
		}

		sd, err := stats.StandardDeviationSample(returns[i-window : i])
		if err != nil {
			return nil, fmt.Errorf("RollingVolatility: failed to calculate the standard deviation: %v", err)
		}

		volatilities[i] = sd * math.Sqrt(tradingDaysPerYear)
		if firstComplete == -1 {
			firstComplete = i
		}
	}

	if firstComplete == -1 {
		return nil, fmt.Errorf("RollingVolatility: need more than %d prices for a %d-day window, found %d", window, window, len(prices))
	}

	for i := 0; i < firstComplete; i++ {
		volatilities[i] = volatilities[firstComplete]
	}

	return volatilities, nil
}
