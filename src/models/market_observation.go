package models

import (
	"fmt"
	"time"
)

// MarketObservation is one day's resolved market inputs after forward-fill.
type MarketObservation struct {
	Date          time.Time
	Spot          float64
	Volatility    float64
	Rate          float64
	DividendYield float64
}

// Validate enforces the data-quality constraints under which pricing is
// defined: spot strictly positive, volatility and rate non-negative.
func (o MarketObservation) Validate() error {
	date := o.Date.Format("2006-01-02")

	if o.Spot <= 0 {
		return fmt.Errorf("MarketObservation: Validate: found spot %v on %s: %w", o.Spot, date, InvalidSpotErr)
	}

	if o.Volatility < 0 {
		return fmt.Errorf("MarketObservation: Validate: found volatility %v on %s: %w", o.Volatility, date, NegativeVolatilityErr)
	}

	if o.Rate < 0 {
		return fmt.Errorf("MarketObservation: Validate: found rate %v on %s: %w", o.Rate, date, NegativeRateErr)
	}

	return nil
}
