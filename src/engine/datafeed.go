package engine

import "time"

// DataFeed supplies pre-resolved market observations for one simulation run.
// The spot series defines the run's trading calendar: Dates must return the
// full calendar in strictly increasing order, and every calendar date must
// have a spot price. The rate and volatility series may be coarser than the
// calendar; the engine forward-fills the gaps.
type DataFeed interface {
	Dates() []time.Time
	Spot(date time.Time) (float64, bool)
	Rate(date time.Time) (float64, bool)
	Volatility(date time.Time) (float64, bool)
	DividendYield() float64
}
