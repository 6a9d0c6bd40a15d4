package models

import "time"

// EquityCurveRecord is one trading day's P&L breakdown. Equity mirrors
// TotalPL: the curve is expressed as cumulative profit, not account value.
type EquityCurveRecord struct {
	Date        time.Time
	StockPL     float64
	OptionPL    float64
	TotalPL     float64
	DailyChange float64
	Equity      float64
}

// EquityCurve is the ordered per-date output of a simulation run, one record
// per trading day of the price feed's calendar.
type EquityCurve []*EquityCurveRecord

func (c EquityCurve) Last() *EquityCurveRecord {
	if len(c) == 0 {
		return nil
	}

	return c[len(c)-1]
}

// AtDate returns the record for the given date, or nil when the date is not
// part of the run's calendar.
func (c EquityCurve) AtDate(date time.Time) *EquityCurveRecord {
	for _, record := range c {
		if record.Date.Equal(date) {
			return record
		}
	}

	return nil
}
