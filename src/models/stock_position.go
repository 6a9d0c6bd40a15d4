package models

import (
	"fmt"
	"math"
)

// StockPosition is the underlying share position of a synthetic-long
// strategy. The ticker is metadata only; no pricing logic depends on it.
type StockPosition struct {
	Ticker       string
	Quantity     int
	InitialPrice float64

	initialValue      float64
	dividendsReceived float64
}

func NewStockPosition(ticker string, quantity int, initialPrice float64) (*StockPosition, error) {
	if initialPrice <= 0 {
		return nil, fmt.Errorf("NewStockPosition: found initial price %v: %w", initialPrice, InvalidInitialPriceErr)
	}

	return &StockPosition{
		Ticker:       ticker,
		Quantity:     quantity,
		InitialPrice: initialPrice,
		initialValue: float64(quantity) * initialPrice,
	}, nil
}

// InitialValue is the notional at inception. Fixed at construction; only
// AdjustForSplit may recompute it.
func (p *StockPosition) InitialValue() float64 {
	return p.initialValue
}

func (p *StockPosition) DividendsReceived() float64 {
	return p.dividendsReceived
}

func (p *StockPosition) MarkToMarketValue(spot float64) float64 {
	return float64(p.Quantity) * spot
}

// DailyPL returns the cumulative profit on the position at the given spot.
// A positive dividend is accrued (scaled by share count) into the running
// dividend total before the return value is computed.
func (p *StockPosition) DailyPL(spot, dividend float64) float64 {
	if dividend > 0 {
		p.dividendsReceived += dividend * float64(p.Quantity)
	}

	return p.MarkToMarketValue(spot) - p.initialValue + p.dividendsReceived
}

// AdjustForSplit rescales the position for a forward or reverse split, e.g.
// ratio 2.0 for a 2:1 split. A pure forward split leaves the initial
// notional economically unchanged up to share rounding.
func (p *StockPosition) AdjustForSplit(ratio float64) error {
	if ratio <= 0 {
		return fmt.Errorf("StockPosition.AdjustForSplit: found ratio %v: %w", ratio, InvalidSplitRatioErr)
	}

	p.Quantity = int(math.Round(float64(p.Quantity) * ratio))
	p.InitialPrice = p.InitialPrice / ratio
	p.initialValue = float64(p.Quantity) * p.InitialPrice

	return nil
}

func (p *StockPosition) String() string {
	return fmt.Sprintf("%d shares of %s @%.2f", p.Quantity, p.Ticker, p.InitialPrice)
}
