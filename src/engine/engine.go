package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"synthetic-long/src/models"
)

// ValuationEngine drives one stock position and its option legs forward
// through a market-data calendar, producing the daily equity curve.
//
// The daily loop is a strict left-to-right fold: each day's record depends on
// the previous day's stock P&L and option notional, so iterations cannot be
// reordered. One engine owns its positions for exactly one run; independent
// runs need independent engines.
type ValuationEngine struct {
	ID       uuid.UUID
	stock    *models.StockPosition
	legs     []*models.OptionLeg
	tracking TrackingPolicy
}

func NewValuationEngine(stock *models.StockPosition, legs []*models.OptionLeg, tracking TrackingPolicy) (*ValuationEngine, error) {
	if stock == nil {
		return nil, fmt.Errorf("NewValuationEngine: stock position not set")
	}

	for i, leg := range legs {
		if err := leg.Validate(); err != nil {
			return nil, fmt.Errorf("NewValuationEngine: leg %d: %w", i+1, err)
		}
	}

	if tracking == nil {
		tracking = NewAggregateTracking()
	}

	return &ValuationEngine{
		ID:       uuid.New(),
		stock:    stock,
		legs:     legs,
		tracking: tracking,
	}, nil
}

// Run simulates every date of the feed's calendar and returns the equity
// curve. The run fails at the first data-quality problem: a non-positive
// spot, a negative rate or volatility, or a rate/volatility gap with nothing
// to forward-fill from. It never returns a curve containing NaN or Inf.
func (e *ValuationEngine) Run(feed DataFeed) (models.EquityCurve, error) {
	dates := feed.Dates()
	if len(dates) == 0 {
		return nil, fmt.Errorf("ValuationEngine.Run: %w", EmptyFeedErr)
	}

	log.Infof("run %s: simulating %d trading days with %d option legs (%s tracking)", e.ID, len(dates), len(e.legs), e.tracking.Name())

	dividendYield := feed.DividendYield()
	curve := make(models.EquityCurve, 0, len(dates))

	var previousStockPL float64
	var previousOptionNotional float64
	var rate, volatility float64
	var haveRate, haveVolatility bool

	for i, date := range dates {
		if i > 0 && !dates[i-1].Before(date) {
			return nil, fmt.Errorf("ValuationEngine.Run: found %s after %s: %w", date.Format("2006-01-02"), dates[i-1].Format("2006-01-02"), NonMonotonicDatesErr)
		}

		spot, ok := feed.Spot(date)
		if !ok {
			return nil, fmt.Errorf("ValuationEngine.Run: %s: %w", date.Format("2006-01-02"), MissingSpotErr)
		}

		if value, ok := feed.Rate(date); ok {
			rate = value
			haveRate = true
		} else if !haveRate {
			return nil, fmt.Errorf("ValuationEngine.Run: rate on %s: %w", date.Format("2006-01-02"), NoFillValueErr)
		}

		if value, ok := feed.Volatility(date); ok {
			volatility = value
			haveVolatility = true
		} else if !haveVolatility {
			return nil, fmt.Errorf("ValuationEngine.Run: volatility on %s: %w", date.Format("2006-01-02"), NoFillValueErr)
		}

		observation := models.MarketObservation{
			Date:          date,
			Spot:          spot,
			Volatility:    volatility,
			Rate:          rate,
			DividendYield: dividendYield,
		}

		if err := observation.Validate(); err != nil {
			return nil, fmt.Errorf("ValuationEngine.Run: %w", err)
		}

		stockPL := e.stock.DailyPL(spot, 0)

		var optionPL float64
		var optionNotional float64

		for _, leg := range e.legs {
			if !leg.IsActive() {
				continue
			}

			shouldExercise, exerciseValue := leg.CheckExercise(date, spot)
			if shouldExercise {
				optionPL += exerciseValue
				leg.Exercise()
				log.Debugf("run %s: %s exercised leg [%s] for %.2f", e.ID, date.Format("2006-01-02"), leg, exerciseValue)
				continue
			}

			value := leg.MarkToMarketValue(spot, leg.TimeToExpiry(date), volatility, rate, dividendYield)
			optionNotional += value
			optionPL += e.tracking.Contribution(leg, date, value)

			if date.Equal(leg.Expiry) {
				// expired worthless; inert from tomorrow on
				leg.Exercise()
				log.Debugf("run %s: %s leg [%s] expired worthless", e.ID, date.Format("2006-01-02"), leg)
			}
		}

		totalPL := stockPL + optionPL
		dailyChange := totalPL - (previousStockPL + previousOptionNotional)

		if !isFinite(totalPL) || !isFinite(dailyChange) {
			return nil, fmt.Errorf("ValuationEngine.Run: %s: %w", date.Format("2006-01-02"), NonFiniteResultErr)
		}

		curve = append(curve, &models.EquityCurveRecord{
			Date:        date,
			StockPL:     stockPL,
			OptionPL:    optionPL,
			TotalPL:     totalPL,
			DailyChange: dailyChange,
			Equity:      totalPL,
		})

		previousStockPL = stockPL
		previousOptionNotional = optionNotional
		e.tracking.EndOfDay(optionNotional)
	}

	log.Infof("run %s: completed with final equity %.2f", e.ID, curve.Last().Equity)

	return curve, nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
