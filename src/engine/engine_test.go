package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synthetic-long/src/engine"
	"synthetic-long/src/marketdata"
	"synthetic-long/src/models"
	"synthetic-long/src/pricing"
)

var tradeDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
var expiry = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

func newStock(t *testing.T) *models.StockPosition {
	stock, err := models.NewStockPosition("AAPL", 100, 100.0)
	require.NoError(t, err)
	return stock
}

func newLeg(t *testing.T, side models.OptionSide, kind models.OptionKind, strike float64) *models.OptionLeg {
	leg, err := models.NewOptionLeg(side, kind, strike, 5.0, 1, tradeDate, expiry)
	require.NoError(t, err)
	return leg
}

// feed with a constant market on the given dates
func constantFeed(dates []time.Time, spot float64) *marketdata.Series {
	series := marketdata.NewSeries(0)
	for _, date := range dates {
		series.AddSpot(date, spot)
		series.AddRate(date, 0.05)
		series.AddVolatility(date, 0.3)
	}

	return series
}

func TestValuationEngineRun(t *testing.T) {
	t.Run("empty feed", func(t *testing.T) {
		e, err := engine.NewValuationEngine(newStock(t), nil, nil)
		require.NoError(t, err)

		_, err = e.Run(marketdata.NewSeries(0))
		require.ErrorIs(t, err, engine.EmptyFeedErr)
	})

	t.Run("first-day option pl compares against initial cash flow", func(t *testing.T) {
		leg := newLeg(t, models.SideLong, models.Call, 100)
		e, err := engine.NewValuationEngine(newStock(t), []*models.OptionLeg{leg}, nil)
		require.NoError(t, err)

		curve, err := e.Run(constantFeed([]time.Time{tradeDate}, 100.0))
		require.NoError(t, err)
		require.Len(t, curve, 1)

		expected := pricing.BlackScholesPrice(true, 100, 100, leg.TimeToExpiry(tradeDate), 0.3, 0.05, 0)*100 - 500.0

		assert.Equal(t, 0.0, curve[0].StockPL)
		assert.InDelta(t, expected, curve[0].OptionPL, 1e-9)
		assert.InDelta(t, expected, curve[0].TotalPL, 1e-9)
		assert.Equal(t, curve[0].TotalPL, curve[0].Equity)
	})

	t.Run("itm exercise on expiry adds intrinsic value and deactivates", func(t *testing.T) {
		leg := newLeg(t, models.SideLong, models.Call, 100)
		e, err := engine.NewValuationEngine(newStock(t), []*models.OptionLeg{leg}, nil)
		require.NoError(t, err)

		curve, err := e.Run(constantFeed([]time.Time{tradeDate, expiry}, 110.0))
		require.NoError(t, err)
		require.Len(t, curve, 2)

		assert.Equal(t, 1000.0, curve[1].OptionPL)
		assert.Equal(t, models.Exercised, leg.State())
	})

	t.Run("worthless expiry still deactivates with the time value unwound", func(t *testing.T) {
		leg := newLeg(t, models.SideLong, models.Call, 100)
		e, err := engine.NewValuationEngine(newStock(t), []*models.OptionLeg{leg}, nil)
		require.NoError(t, err)

		curve, err := e.Run(constantFeed([]time.Time{tradeDate, expiry}, 95.0))
		require.NoError(t, err)
		require.Len(t, curve, 2)

		dayOneValue := pricing.BlackScholesPrice(true, 95, 100, leg.TimeToExpiry(tradeDate), 0.3, 0.05, 0) * 100

		// intrinsic is zero on expiry, so the day unwinds yesterday's notional
		assert.InDelta(t, -dayOneValue, curve[1].OptionPL, 1e-9)
		assert.Equal(t, models.Exercised, leg.State())

		// inert afterwards: nothing contributes past expiry
		assert.Equal(t, 0.0, leg.MarkToMarketValue(120, 0.1, 0.3, 0.05, 0))
	})

	t.Run("daily change reconciles against the previous day", func(t *testing.T) {
		leg := newLeg(t, models.SideShort, models.Call, 110)
		e, err := engine.NewValuationEngine(newStock(t), []*models.OptionLeg{leg}, nil)
		require.NoError(t, err)

		dates := []time.Time{tradeDate, tradeDate.AddDate(0, 0, 1), tradeDate.AddDate(0, 0, 2)}
		series := marketdata.NewSeries(0)
		for i, date := range dates {
			series.AddSpot(date, 100.0+float64(i))
			series.AddRate(date, 0.05)
			series.AddVolatility(date, 0.3)
		}

		curve, err := e.Run(series)
		require.NoError(t, err)
		require.Len(t, curve, 3)

		// recompute each day's option notional independently
		notionals := make([]float64, 3)
		for i, date := range dates {
			fresh := newLeg(t, models.SideShort, models.Call, 110)
			notionals[i] = fresh.MarkToMarketValue(100.0+float64(i), fresh.TimeToExpiry(date), 0.3, 0.05, 0)
		}

		for i := 1; i < len(curve); i++ {
			assert.True(t, curve[i-1].Date.Before(curve[i].Date))

			expected := curve[i].TotalPL - (curve[i-1].StockPL + notionals[i-1])
			assert.InDelta(t, expected, curve[i].DailyChange, 1e-9)
		}
	})

	t.Run("rate and volatility forward-fill from coarser series", func(t *testing.T) {
		leg := newLeg(t, models.SideLong, models.Put, 100)
		e, err := engine.NewValuationEngine(newStock(t), []*models.OptionLeg{leg}, nil)
		require.NoError(t, err)

		dates := []time.Time{tradeDate, tradeDate.AddDate(0, 0, 1), tradeDate.AddDate(0, 0, 2)}
		series := marketdata.NewSeries(0)
		for _, date := range dates {
			series.AddSpot(date, 100.0)
		}
		// only the first date carries rate and volatility
		series.AddRate(dates[0], 0.05)
		series.AddVolatility(dates[0], 0.3)

		curve, err := e.Run(series)
		require.NoError(t, err)
		require.Len(t, curve, 3)
	})

	t.Run("missing value with nothing to fill from fails the run", func(t *testing.T) {
		e, err := engine.NewValuationEngine(newStock(t), nil, nil)
		require.NoError(t, err)

		series := marketdata.NewSeries(0)
		series.AddSpot(tradeDate, 100.0)
		series.AddVolatility(tradeDate, 0.3)

		_, err = e.Run(series)
		require.ErrorIs(t, err, engine.NoFillValueErr)
	})

	t.Run("non-positive spot fails the run", func(t *testing.T) {
		e, err := engine.NewValuationEngine(newStock(t), nil, nil)
		require.NoError(t, err)

		series := constantFeed([]time.Time{tradeDate, tradeDate.AddDate(0, 0, 1)}, 100.0)
		series.AddSpot(tradeDate.AddDate(0, 0, 1), -5.0)

		_, err = e.Run(series)
		require.ErrorIs(t, err, models.InvalidSpotErr)
	})

	t.Run("negative volatility fails the run", func(t *testing.T) {
		e, err := engine.NewValuationEngine(newStock(t), nil, nil)
		require.NoError(t, err)

		series := constantFeed([]time.Time{tradeDate}, 100.0)
		series.AddVolatility(tradeDate, -0.1)

		_, err = e.Run(series)
		require.ErrorIs(t, err, models.NegativeVolatilityErr)
	})

	t.Run("stock-only run tracks the share pl", func(t *testing.T) {
		e, err := engine.NewValuationEngine(newStock(t), nil, nil)
		require.NoError(t, err)

		dates := []time.Time{tradeDate, tradeDate.AddDate(0, 0, 1)}
		series := marketdata.NewSeries(0)
		series.AddSpot(dates[0], 100.0)
		series.AddSpot(dates[1], 102.0)
		series.AddRate(dates[0], 0.05)
		series.AddVolatility(dates[0], 0.3)

		curve, err := e.Run(series)
		require.NoError(t, err)

		assert.Equal(t, 0.0, curve[0].TotalPL)
		assert.Equal(t, 200.0, curve[1].TotalPL)
		assert.Equal(t, 200.0, curve[1].DailyChange)
	})
}

func TestTrackingPolicies(t *testing.T) {
	runWith := func(t *testing.T, tracking engine.TrackingPolicy) models.EquityCurve {
		legA := newLeg(t, models.SideShort, models.Call, 110)
		legB := newLeg(t, models.SideLong, models.Put, 90)

		e, err := engine.NewValuationEngine(newStock(t), []*models.OptionLeg{legA, legB}, tracking)
		require.NoError(t, err)

		dates := []time.Time{tradeDate, tradeDate.AddDate(0, 0, 1)}
		series := marketdata.NewSeries(0)
		series.AddSpot(dates[0], 100.0)
		series.AddSpot(dates[1], 103.0)
		series.AddRate(dates[0], 0.05)
		series.AddVolatility(dates[0], 0.3)

		curve, err := e.Run(series)
		require.NoError(t, err)
		require.Len(t, curve, 2)

		return curve
	}

	legValue := func(t *testing.T, side models.OptionSide, kind models.OptionKind, strike, spot float64, date time.Time) float64 {
		leg := newLeg(t, side, kind, strike)
		return leg.MarkToMarketValue(spot, leg.TimeToExpiry(date), 0.3, 0.05, 0)
	}

	dayTwo := tradeDate.AddDate(0, 0, 1)

	vA1 := legValue(t, models.SideShort, models.Call, 110, 100.0, tradeDate)
	vB1 := legValue(t, models.SideLong, models.Put, 90, 100.0, tradeDate)
	vA2 := legValue(t, models.SideShort, models.Call, 110, 103.0, dayTwo)
	vB2 := legValue(t, models.SideLong, models.Put, 90, 103.0, dayTwo)

	t.Run("per-instrument differences each leg against itself", func(t *testing.T) {
		curve := runWith(t, engine.NewPerInstrumentTracking())

		expected := (vA2 - vA1) + (vB2 - vB1)
		assert.InDelta(t, expected, curve[1].OptionPL, 1e-9)
	})

	t.Run("aggregate differences every leg against the joint notional", func(t *testing.T) {
		curve := runWith(t, engine.NewAggregateTracking())

		aggregate := vA1 + vB1
		expected := (vA2 - aggregate) + (vB2 - aggregate)
		assert.InDelta(t, expected, curve[1].OptionPL, 1e-9)
	})

	t.Run("policies agree for a single leg", func(t *testing.T) {
		single := func(t *testing.T, tracking engine.TrackingPolicy) models.EquityCurve {
			leg := newLeg(t, models.SideLong, models.Call, 100)
			e, err := engine.NewValuationEngine(newStock(t), []*models.OptionLeg{leg}, tracking)
			require.NoError(t, err)

			curve, err := e.Run(constantFeed([]time.Time{tradeDate, tradeDate.AddDate(0, 0, 1)}, 101.0))
			require.NoError(t, err)
			return curve
		}

		aggregate := single(t, engine.NewAggregateTracking())
		perInstrument := single(t, engine.NewPerInstrumentTracking())

		for i := range aggregate {
			assert.InDelta(t, aggregate[i].OptionPL, perInstrument[i].OptionPL, 1e-9)
			assert.InDelta(t, aggregate[i].TotalPL, perInstrument[i].TotalPL, 1e-9)
		}
	})
}

func TestNewTrackingPolicy(t *testing.T) {
	policy, err := engine.NewTrackingPolicy("")
	require.NoError(t, err)
	assert.Equal(t, "aggregate", policy.Name())

	policy, err = engine.NewTrackingPolicy("per-instrument")
	require.NoError(t, err)
	assert.Equal(t, "per-instrument", policy.Name())

	_, err = engine.NewTrackingPolicy("psychic")
	require.ErrorIs(t, err, engine.UnknownTrackingPolicyErr)
}
