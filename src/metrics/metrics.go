package metrics

import (
	"fmt"
	"math"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"synthetic-long/src/models"
)

const tradingDaysPerYear = 252

// Summary is the set of risk/return statistics derived from an equity curve.
// All ratios are computed against the strategy's initial notional; none of
// the calculations reach back into the instruments themselves.
type Summary struct {
	TotalReturn    float64
	TotalReturnPct float64
	CAGR           float64
	Volatility     float64
	Sharpe         float64
	Sortino        float64
	MaxDailyLoss   float64
	MaxDrawdown    float64
	PeriodYears    float64
	TradingDays    int
}

// Calculate derives the summary statistics for a completed run.
// initialValue is the strategy's initial notional (the stock leg's value at
// inception); riskFreeRate is the annualized rate used for excess returns.
func Calculate(curve models.EquityCurve, initialValue float64, riskFreeRate float64) (*Summary, error) {
	if len(curve) == 0 {
		return nil, fmt.Errorf("Calculate: equity curve is empty")
	}

	if initialValue == 0 {
		return nil, fmt.Errorf("Calculate: initial value must be non-zero")
	}

	first := curve[0]
	last := curve.Last()
	years := float64(int(last.Date.Sub(first.Date).Hours()/24)) / 365.0

	totalReturn := last.TotalPL
	totalReturnPct := totalReturn / math.Abs(initialValue) * 100

	cagr := 0.0
	if years > 0 && totalReturn/math.Abs(initialValue) > -1 {
		cagr = (math.Pow(1+totalReturn/math.Abs(initialValue), 1/years) - 1) * 100
	}

	dailyReturns := make([]float64, 0, len(curve))
	for _, record := range curve {
		dailyReturns = append(dailyReturns, record.DailyChange/math.Abs(initialValue))
	}

	volatility, sharpe, sortino, err := riskRatios(dailyReturns, riskFreeRate)
	if err != nil {
		return nil, fmt.Errorf("Calculate: %w", err)
	}

	maxDailyLoss, err := stats.Min(dailyChanges(curve))
	if err != nil {
		return nil, fmt.Errorf("Calculate: failed to calculate max daily loss: %v", err)
	}

	return &Summary{
		TotalReturn:    totalReturn,
		TotalReturnPct: totalReturnPct,
		CAGR:           cagr,
		Volatility:     volatility,
		Sharpe:         sharpe,
		Sortino:        sortino,
		MaxDailyLoss:   maxDailyLoss,
		MaxDrawdown:    maxDrawdown(curve, initialValue),
		PeriodYears:    years,
		TradingDays:    len(curve),
	}, nil
}

func dailyChanges(curve models.EquityCurve) []float64 {
	changes := make([]float64, 0, len(curve))
	for _, record := range curve {
		changes = append(changes, record.DailyChange)
	}

	return changes
}

func riskRatios(dailyReturns []float64, riskFreeRate float64) (volatility, sharpe, sortino float64, err error) {
	// the sample standard deviation is undefined for fewer than two returns
	if len(dailyReturns) < 2 {
		return 0, 0, 0, nil
	}

	sd, err := stats.StandardDeviationSample(dailyReturns)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to calculate the standard deviation: %v", err)
	}

	volatility = sd * math.Sqrt(tradingDaysPerYear) * 100

	dailyRiskFree := riskFreeRate / tradingDaysPerYear
	excess := make([]float64, 0, len(dailyReturns))
	var downside []float64

	for _, r := range dailyReturns {
		excess = append(excess, r-dailyRiskFree)
		if r < 0 {
			downside = append(downside, r)
		}
	}

	meanExcess, err := stats.Mean(excess)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to calculate mean: %v", err)
	}

	if sd > 0 {
		sharpe = meanExcess / sd * math.Sqrt(tradingDaysPerYear)
	}

	if len(downside) > 1 {
		downsideSd, err := stats.StandardDeviationSample(downside)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("failed to calculate downside deviation: %v", err)
		}

		if downsideSd > 0 {
			sortino = meanExcess / downsideSd * math.Sqrt(tradingDaysPerYear)
		}
	}

	return volatility, sharpe, sortino, nil
}

// maxDrawdown measures the worst peak-to-trough decline of the account value
// (initial notional plus cumulative P&L), in percent. Zero or negative when
// the curve never recedes from a peak.
func maxDrawdown(curve models.EquityCurve, initialValue float64) float64 {
	runningMax := math.Inf(-1)
	worst := 0.0

	for _, record := range curve {
		value := initialValue + record.TotalPL
		if value > runningMax {
			runningMax = value
		}

		if runningMax != 0 {
			drawdown := (value - runningMax) / math.Abs(runningMax) * 100
			if drawdown < worst {
				worst = drawdown
			}
		}
	}

	return worst
}

func (s *Summary) String() string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnSeparator("")
	display.WriteString("Backtest Summary:\n")

	table.Append([]string{"Total Return", p.Sprintf("$%.2f (%.2f%%)", s.TotalReturn, s.TotalReturnPct)})
	table.Append([]string{"CAGR", fmt.Sprintf("%.2f%%", s.CAGR)})
	table.Append([]string{"Volatility", fmt.Sprintf("%.2f%%", s.Volatility)})
	table.Append([]string{"Sharpe Ratio", fmt.Sprintf("%.2f", s.Sharpe)})
	table.Append([]string{"Sortino Ratio", fmt.Sprintf("%.2f", s.Sortino)})
	table.Append([]string{"Max Daily Loss", p.Sprintf("$%.2f", s.MaxDailyLoss)})
	table.Append([]string{"Max Drawdown", fmt.Sprintf("%.2f%%", s.MaxDrawdown)})
	table.Append([]string{"Trading Days", fmt.Sprintf("%d (%.2f years)", s.TradingDays, s.PeriodYears)})

	table.Render()
	return display.String()
}
