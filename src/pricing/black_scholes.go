package pricing

import "math"

// BlackScholesPrice returns the Black-Scholes-Merton price of a European
// option with continuous dividend yield.
//
// Two degenerate regimes are handled before the closed form is applied:
//   - timeToExpiry <= 0: the option has no time value left, so the price is
//     the intrinsic value.
//   - volatility == 0 with time remaining: the diffusion term vanishes and
//     d1/d2 are undefined, so the price collapses to the discounted intrinsic
//     value of the forward.
func BlackScholesPrice(isCall bool, spot, strike, timeToExpiry, volatility, rate, dividendYield float64) float64 {
	if timeToExpiry <= 0 {
		return IntrinsicValue(isCall, spot, strike)
	}

	if volatility == 0 {
		return discountedIntrinsic(isCall, spot, strike, timeToExpiry, rate, dividendYield)
	}

	d1 := (math.Log(spot/strike) + (rate-dividendYield+0.5*volatility*volatility)*timeToExpiry) / (volatility * math.Sqrt(timeToExpiry))
	d2 := d1 - volatility*math.Sqrt(timeToExpiry)

	discountedSpot := spot * math.Exp(-dividendYield*timeToExpiry)
	discountedStrike := strike * math.Exp(-rate*timeToExpiry)

	if isCall {
		return discountedSpot*normCdf(d1) - discountedStrike*normCdf(d2)
	}

	return discountedStrike*normCdf(-d2) - discountedSpot*normCdf(-d1)
}

// IntrinsicValue is the immediate-exercise payoff per share.
func IntrinsicValue(isCall bool, spot, strike float64) float64 {
	if isCall {
		return math.Max(0, spot-strike)
	}

	return math.Max(0, strike-spot)
}

func discountedIntrinsic(isCall bool, spot, strike, timeToExpiry, rate, dividendYield float64) float64 {
	discountedSpot := spot * math.Exp(-dividendYield*timeToExpiry)
	discountedStrike := strike * math.Exp(-rate*timeToExpiry)

	if isCall {
		return math.Max(0, discountedSpot-discountedStrike)
	}

	return math.Max(0, discountedStrike-discountedSpot)
}

// normCdf is the standard normal cumulative distribution function.
func normCdf(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
