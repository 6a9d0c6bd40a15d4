package models

import "fmt"

var InvalidSideErr = fmt.Errorf("side must be 'long' or 'short'")
var InvalidKindErr = fmt.Errorf("option kind must be 'call' or 'put'")
var InvalidStrikeErr = fmt.Errorf("strike price must be positive")
var InvalidQuantityErr = fmt.Errorf("quantity must be positive")
var InvalidDateOrderErr = fmt.Errorf("trade date must be before expiry")
var InvalidInitialPriceErr = fmt.Errorf("initial price must be positive")
var InvalidSplitRatioErr = fmt.Errorf("split ratio must be positive")
var InvalidSpotErr = fmt.Errorf("spot price must be positive")
var NegativeVolatilityErr = fmt.Errorf("volatility must be non-negative")
var NegativeRateErr = fmt.Errorf("risk-free rate must be non-negative")
