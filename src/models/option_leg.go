package models

import (
	"errors"
	"fmt"
	"time"

	"synthetic-long/src/pricing"
)

// SharesPerContract is the equity option contract multiplier.
const SharesPerContract = 100

// OptionLeg is a single option position within a synthetic-long strategy.
// A leg is created Active and transitions to Exercised exactly once, on its
// expiry date; the transition is terminal.
type OptionLeg struct {
	Side      OptionSide
	Kind      OptionKind
	Strike    float64
	Premium   float64
	Quantity  int
	TradeDate time.Time
	Expiry    time.Time

	state           LifecycleState
	initialCashFlow float64
}

func NewOptionLeg(side OptionSide, kind OptionKind, strike, premium float64, quantity int, tradeDate, expiry time.Time) (*OptionLeg, error) {
	leg := &OptionLeg{
		Side:      side,
		Kind:      kind,
		Strike:    strike,
		Premium:   premium,
		Quantity:  quantity,
		TradeDate: tradeDate,
		Expiry:    expiry,
	}

	if err := leg.Validate(); err != nil {
		return nil, fmt.Errorf("NewOptionLeg: %w", err)
	}

	leg.state = Active
	leg.initialCashFlow = premium * float64(quantity) * SharesPerContract

	return leg, nil
}

// Validate reports every violated constraint, not just the first one found.
func (leg *OptionLeg) Validate() error {
	var violations []error

	if err := leg.Side.Validate(); err != nil {
		violations = append(violations, err)
	}

	if err := leg.Kind.Validate(); err != nil {
		violations = append(violations, err)
	}

	if leg.Strike <= 0 {
		violations = append(violations, fmt.Errorf("found strike %v: %w", leg.Strike, InvalidStrikeErr))
	}

	if leg.Quantity <= 0 {
		violations = append(violations, fmt.Errorf("found quantity %v: %w", leg.Quantity, InvalidQuantityErr))
	}

	if !leg.TradeDate.Before(leg.Expiry) {
		violations = append(violations, fmt.Errorf("found trade date %s and expiry %s: %w", leg.TradeDate.Format("2006-01-02"), leg.Expiry.Format("2006-01-02"), InvalidDateOrderErr))
	}

	return errors.Join(violations...)
}

func (leg *OptionLeg) State() LifecycleState {
	return leg.state
}

func (leg *OptionLeg) IsActive() bool {
	return leg.state == Active
}

// InitialCashFlow is the signed premium paid or received at trade time,
// scaled to the full position.
func (leg *OptionLeg) InitialCashFlow() float64 {
	return leg.initialCashFlow
}

// TimeToExpiry returns the year fraction between date and expiry using
// calendar-day counting over a 365-day year. Negative once date passes expiry.
func (leg *OptionLeg) TimeToExpiry(date time.Time) float64 {
	return float64(int(leg.Expiry.Sub(date).Hours()/24)) / 365.0
}

// IntrinsicValue is the per-share payoff of immediate exercise.
func (leg *OptionLeg) IntrinsicValue(spot float64) float64 {
	return pricing.IntrinsicValue(leg.Kind == Call, spot, leg.Strike)
}

// MarkToMarketValue prices the full position under current market conditions.
// Returns 0 once the leg is no longer Active. Short positions carry the
// negated value of the equivalent long position.
func (leg *OptionLeg) MarkToMarketValue(spot, timeToExpiry, volatility, rate, dividendYield float64) float64 {
	if !leg.IsActive() {
		return 0
	}

	price := pricing.BlackScholesPrice(leg.Kind == Call, spot, leg.Strike, timeToExpiry, volatility, rate, dividendYield)

	return price * float64(leg.Quantity) * SharesPerContract * leg.Side.Sign()
}

// CheckExercise determines whether the leg settles in the money on its expiry
// date. It returns (false, 0) on every other date and for inactive legs. The
// caller remains responsible for deactivating the leg via Exercise, including
// when it expires worthless.
func (leg *OptionLeg) CheckExercise(date time.Time, spot float64) (bool, float64) {
	if !leg.IsActive() || !date.Equal(leg.Expiry) {
		return false, 0
	}

	intrinsic := leg.IntrinsicValue(spot)
	if intrinsic <= 0 {
		return false, 0
	}

	return true, intrinsic * float64(leg.Quantity) * SharesPerContract * leg.Side.Sign()
}

// Exercise transitions the leg into its terminal state. Idempotent.
func (leg *OptionLeg) Exercise() {
	leg.state = Exercised
}

func (leg *OptionLeg) String() string {
	return fmt.Sprintf("%s %d %s @%.2f (premium: %.2f, expires %s)", leg.Side, leg.Quantity, leg.Kind, leg.Strike, leg.Premium, leg.Expiry.Format("2006-01-02"))
}
