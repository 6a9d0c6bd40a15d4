package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"synthetic-long/src/models"
	"synthetic-long/src/utils"
)

// BacktestYAML is the on-disk description of one backtest: a single stock
// leg plus an ordered list of option legs.
type BacktestYAML struct {
	Ticker        string          `yaml:"ticker"`
	ShareQty      int             `yaml:"shareQty"`
	InitialPrice  float64         `yaml:"initialPrice,omitempty"`
	DividendYield float64         `yaml:"dividendYield,omitempty"`
	StartsAt      string          `yaml:"startsAt,omitempty"`
	EndsAt        string          `yaml:"endsAt,omitempty"`
	Tracking      string          `yaml:"tracking,omitempty"`
	Legs          []OptionLegYAML `yaml:"legs"`
}

type OptionLegYAML struct {
	Side      string  `yaml:"side"`
	Kind      string  `yaml:"kind"`
	Strike    float64 `yaml:"strike"`
	Premium   float64 `yaml:"premium"`
	Qty       int     `yaml:"qty"`
	TradeDate string  `yaml:"tradeDate"`
	Expiry    string  `yaml:"expiry"`
}

func Load(path string) (*BacktestYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Load: failed to read config: %v", err)
	}

	var cfg BacktestYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("Load: failed to unmarshal config: %v", err)
	}

	return &cfg, nil
}

// Validate reports every violation in the file at once, each prefixed with
// the offending leg's index.
func (c *BacktestYAML) Validate() error {
	var violations []error

	if c.Ticker == "" {
		violations = append(violations, fmt.Errorf("ticker is required"))
	}

	if c.ShareQty <= 0 {
		violations = append(violations, fmt.Errorf("shareQty must be positive, found %d", c.ShareQty))
	}

	if c.InitialPrice < 0 {
		violations = append(violations, fmt.Errorf("initialPrice must be non-negative, found %v", c.InitialPrice))
	}

	if len(c.Legs) == 0 {
		violations = append(violations, fmt.Errorf("at least one option leg is required"))
	}

	for i, leg := range c.Legs {
		if _, err := leg.ToModel(); err != nil {
			violations = append(violations, fmt.Errorf("leg %d: %w", i+1, err))
		}
	}

	for _, bound := range []struct {
		name  string
		value string
	}{{"startsAt", c.StartsAt}, {"endsAt", c.EndsAt}} {
		if bound.value == "" {
			continue
		}

		if _, err := utils.ParseDate(bound.value); err != nil {
			violations = append(violations, fmt.Errorf("%s: invalid date %q, expected YYYY-MM-DD", bound.name, bound.value))
		}
	}

	if err := errors.Join(violations...); err != nil {
		return fmt.Errorf("BacktestYAML: Validate: %w", err)
	}

	return nil
}

func (l OptionLegYAML) ToModel() (*models.OptionLeg, error) {
	var violations []error

	tradeDate, err := utils.ParseDate(l.TradeDate)
	if err != nil {
		violations = append(violations, fmt.Errorf("tradeDate: invalid date %q, expected YYYY-MM-DD", l.TradeDate))
	}

	expiry, err := utils.ParseDate(l.Expiry)
	if err != nil {
		violations = append(violations, fmt.Errorf("expiry: invalid date %q, expected YYYY-MM-DD", l.Expiry))
	}

	if err := errors.Join(violations...); err != nil {
		return nil, err
	}

	return models.NewOptionLeg(models.OptionSide(l.Side), models.OptionKind(l.Kind), l.Strike, l.Premium, l.Qty, tradeDate, expiry)
}

// ToLegs materializes the option legs in file order.
func (c *BacktestYAML) ToLegs() ([]*models.OptionLeg, error) {
	legs := make([]*models.OptionLeg, 0, len(c.Legs))

	for i, legYAML := range c.Legs {
		leg, err := legYAML.ToModel()
		if err != nil {
			return nil, fmt.Errorf("BacktestYAML.ToLegs: leg %d: %w", i+1, err)
		}

		legs = append(legs, leg)
	}

	return legs, nil
}

// DateRange resolves the simulation window: explicit startsAt/endsAt when
// set, otherwise the earliest trade date through the latest expiry.
func (c *BacktestYAML) DateRange(legs []*models.OptionLeg) (time.Time, time.Time, error) {
	var start, end time.Time

	if len(legs) > 0 {
		start = legs[0].TradeDate
		end = legs[0].Expiry

		for _, leg := range legs[1:] {
			start = utils.GetMinTime(start, leg.TradeDate)
			end = utils.GetMaxTime(end, leg.Expiry)
		}
	}

	if c.StartsAt != "" {
		parsed, err := utils.ParseDate(c.StartsAt)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("BacktestYAML.DateRange: startsAt: %v", err)
		}
		start = parsed
	}

	if c.EndsAt != "" {
		parsed, err := utils.ParseDate(c.EndsAt)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("BacktestYAML.DateRange: endsAt: %v", err)
		}
		end = parsed
	}

	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("BacktestYAML.DateRange: no legs and no explicit startsAt/endsAt to derive a range from")
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("BacktestYAML.DateRange: start %s must be before end %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return start, end, nil
}
