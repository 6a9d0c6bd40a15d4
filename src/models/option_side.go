package models

import "fmt"

type OptionSide string

const (
	SideLong  OptionSide = "long"
	SideShort OptionSide = "short"
)

func (s OptionSide) Validate() error {
	if s != SideLong && s != SideShort {
		return fmt.Errorf("OptionSide: Validate: invalid side: %s: %w", s, InvalidSideErr)
	}

	return nil
}

// Sign returns the multiplier applied to position values: +1 for long, -1 for short.
func (s OptionSide) Sign() float64 {
	if s == SideShort {
		return -1
	}

	return 1
}
