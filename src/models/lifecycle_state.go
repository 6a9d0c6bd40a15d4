package models

type LifecycleState string

const (
	// Active legs are marked to market every day.
	Active LifecycleState = "active"
	// Exercised is terminal: the leg is inert and values to zero on every
	// subsequent date. Legs that expire worthless also end up here.
	Exercised LifecycleState = "exercised"
)
