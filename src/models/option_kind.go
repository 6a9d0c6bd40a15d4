package models

import "fmt"

type OptionKind string

const (
	Call OptionKind = "call"
	Put  OptionKind = "put"
)

func (k OptionKind) Validate() error {
	if k != Call && k != Put {
		return fmt.Errorf("OptionKind: Validate: invalid option kind: %s: %w", k, InvalidKindErr)
	}

	return nil
}
