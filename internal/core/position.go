package core

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// Money is a monetary amount in cents. Amounts are always non-negative;
	// the bot never records refunds.
	Money struct {
		Cents int64
	}

	// Position is one parsed expense entry in a chat's ledger.
	Position struct {
		Price     Money
		Comment   string
		From      string // submitter display name, denormalized at creation
		FromID    int64
		Timestamp int64 // unix seconds, message send time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyComment  = errors.New("empty comment")
	ErrEmptyFrom     = errors.New("empty submitter name")
)

// String renders the amount with exactly two fractional digits, e.g. "12.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (p Position) Validate() error {
	if err := p.Price.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(p.Comment)) == 0 {
		return ErrEmptyComment
	}
	if len(strings.TrimSpace(p.From)) == 0 {
		return ErrEmptyFrom
	}
	if p.Timestamp < 0 {
		return errors.New("negative timestamp")
	}
	return nil
}
