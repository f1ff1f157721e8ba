package domain

import (
	"encoding/json"
	"fmt"
)

// Crossover classifies the transition between two consecutive
// moving-average pairs.
type Crossover int

const (
	// CrossNone no crossover occurred.
	CrossNone Crossover = iota
	// CrossUp the short average moved above the long average.
	CrossUp
	// CrossDown the short average moved below the long average.
	CrossDown
)

// String returns the string representation of the crossover.
func (c Crossover) String() string {
	switch c {
	case CrossUp:
		return "cross_up"
	case CrossDown:
		return "cross_down"
	default:
		return "none"
	}
}

// Regime is the current market trend classification.
type Regime int

const (
	// RegimeBear the short average is at or below the long average.
	RegimeBear Regime = iota
	// RegimeBull the short average is above the long average.
	RegimeBull
)

// String returns the string representation of the regime.
func (r Regime) String() string {
	if r == RegimeBull {
		return "bull"
	}
	return "bear"
}

// Action is the outcome of a single evaluation cycle.
type Action int

const (
	// ActionWaiting not enough history to evaluate a signal yet.
	ActionWaiting Action = iota
	// ActionHold no position change.
	ActionHold
	// ActionBuy capital was committed into the base asset.
	ActionBuy
	// ActionSell the base position was liquidated.
	ActionSell
)

// action string constants to avoid magic strings
const (
	actionStringWaiting = "WAITING"
	actionStringHold    = "HOLD"
	actionStringBuy     = "BUY"
	actionStringSell    = "SELL"
)

// String returns the string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionWaiting:
		return actionStringWaiting
	case ActionHold:
		return actionStringHold
	case ActionBuy:
		return actionStringBuy
	case ActionSell:
		return actionStringSell
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the action as its string form.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes the action from its string form.
func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case actionStringWaiting:
		*a = ActionWaiting
	case actionStringHold:
		*a = ActionHold
	case actionStringBuy:
		*a = ActionBuy
	case actionStringSell:
		*a = ActionSell
	default:
		return fmt.Errorf("unknown action: %s", s)
	}
	return nil
}

// MarshalJSON encodes the regime as its string form.
func (r Regime) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the regime from its string form.
func (r *Regime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "bull" {
		*r = RegimeBull
	} else {
		*r = RegimeBear
	}
	return nil
}
