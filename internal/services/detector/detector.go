// Package detector classifies moving-average crossovers into trade signals.
package detector

import (
	"github.com/pkg/errors"
	"github.com/vadiminshakov/crossbot/internal/domain"
	"github.com/vadiminshakov/crossbot/internal/services/indicators"
)

// ErrInsufficientData is returned when the history is too short to
// evaluate a signal. Not a failure: the caller reports a waiting status.
var ErrInsufficientData = errors.New("insufficient data for signal detection")

// Evaluate applies Detect after checking the minimum-history precondition:
// at least longWindow+1 buffered samples and defined averages at the
// current index. prev is the average pair from the last successful
// evaluation; before any evaluation succeeded it is the zero pair, whose
// exact equality counts as "not yet crossed".
func Evaluate(snap indicators.Snapshot, prev indicators.SMAPair, sampleCount, longWindow int) (domain.Crossover, domain.Regime, error) {
	if sampleCount < longWindow+1 || !snap.Defined {
		return domain.CrossNone, domain.RegimeBear, ErrInsufficientData
	}
	return Detect(prev, snap.SMA), Regime(snap.SMA), nil
}

// Detect classifies the transition between the previous and current
// moving-average pairs.
//
// Equality at the previous step counts as "not yet crossed" for both
// directions, so a move from exact equality into strict inequality is a
// valid cross. The two cross directions are mutually exclusive since only
// one strict inequality can hold at the current step.
func Detect(prev, curr indicators.SMAPair) domain.Crossover {
	switch {
	case curr.Short.GreaterThan(curr.Long) && prev.Short.LessThanOrEqual(prev.Long):
		return domain.CrossUp
	case curr.Short.LessThan(curr.Long) && prev.Short.GreaterThanOrEqual(prev.Long):
		return domain.CrossDown
	default:
		return domain.CrossNone
	}
}

// Regime classifies the current trend: bull when the short average is
// strictly above the long average, bear otherwise.
func Regime(curr indicators.SMAPair) domain.Regime {
	if curr.Short.GreaterThan(curr.Long) {
		return domain.RegimeBull
	}
	return domain.RegimeBear
}
