// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package target implements the PMML Target post-score transform: the
// regression min/max clip, rescale factor/constant and integer cast
// pipeline, and the classification TargetValue displayValue/
// priorProbability remap. Grounded on core/target.h.
package target

import (
	"math"
	"strconv"
	"strings"

	"github.com/amadeus-pmml/go-pmml/core"
)

// CastInteger names the optional integer-cast mode a regression Target may
// declare via castInteger. Grounded on target.h's CastInteger, which binds
// round/ceiling/floor to a std::function chosen once at load time; here the
// choice is a small enum switched on at apply time instead.
type CastInteger int

const (
	NoCast CastInteger = iota
	Round
	Ceiling
	Floor
)

// ParseCastInteger maps a castInteger attribute to a CastInteger, falling
// back to NoCast for anything else (target.h's CastInteger constructor
// leaves cast_function as the identity when the string doesn't match).
func ParseCastInteger(s string) CastInteger {
	switch strings.ToLower(s) {
	case "round":
		return Round
	case "ceiling":
		return Ceiling
	case "floor":
		return Floor
	default:
		return NoCast
	}
}

func (c CastInteger) apply(v float64) float64 {
	switch c {
	case Round:
		return math.Round(v)
	case Ceiling:
		return math.Ceil(v)
	case Floor:
		return math.Floor(v)
	default:
		return v
	}
}

// Value is one declared <TargetValue>: the raw category it matches, its
// optional display rendering, prior probability and regression default.
// Grounded on target.h's TargetValue.
type Value struct {
	Label core.Value

	HasDisplayValue bool
	DisplayValue    core.Value

	HasPriorProbability bool
	PriorProbability    float64

	HasDefaultValue bool
	DefaultValue    float64
}

// Target is one model's post-score transform: min/max clip, rescale
// factor/constant and integer cast for a regression score, or category
// displayValue/priorProbability remap for a classification score. Grounded
// on target.h's Target.
type Target struct {
	Function core.MiningFunction

	HasCast bool
	Cast    CastInteger

	HasMin bool
	Min    float64

	HasMax bool
	Max    float64

	HasRescaleConstant bool
	RescaleConstant    float64

	HasRescaleFactor bool
	RescaleFactor    float64

	Values []Value
}

// New returns an empty Target for function: no declared <Targets> element
// means no rescale/remap ever applies, matching target.h's default
// constructor.
func New(function core.MiningFunction) *Target {
	return &Target{Function: function}
}

// Apply runs the post-score transform against score in place, dispatching
// on the owning model's MiningFunction. Grounded on target.h's
// operator()(InternalScore&).
func (t *Target) Apply(score *core.Score) {
	if t.Function == core.Regression {
		t.applyRegression(score)
		return
	}
	t.applyClassification(score)
}

// applyRegression mirrors target.h's REGRESSION case: an empty score
// substitutes the first declared TargetValue's defaultValue; otherwise the
// raw score is min-clipped, max-clipped, rescaled by factor then constant,
// and integer-cast, with PredictedLabel refreshed to match.
func (t *Target) applyRegression(score *core.Score) {
	if score.Empty {
		if len(t.Values) > 0 && t.Values[0].HasDefaultValue {
			score.Empty = false
			score.DoubleScore = t.Values[0].DefaultValue
			score.PredictedLabel = core.NewDouble(score.DoubleScore)
		}
		return
	}

	v := score.DoubleScore
	if t.HasMin && v < t.Min {
		v = t.Min
	} else if t.HasMax && v > t.Max {
		v = t.Max
	}
	if t.HasRescaleFactor {
		v *= t.RescaleFactor
	}
	if t.HasRescaleConstant {
		v += t.RescaleConstant
	}
	if t.HasCast {
		v = t.Cast.apply(v)
	}

	score.DoubleScore = v
	score.PredictedLabel = core.NewDouble(v)
}

// applyClassification mirrors spec.md §4.8's classification contract: for
// each declared TargetValue whose category matches the winning label,
// replace it with the displayValue; ensure the probability map contains
// every declared category (using priorProbability where declared, zero
// otherwise); and rename a declared category's probability entry to its
// displayValue key. This follows spec.md's literal description rather than
// target.h's map::operator[] default-insert-then-erase sequence for the
// no-prior-probability/has-display-value branch, which only ever produces a
// zero-valued entry under the display key — the same end state spec.md
// already asks for directly.
func (t *Target) applyClassification(score *core.Score) {
	for _, tv := range t.Values {
		if score.PredictedLabel.Number == tv.Label.Number && tv.HasDisplayValue {
			score.PredictedLabel = tv.DisplayValue
		}

		key := tv.Label.Number
		if _, ok := score.Probabilities[key]; !ok {
			if tv.HasPriorProbability {
				score.Probabilities[key] = tv.PriorProbability
			} else {
				score.Probabilities[key] = 0
			}
		}

		if tv.HasDisplayValue {
			score.Probabilities[tv.DisplayValue.Number] = score.Probabilities[key]
			delete(score.Probabilities, key)
		}
	}
}

// FormatDouble renders a rescaled/cast regression score the way target.h's
// string refresh does (`score.score = std::to_string(score.double_score)`):
// a fixed six-decimal-place rendering, independent of the general-purpose
// shortest-round-trip formatting used elsewhere for plain numeric output.
func FormatDouble(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
