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

package target

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amadeus-pmml/go-pmml/core"
)

func TestParseCastInteger(t *testing.T) {
	require.Equal(t, Round, ParseCastInteger("round"))
	require.Equal(t, Ceiling, ParseCastInteger("CEILING"))
	require.Equal(t, Floor, ParseCastInteger("floor"))
	require.Equal(t, NoCast, ParseCastInteger("bogus"))
}

func TestApplyRegressionRescaleAndConstant(t *testing.T) {
	tgt := New(core.Regression)
	tgt.HasRescaleFactor = true
	tgt.RescaleFactor = 2
	tgt.HasRescaleConstant = true
	tgt.RescaleConstant = -1

	score := core.NewScore()
	score.Empty = false
	score.DoubleScore = 3.0

	tgt.Apply(score)

	require.Equal(t, 5.0, score.DoubleScore)
	require.Equal(t, 5.0, score.PredictedLabel.Number)
}

func TestApplyRegressionClampsToMinMax(t *testing.T) {
	tgt := New(core.Regression)
	tgt.HasMin = true
	tgt.Min = 0
	tgt.HasMax = true
	tgt.Max = 10

	score := core.NewScore()
	score.Empty = false
	score.DoubleScore = 42

	tgt.Apply(score)
	require.Equal(t, 10.0, score.DoubleScore)
}

func TestApplyRegressionCastRounds(t *testing.T) {
	tgt := New(core.Regression)
	tgt.HasCast = true
	tgt.Cast = Round

	score := core.NewScore()
	score.Empty = false
	score.DoubleScore = 2.6

	tgt.Apply(score)
	require.Equal(t, 3.0, score.DoubleScore)
}

func TestApplyRegressionEmptyUsesDefault(t *testing.T) {
	tgt := New(core.Regression)
	tgt.Values = []Value{{HasDefaultValue: true, DefaultValue: 7.5}}

	score := core.NewScore()
	tgt.Apply(score)

	require.False(t, score.Empty)
	require.Equal(t, 7.5, score.DoubleScore)
}

func TestApplyClassificationRemapsDisplayValueAndProbabilities(t *testing.T) {
	tgt := New(core.Classification)
	setosa := core.NewDouble(0)
	versicolor := core.NewDouble(1)
	setosaDisplay := core.NewDouble(100)
	versicolorDisplay := core.NewDouble(101)

	tgt.Values = []Value{
		{Label: setosa, HasDisplayValue: true, DisplayValue: setosaDisplay},
		{Label: versicolor, HasDisplayValue: true, DisplayValue: versicolorDisplay, HasPriorProbability: true, PriorProbability: 0.25},
	}

	score := core.NewScore()
	score.Empty = false
	score.PredictedLabel = versicolor
	score.Probabilities[versicolor.Number] = 0.9

	tgt.Apply(score)

	require.Equal(t, versicolorDisplay.Number, score.PredictedLabel.Number)
	require.Equal(t, 0.9, score.Probabilities[versicolorDisplay.Number])
	require.Equal(t, 0.0, score.Probabilities[setosaDisplay.Number])
	_, stillHasRawKey := score.Probabilities[setosa.Number]
	require.False(t, stillHasRawKey)
}

func TestFormatDouble(t *testing.T) {
	require.Equal(t, "5.000000", FormatDouble(5))
	require.Equal(t, "2.500000", FormatDouble(2.5))
}
