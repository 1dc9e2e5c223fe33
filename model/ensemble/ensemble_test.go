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

package ensemble

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amadeus-pmml/go-pmml/core"
)

// constantModel is a test-only model.Model stub returning a fixed Score.
type constantModel struct {
	score *core.Score
}

func (c constantModel) Score(sample *core.Sample) (*core.Score, error) {
	return c.score, nil
}

func labelScore(label core.Value, probs map[float64]float64) *core.Score {
	s := core.NewScore()
	s.Empty = false
	s.PredictedLabel = label
	s.Probabilities = probs
	return s
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("majorityVote")
	require.NoError(t, err)
	require.Equal(t, MajorityVote, m)

	_, err = ParseMethod("bogus")
	require.Error(t, err)
}

func TestMajorityVotePicksMostCommonLabel(t *testing.T) {
	in := core.NewInterner(false)
	yes := in.FromString("yes", false)
	no := in.FromString("no", false)

	segs := []Segment{
		{Weight: 1, Model: constantModel{labelScore(yes, nil)}},
		{Weight: 1, Model: constantModel{labelScore(yes, nil)}},
		{Weight: 1, Model: constantModel{labelScore(no, nil)}},
	}
	m := New(core.Classification, MajorityVote, segs, 2)

	score, err := m.Score(core.NewSample(0))
	require.NoError(t, err)
	require.True(t, score.PredictedLabel.Equal(yes))
}

func TestSumAddsDoubleScores(t *testing.T) {
	s1 := core.NewScore()
	s1.Empty = false
	s1.DoubleScore = 3
	s2 := core.NewScore()
	s2.Empty = false
	s2.DoubleScore = 4

	segs := []Segment{
		{Model: constantModel{s1}},
		{Model: constantModel{s2}},
	}
	m := New(core.Regression, Sum, segs, 0)

	score, err := m.Score(core.NewSample(0))
	require.NoError(t, err)
	require.Equal(t, 7.0, score.DoubleScore)
}

func TestRegressionAverageDividesByMatchedCount(t *testing.T) {
	s1 := core.NewScore()
	s1.Empty = false
	s1.DoubleScore = 2
	s2 := core.NewScore()
	s2.Empty = false
	s2.DoubleScore = 6

	segs := []Segment{
		{Model: constantModel{s1}},
		{Model: constantModel{s2}},
	}
	m := New(core.Regression, Average, segs, 0)

	score, err := m.Score(core.NewSample(0))
	require.NoError(t, err)
	require.Equal(t, 4.0, score.DoubleScore)
}

func TestClassificationAverageAlwaysIncludesFirstSegment(t *testing.T) {
	in := core.NewInterner(false)
	yes := in.FromString("yes", false)

	s1 := labelScore(yes, map[float64]float64{yes.Number: 1})

	segs := []Segment{
		{Model: constantModel{s1}}, // no predicate, always runs as segment 0
	}
	m := New(core.Classification, Average, segs, 1)

	score, err := m.Score(core.NewSample(0))
	require.NoError(t, err)

	p, ok := score.Probability(yes)
	require.True(t, ok)
	require.InDelta(t, 1.0, p, 1e-9)
}

func TestModelChainWritesIntermediateOutput(t *testing.T) {
	first := core.NewScore()
	first.Empty = false
	first.PredictedLabel = core.NewDouble(9)

	second := core.NewScore()
	second.Empty = false
	second.DoubleScore = 1

	segs := []Segment{
		{Model: constantModel{first}, HasChainOutput: true, ChainOutputIndex: 0},
		{Model: constantModel{second}},
	}
	m := New(core.Regression, ModelChain, segs, 0)

	sample := core.NewSample(1)
	score, err := m.Score(sample)
	require.NoError(t, err)
	require.Equal(t, 1.0, score.DoubleScore)
	require.True(t, sample.Get(0).Missing, "modelChain must not mutate the caller's sample")
}
