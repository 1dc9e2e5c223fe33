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

package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/predicate"
)

// buildTree constructs:
//
//	root
//	├── x <= 5  -> leaf "low"
//	└── x > 5   -> leaf "high"
func buildTree() *Node {
	low := NewNode(predicate.NewSimple(predicate.LessOrEqual, 0, core.NewDouble(5)), nil, core.NewDouble(0), true, nil, 10)
	high := NewNode(predicate.NewSimple(predicate.GreaterThan, 0, core.NewDouble(5)), nil, core.NewDouble(1), true, nil, 10)
	return NewNode(nil, []*Node{low, high}, core.Value{}, false, nil, 20)
}

func TestTreeModelScoreNavigatesToMatchingLeaf(t *testing.T) {
	m := New(buildTree(), false)

	sample := core.NewSample(1)
	sample.Set(0, core.NewDouble(3))

	score, err := m.Score(sample)
	require.NoError(t, err)
	require.False(t, score.Empty)
	require.Equal(t, 0.0, score.PredictedLabel.Number)
}

func TestTreeModelScoreOtherBranch(t *testing.T) {
	m := New(buildTree(), false)

	sample := core.NewSample(1)
	sample.Set(0, core.NewDouble(9))

	score, err := m.Score(sample)
	require.NoError(t, err)
	require.Equal(t, 1.0, score.PredictedLabel.Number)
}

func TestTreeModelNoMatchReturnsEmptyScore(t *testing.T) {
	root := NewNode(nil, []*Node{
		NewNode(predicate.NewSimple(predicate.Equal, 0, core.NewDouble(1)), nil, core.NewDouble(0), true, nil, 1),
	}, core.Value{}, false, nil, 1)
	m := New(root, false)

	sample := core.NewSample(1)
	sample.Set(0, core.NewDouble(99))

	score, err := m.Score(sample)
	require.NoError(t, err)
	require.True(t, score.Empty)
}

func TestTreeModelReturnLastPredictionOnDeadEnd(t *testing.T) {
	root := NewNode(nil, []*Node{
		NewNode(predicate.NewSimple(predicate.Equal, 0, core.NewDouble(1)), nil, core.NewDouble(0), true, nil, 1),
	}, core.NewDouble(7), true, nil, 1)
	m := New(root, true)

	sample := core.NewSample(1)
	sample.Set(0, core.NewDouble(99))

	score, err := m.Score(sample)
	require.NoError(t, err)
	require.False(t, score.Empty)
	require.Equal(t, 7.0, score.PredictedLabel.Number)
}

func TestTreeModelMissingFieldPropagates(t *testing.T) {
	m := New(buildTree(), false)

	sample := core.NewSample(1) // field 0 left missing

	_, err := m.Score(sample)
	require.Error(t, err)
	require.True(t, core.ErrMissing.Is(err))
}

func TestScoreDistributionProbabilities(t *testing.T) {
	yes := core.NewDouble(1)
	no := core.NewDouble(0)

	leaf := NewNode(nil, nil, yes, true, []ScoreDistribution{
		{Value: yes, RecordCount: 30},
		{Value: no, RecordCount: 10},
	}, 40)

	m := New(leaf, false)
	sample := core.NewSample(0)

	score, err := m.Score(sample)
	require.NoError(t, err)

	p, ok := score.Probability(yes)
	require.True(t, ok)
	require.InDelta(t, 0.75, p, 1e-9)

	p, ok = score.Probability(no)
	require.True(t, ok)
	require.InDelta(t, 0.25, p, 1e-9)
}
