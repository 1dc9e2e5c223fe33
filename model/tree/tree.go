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

// Package tree implements the PMML TreeModel: a decision tree whose nodes
// carry a Predicate and a score, navigated recursively per sample. Grounded
// on treemodel/treemodel.h, treemodel/node.h and
// treemodel/scoredistribution.h.
package tree

import (
	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/predicate"
)

// ScoreDistribution is one declared <ScoreDistribution> under a Node: the
// record count backing a class's share of that node's probability
// distribution. Grounded on treemodel/scoredistribution.h.
type ScoreDistribution struct {
	Value       core.Value
	RecordCount float64
}

// buildScore turns a Node's declared score (its optional simple "score"
// attribute plus its ScoreDistribution children) into a core.Score,
// mirroring TreeScore's constructor and get_probabilities: each class's
// probability is its record count over the total across all distributions.
func buildScore(simpleScore core.Value, hasSimpleScore bool, distributions []ScoreDistribution) *core.Score {
	score := core.NewScore()
	score.Empty = false

	if hasSimpleScore {
		score.PredictedLabel = simpleScore
		score.DoubleScore = simpleScore.Number
	}

	total := 0.0
	for _, d := range distributions {
		total += d.RecordCount
	}
	for _, d := range distributions {
		p := 0.0
		if total > 0 {
			p = d.RecordCount / total
		}
		score.Probabilities[d.Value.Number] = p
	}

	return score
}

// Node is one <Node> of the decision tree: a Predicate guarding entry, the
// score to report if evaluation stops here, and the child nodes to try
// next. Grounded on treemodel/node.h.
type Node struct {
	Predicate   *predicate.Predicate
	Children    []*Node
	Leaf        bool
	RecordCount float64
	Score       *core.Score
}

// NewNode builds a Node. pred may be nil for the root Node, which the
// original always enters unconditionally.
func NewNode(pred *predicate.Predicate, children []*Node, simpleScore core.Value, hasSimpleScore bool, distributions []ScoreDistribution, recordCount float64) *Node {
	return &Node{
		Predicate:   pred,
		Children:    children,
		Leaf:        len(children) == 0,
		RecordCount: recordCount,
		Score:       buildScore(simpleScore, hasSimpleScore, distributions),
	}
}

func (n *Node) match(sample *core.Sample) (bool, error) {
	if n.Predicate == nil {
		return true, nil
	}
	return n.Predicate.Eval(sample)
}

// Model implements model.Model for a PMML TreeModel: classification and
// regression trees are scored identically, by walking from the root to the
// first matching leaf. Grounded on treemodel/treemodel.h.
type Model struct {
	Root                 *Node
	ReturnLastPrediction bool
}

// New builds a Model. returnLastPrediction mirrors noTrueChildStrategy ==
// "returnLastPrediction": when no child predicate matches, the traversal
// reports the current (non-leaf) node's own score instead of failing.
func New(root *Node, returnLastPrediction bool) *Model {
	return &Model{Root: root, ReturnLastPrediction: returnLastPrediction}
}

// Score walks the tree from the root, returning the first leaf's score
// reached by a chain of matching predicates. Grounded on treemodel.h's
// scoreR: a recursive call that does not terminate in a matching leaf (or,
// with ReturnLastPrediction, a dead end) propagates no match at all, so the
// caller returns an empty Score rather than an arbitrary partial one.
func (m *Model) Score(sample *core.Sample) (*core.Score, error) {
	score, matched, err := m.scoreR(sample, m.Root)
	if err != nil {
		return nil, err
	}
	if !matched {
		return core.NewScore(), nil
	}
	return score, nil
}

func (m *Model) scoreR(sample *core.Sample, node *Node) (*core.Score, bool, error) {
	if node.Leaf {
		return node.Score, true, nil
	}

	for _, child := range node.Children {
		ok, err := child.match(sample)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue
		}

		result, matched, err := m.scoreR(sample, child)
		if err != nil {
			return nil, false, err
		}
		if matched {
			return result, true, nil
		}
	}

	if m.ReturnLastPrediction {
		return node.Score, true, nil
	}
	return nil, false, nil
}
