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

// Package regression implements the PMML RegressionModel: one RegressionTable
// per predicted class (or a single table for a continuous target), each a
// linear combination of NumericPredictor, CategoricalPredictor and
// PredictorTerm terms, normalized by a norm.LinkFunction. Grounded on
// regressionmodel/regressionmodel.h, regressionmodel/regressiontable.h,
// regressionmodel/numericpredictor.h, regressionmodel/categoricalpredictor.h
// and regressionmodel/predictorterm.h.
package regression

import (
	"math"
	"strconv"

	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/norm"
)

// NumericPredictor is one <NumericPredictor>: coefficient * value^exponent.
// Grounded on regressionmodel/numericpredictor.h.
type NumericPredictor struct {
	FieldIndex  int
	Coefficient float64
	Exponent    float64
}

func (p NumericPredictor) term(sample *core.Sample) float64 {
	v := sample.Get(p.FieldIndex)
	if v.Missing {
		return 0
	}
	return p.Coefficient * math.Pow(v.Number, p.Exponent)
}

// CategoricalPredictor is one field's <CategoricalPredictor> set: a
// per-declared-value coefficient, selected by the sample's actual value for
// that field and contributing 0 for any other value (including missing).
// Grounded on regressionmodel/categoricalpredictor.h.
type CategoricalPredictor struct {
	FieldIndex   int
	Coefficients map[float64]float64
}

func (p CategoricalPredictor) term(sample *core.Sample) float64 {
	v := sample.Get(p.FieldIndex)
	if v.Missing {
		return 0
	}
	return p.Coefficients[v.Number]
}

// PredictorTerm is one <PredictorTerm>: coefficient times the product of
// several fields' values, none of which may be missing. Grounded on
// regressionmodel/predictorterm.h.
type PredictorTerm struct {
	Coefficient float64
	FieldIndexes []int
}

func (p PredictorTerm) term(sample *core.Sample) (float64, error) {
	partial := 1.0
	for _, idx := range p.FieldIndexes {
		v := sample.Get(idx)
		if v.Missing {
			return 0, core.ErrMissing.New("field#" + strconv.Itoa(idx))
		}
		partial *= v.Number
	}
	return p.Coefficient * partial, nil
}

// Table is one <RegressionTable>: the terms summing to a single class's (or
// the lone continuous target's) raw, pre-normalization score. Grounded on
// regressionmodel/regressiontable.h.
type Table struct {
	Intercept            float64
	TargetCategory       core.Value
	NumericPredictors    []NumericPredictor
	CategoricalPredictors []CategoricalPredictor
	PredictorTerms       []PredictorTerm
}

// Score sums the table's terms over its intercept.
func (t *Table) Score(sample *core.Sample) (float64, error) {
	partial := t.Intercept
	for _, p := range t.NumericPredictors {
		partial += p.term(sample)
	}
	for _, p := range t.CategoricalPredictors {
		partial += p.term(sample)
	}
	for _, p := range t.PredictorTerms {
		v, err := p.term(sample)
		if err != nil {
			return 0, err
		}
		partial += v
	}
	return partial, nil
}

// Model implements model.Model for a PMML RegressionModel: a continuous
// target scores its single Table and applies the link function to the raw
// value; a categorical target scores every class's Table and normalizes the
// resulting vector into a probability distribution. Grounded on
// regressionmodel/regressionmodel.h.
type Model struct {
	Function      core.MiningFunction
	Normalization norm.LinkFunction
	Tables        []*Table
}

// New builds a Model.
func New(function core.MiningFunction, normalization norm.LinkFunction, tables []*Table) *Model {
	return &Model{Function: function, Normalization: normalization, Tables: tables}
}

// Score evaluates the regression, mirroring regressionmodel.h's score_raw.
func (m *Model) Score(sample *core.Sample) (*core.Score, error) {
	switch m.Function {
	case core.Regression:
		return m.scoreRegression(sample)
	case core.Classification:
		return m.scoreClassification(sample)
	}
	return nil, core.ErrParsing.New(m.Function.String() + " not available in RegressionModel")
}

func (m *Model) scoreRegression(sample *core.Sample) (*core.Score, error) {
	raw, err := m.Tables[0].Score(sample)
	if err != nil {
		return nil, err
	}
	normalized := norm.Single(m.Normalization, raw)

	score := core.NewScore()
	score.Empty = false
	score.DoubleScore = normalized
	score.PredictedLabel = core.NewDouble(normalized)
	return score, nil
}

func (m *Model) scoreClassification(sample *core.Sample) (*core.Score, error) {
	raw := make([]float64, len(m.Tables))
	for i, table := range m.Tables {
		v, err := table.Score(sample)
		if err != nil {
			return nil, err
		}
		raw[i] = v
	}

	normalized, err := norm.Categorical(m.Normalization, raw)
	if err != nil {
		return nil, err
	}

	best := 0
	for i := 1; i < len(normalized); i++ {
		if normalized[i] > normalized[best] {
			best = i
		}
	}

	score := core.NewScore()
	score.Empty = false
	score.PredictedLabel = m.Tables[best].TargetCategory
	score.DoubleScore = normalized[best]
	for i, table := range m.Tables {
		score.Probabilities[table.TargetCategory.Number] = normalized[i]
	}
	return score, nil
}
