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

package pmml

import (
	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/field"
	"github.com/amadeus-pmml/go-pmml/core/target"
)

// Prediction is one Model.Score result: the winning value, its
// double-precision rendering, the full class-probability distribution (for
// classification), and whatever the document's Output section declared.
// Grounded on core/internal_score.h.
type Prediction struct {
	score    *core.Score
	interner *core.Interner
	outputs  *field.OutputDictionary
	sample   *core.Sample
}

func newPrediction(score *core.Score, sample *core.Sample, outputs *field.OutputDictionary, interner *core.Interner) *Prediction {
	return &Prediction{score: score, sample: sample, outputs: outputs, interner: interner}
}

// AsString renders the winning value as text: its interned string, if the
// label came from a string field, otherwise its numeric rendering.
func (p *Prediction) AsString() string {
	return renderValue(p.score.PredictedLabel, p.interner)
}

// AsDouble returns the score's DoubleScore: the regression estimate, or for
// classification a tree leaf's label id (interned/hashed) or, for regression
// and ensemble classifiers, the winning class's probability.
func (p *Prediction) AsDouble() float64 {
	return p.score.DoubleScore
}

// Distribution returns the full per-class probability table, keyed by each
// class's string rendering. Empty for a regression model.
func (p *Prediction) Distribution() map[string]float64 {
	dist := make(map[string]float64, len(p.score.Probabilities))
	for id, prob := range p.score.Probabilities {
		label := renderValue(core.Value{Number: id}, p.interner)
		dist[label] = prob
	}
	return dist
}

// NumOutputs returns every declared OutputField whose data type is not
// String, resolved to a numeric value, keyed by field name.
func (p *Prediction) NumOutputs() map[string]float64 {
	out := make(map[string]float64)
	if p.outputs == nil {
		return out
	}
	for _, f := range p.outputs.Fields {
		if f.DataType == core.String {
			continue
		}
		out[f.Name] = f.NumericValue(p.sample)
	}
	return out
}

// StrOutputs returns every declared OutputField of data type String,
// resolved to its string rendering, keyed by field name.
func (p *Prediction) StrOutputs() map[string]string {
	out := make(map[string]string)
	if p.outputs == nil {
		return out
	}
	for _, f := range p.outputs.Fields {
		if f.DataType != core.String {
			continue
		}
		out[f.Name] = f.StringValue(p.sample)
	}
	return out
}

// renderValue renders v as a human-readable string: the Interner's
// recorded text when v's number is a known interned/hashed id, falling back
// to its plain numeric rendering for a true double or boolean value.
func renderValue(v core.Value, interner *core.Interner) string {
	if v.Missing {
		return ""
	}
	if s, ok := interner.Text(v.Number); ok {
		return s
	}
	return target.FormatDouble(v.Number)
}
