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

package field

import (
	"strconv"

	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/expression"
)

// Prediction is the narrow slice of a model's scoring result an OutputField
// expression needs: the winning label/value and, for classification, the
// per-class probability table. Model packages implement this directly
// against their own score type, so field never imports model.
type Prediction interface {
	PredictedValue() core.Value
	Probability(className core.Value) (float64, bool)
}

// OutputExpressionType selects which RESULT-FEATURE an OutputField exposes.
// Grounded on output/outputexpressiontype.h.
type OutputExpressionType int

const (
	PredictedValueFeature OutputExpressionType = iota
	TransformedValueFeature
	ProbabilityFeature
)

// OutputExpression is the postprocessing counterpart of expression.Expression:
// it reads both the sample and the model's Prediction.
type OutputExpression interface {
	Eval(sample *core.Sample, prediction Prediction) (core.Value, error)
}

// PredictedValueExpression passes the model's winning value through
// unchanged. Grounded on output/predictedValue.h.
type PredictedValueExpression struct{}

func (PredictedValueExpression) Eval(sample *core.Sample, prediction Prediction) (core.Value, error) {
	return prediction.PredictedValue(), nil
}

// ProbabilityExpression reads the probability assigned to one declared
// class. Grounded on output/probability.h.
type ProbabilityExpression struct {
	TargetValue core.Value
}

func (p ProbabilityExpression) Eval(sample *core.Sample, prediction Prediction) (core.Value, error) {
	prob, ok := prediction.Probability(p.TargetValue)
	if !ok {
		return core.MissingValue, nil
	}
	return core.NewDouble(prob), nil
}

// TransformedValueExpression wraps an ordinary expression.Expression,
// evaluated purely against the sample. Grounded on output/transformedvalue.h.
type TransformedValueExpression struct {
	Expression expression.Expression
}

func (t TransformedValueExpression) Eval(sample *core.Sample, prediction Prediction) (core.Value, error) {
	return t.Expression.Eval(sample)
}

// OutputField declares one postprocessing feature the model exposes beyond
// the raw prediction: the predicted value itself, a class probability, or an
// arbitrary transformation. Grounded on output/outputfield.h.
type OutputField struct {
	Name       string
	DataType   core.DataType
	OpType     core.OpType
	Index      int
	Derived    bool
	Expression OutputExpression
}

// NewOutputField builds an OutputField.
func NewOutputField(name string, dataType core.DataType, opType core.OpType, index int, derived bool, expr OutputExpression) *OutputField {
	return &OutputField{Name: name, DataType: dataType, OpType: opType, Index: index, Derived: derived, Expression: expr}
}

// Prepare evaluates the field's expression and writes it into sample,
// but only if that slot is still missing, matching
// Sample::change_value_if_missing in output/outputfield.h.
func (o *OutputField) Prepare(sample *core.Sample, prediction Prediction) error {
	v, err := o.Expression.Eval(sample, prediction)
	if err != nil {
		return err
	}
	sample.SetIfMissing(o.Index, v)
	return nil
}

// NumericValue renders the field's resolved sample slot as a float64,
// matching InternalScore::num_outputs population for non-string fields.
func (o *OutputField) NumericValue(sample *core.Sample) float64 {
	return sample.Get(o.Index).Number
}

// StringValue renders the field's resolved sample slot as text, falling
// back to the numeric rendering when Text was never populated (i.e. regex
// support/string retention is off).
func (o *OutputField) StringValue(sample *core.Sample) string {
	v := sample.Get(o.Index)
	if v.Text != "" {
		return v.Text
	}
	return strconv.FormatFloat(v.Number, 'g', -1, 64)
}

// OutputDictionary is the ordered collection of OutputFields a model
// declares, topologically ordered so a TransformedValue referencing another
// OutputField's result sees it already resolved. Grounded on
// output/outputdictionary.h.
type OutputDictionary struct {
	Fields []*OutputField
	byName map[string]*OutputField
}

// NewOutputDictionary wraps fields, which callers must already have ordered
// so each field's dependencies precede it (see dag.Build).
func NewOutputDictionary(fields []*OutputField) *OutputDictionary {
	od := &OutputDictionary{Fields: fields, byName: make(map[string]*OutputField, len(fields))}
	for _, f := range fields {
		od.byName[f.Name] = f
	}
	return od
}

func (od *OutputDictionary) Contains(name string) bool {
	_, ok := od.byName[name]
	return ok
}

func (od *OutputDictionary) Get(name string) *OutputField {
	return od.byName[name]
}

// Prepare runs every declared OutputField in dependency order.
func (od *OutputDictionary) Prepare(sample *core.Sample, prediction Prediction) error {
	for _, f := range od.Fields {
		if err := f.Prepare(sample, prediction); err != nil {
			return err
		}
	}
	return nil
}
