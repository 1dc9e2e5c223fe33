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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/expression"
	"github.com/amadeus-pmml/go-pmml/core/predicate"
)

func TestDataFieldValidateNoConstraints(t *testing.T) {
	df := NewDataField("age", core.Double, core.Continuous, 0)
	sample := core.NewSample(1)
	ok, err := df.Validate(sample)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDataFieldValidateWithConstraints(t *testing.T) {
	df := NewDataField("age", core.Double, core.Continuous, 0)
	df.Constraints = predicate.NewCompound(predicate.And, []*predicate.Predicate{
		predicate.NewSimple(predicate.GreaterOrEqual, 0, core.NewDouble(0)),
		predicate.NewSimple(predicate.LessOrEqual, 0, core.NewDouble(120)),
	})

	sample := core.NewSample(1)
	sample.Set(0, core.NewDouble(150))
	ok, err := df.Validate(sample)
	require.NoError(t, err)
	require.False(t, ok)

	sample.Set(0, core.NewDouble(30))
	ok, err = df.Validate(sample)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMiningFieldOutlierHandling(t *testing.T) {
	df := *NewDataField("age", core.Double, core.Continuous, 0)
	mf := NewMiningField(df, core.Active)
	mf.HasOutlierTreatment = true
	mf.OutlierTreatment = core.AsExtremeValues
	mf.HasLowValue = true
	mf.LowValue = core.NewDouble(0)
	mf.HasHighValue = true
	mf.HighValue = core.NewDouble(100)

	require.True(t, mf.IsOutlier(core.NewDouble(150)))
	require.Equal(t, 100.0, mf.HandleOutlier(core.NewDouble(150)).Number)
	require.False(t, mf.IsOutlier(core.NewDouble(50)))
}

func TestMiningFieldMissingHandling(t *testing.T) {
	df := *NewDataField("age", core.Double, core.Continuous, 0)
	mf := NewMiningField(df, core.Active)
	require.True(t, mf.HandleMissing().Missing)

	mf.HasMissingValueReplacement = true
	mf.MissingValueReplacement = core.NewDouble(-1)
	require.Equal(t, -1.0, mf.HandleMissing().Number)
}

func TestMiningSchemaPrepare(t *testing.T) {
	interner := core.NewInterner(false)

	ageField := *NewDataField("age", core.Double, core.Continuous, 0)
	ageField.HasMissingReplacement = false
	ageMiningField := NewMiningField(ageField, core.Active)

	nameField := *NewDataField("name", core.String, core.Categorical, 1)
	nameMiningField := NewMiningField(nameField, core.Active)

	ms := NewMiningSchema([]*MiningField{ageMiningField, nameMiningField})

	sample := core.NewSample(2)
	err := ms.Prepare(sample, map[string]string{"age": "30", "name": "alice"}, interner)
	require.NoError(t, err)
	require.Equal(t, 30.0, sample.Get(0).Number)
	require.False(t, sample.Get(1).Missing)
}

func TestMiningSchemaPrepareMissingField(t *testing.T) {
	interner := core.NewInterner(false)

	ageField := *NewDataField("age", core.Double, core.Continuous, 0)
	ageMiningField := NewMiningField(ageField, core.Active)
	ageMiningField.HasMissingValueReplacement = true
	ageMiningField.MissingValueReplacement = core.NewDouble(18)

	ms := NewMiningSchema([]*MiningField{ageMiningField})

	sample := core.NewSample(1)
	err := ms.Prepare(sample, map[string]string{}, interner)
	require.NoError(t, err)
	require.Equal(t, 18.0, sample.Get(0).Number)
}

func TestMiningSchemaSkipsTarget(t *testing.T) {
	interner := core.NewInterner(false)

	targetField := *NewDataField("label", core.Double, core.Categorical, 0)
	targetMiningField := NewMiningField(targetField, core.Target)

	ms := NewMiningSchema([]*MiningField{targetMiningField})
	require.True(t, ms.HasTarget)
	require.Equal(t, 0, ms.TargetIndex)

	sample := core.NewSample(1)
	err := ms.Prepare(sample, map[string]string{}, interner)
	require.NoError(t, err)
	require.True(t, sample.Get(0).Missing, "target field must not be overwritten by Prepare")
}

func TestDerivedFieldPrepare(t *testing.T) {
	sample := core.NewSample(2)
	sample.Set(0, core.NewDouble(3))

	df := NewDerivedField("doubled", core.Double, core.Continuous, 1,
		expressionApply(t), []string{"x"})

	err := df.Prepare(sample)
	require.NoError(t, err)
	require.Equal(t, 6.0, sample.Get(1).Number)
}

func expressionApply(t *testing.T) expression.Expression {
	t.Helper()
	return applyDoubling{}
}

type applyDoubling struct{}

func (applyDoubling) Eval(sample *core.Sample) (core.Value, error) {
	v := sample.Get(0)
	return v.Add(v), nil
}

type fakePrediction struct {
	value core.Value
	probs map[float64]float64
}

func (f fakePrediction) PredictedValue() core.Value { return f.value }

func (f fakePrediction) Probability(className core.Value) (float64, bool) {
	p, ok := f.probs[className.Number]
	return p, ok
}

func TestOutputFieldPredictedValue(t *testing.T) {
	sample := core.NewSample(1)
	of := NewOutputField("predicted", core.Double, core.Continuous, 0, false, PredictedValueExpression{})

	err := of.Prepare(sample, fakePrediction{value: core.NewDouble(1)})
	require.NoError(t, err)
	require.Equal(t, 1.0, sample.Get(0).Number)
}

func TestOutputFieldProbability(t *testing.T) {
	sample := core.NewSample(1)
	of := NewOutputField("prob_yes", core.Double, core.Continuous, 0, false,
		ProbabilityExpression{TargetValue: core.NewDouble(1)})

	pred := fakePrediction{probs: map[float64]float64{1: 0.75}}
	err := of.Prepare(sample, pred)
	require.NoError(t, err)
	require.Equal(t, 0.75, sample.Get(0).Number)
}

func TestOutputDictionaryPrepareInOrder(t *testing.T) {
	sample := core.NewSample(2)
	of1 := NewOutputField("predicted", core.Double, core.Continuous, 0, false, PredictedValueExpression{})
	of2 := NewOutputField("prob_yes", core.Double, core.Continuous, 1, false,
		ProbabilityExpression{TargetValue: core.NewDouble(1)})

	od := NewOutputDictionary([]*OutputField{of1, of2})
	require.True(t, od.Contains("predicted"))

	pred := fakePrediction{value: core.NewDouble(1), probs: map[float64]float64{1: 0.9}}
	err := od.Prepare(sample, pred)
	require.NoError(t, err)
	require.Equal(t, 1.0, sample.Get(0).Number)
	require.Equal(t, 0.9, sample.Get(1).Number)
}
