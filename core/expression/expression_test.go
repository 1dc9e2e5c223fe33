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

package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/expression/function"
	"github.com/amadeus-pmml/go-pmml/core/predicate"
)

func TestConstant(t *testing.T) {
	c := NewConstant(core.NewDouble(42))
	v, err := c.Eval(core.NewSample(0))
	require.NoError(t, err)
	require.Equal(t, 42.0, v.Number)
}

func TestFieldRefMissing(t *testing.T) {
	sample := core.NewSample(1)

	f := NewFieldRef(0)
	v, err := f.Eval(sample)
	require.NoError(t, err)
	require.True(t, v.Missing)

	fWithDefault := NewFieldRefWithMapMissingTo(0, core.NewDouble(-1))
	v, err = fWithDefault.Eval(sample)
	require.NoError(t, err)
	require.Equal(t, -1.0, v.Number)
}

func TestFieldRefPresent(t *testing.T) {
	sample := core.NewSample(1)
	sample.Set(0, core.NewDouble(7))

	f := NewFieldRef(0)
	v, err := f.Eval(sample)
	require.NoError(t, err)
	require.Equal(t, 7.0, v.Number)
}

func TestNormDiscrete(t *testing.T) {
	in := core.NewInterner(false)
	sample := core.NewSample(1)
	sample.Set(0, in.FromString("red", false))

	n := NewNormDiscrete(0, in.FromString("red", false))
	v, err := n.Eval(sample)
	require.NoError(t, err)
	require.Equal(t, 1.0, v.Number)

	other := NewNormDiscrete(0, in.FromString("blue", false))
	v, err = other.Eval(sample)
	require.NoError(t, err)
	require.Equal(t, 0.0, v.Number)
}

func TestNormContinuousInterpolates(t *testing.T) {
	sample := core.NewSample(1)
	sample.Set(0, core.NewDouble(5))

	n := NewNormContinuous(0, []LinearNorm{{Orig: 0, Norm: 0}, {Orig: 10, Norm: 1}}, core.AsIs)
	v, err := n.Eval(sample)
	require.NoError(t, err)
	require.InDelta(t, 0.5, v.Number, 1e-9)
}

func TestNormContinuousOutlierAsExtreme(t *testing.T) {
	sample := core.NewSample(1)
	sample.Set(0, core.NewDouble(100))

	n := NewNormContinuous(0, []LinearNorm{{Orig: 0, Norm: 0}, {Orig: 10, Norm: 1}}, core.AsExtremeValues)
	v, err := n.Eval(sample)
	require.NoError(t, err)
	require.Equal(t, 1.0, v.Number)
}

func TestNormContinuousOutlierAsMissing(t *testing.T) {
	sample := core.NewSample(1)
	sample.Set(0, core.NewDouble(-5))

	n := NewNormContinuous(0, []LinearNorm{{Orig: 0, Norm: 0}, {Orig: 10, Norm: 1}}, core.AsMissingValues)
	v, err := n.Eval(sample)
	require.NoError(t, err)
	require.True(t, v.Missing)
}

func TestDiscretize(t *testing.T) {
	sample := core.NewSample(1)
	sample.Set(0, core.NewDouble(5))

	low := DiscretizeBin{
		Interval: predicate.NewSimple(predicate.LessThan, 0, core.NewDouble(0)),
		Value:    core.NewDouble(-1),
	}
	mid := DiscretizeBin{
		Interval: predicate.NewCompound(predicate.And, []*predicate.Predicate{
			predicate.NewSimple(predicate.GreaterOrEqual, 0, core.NewDouble(0)),
			predicate.NewSimple(predicate.LessThan, 0, core.NewDouble(10)),
		}),
		Value: core.NewDouble(0),
	}

	d := NewDiscretize(0, []DiscretizeBin{low, mid}).WithDefaultValue(core.NewDouble(1))
	v, err := d.Eval(sample)
	require.NoError(t, err)
	require.Equal(t, 0.0, v.Number)
}

func TestDiscretizeDefault(t *testing.T) {
	sample := core.NewSample(1)
	sample.Set(0, core.NewDouble(100))

	mid := DiscretizeBin{
		Interval: predicate.NewCompound(predicate.And, []*predicate.Predicate{
			predicate.NewSimple(predicate.GreaterOrEqual, 0, core.NewDouble(0)),
			predicate.NewSimple(predicate.LessThan, 0, core.NewDouble(10)),
		}),
		Value: core.NewDouble(0),
	}

	d := NewDiscretize(0, []DiscretizeBin{mid}).WithDefaultValue(core.NewDouble(99))
	v, err := d.Eval(sample)
	require.NoError(t, err)
	require.Equal(t, 99.0, v.Number)
}

func TestMapValues(t *testing.T) {
	in := core.NewInterner(false)
	sample := core.NewSample(2)
	sample.Set(0, in.FromString("US", false))
	sample.Set(1, in.FromString("CA", false))

	m := NewMapValues([]int{0, 1}).WithDefaultValue(core.NewDouble(-1))
	m.AddRow([]core.Value{in.FromString("US", false), in.FromString("CA", false)}, core.NewDouble(1))
	m.AddRow([]core.Value{in.FromString("US", false), in.FromString("NY", false)}, core.NewDouble(2))

	v, err := m.Eval(sample)
	require.NoError(t, err)
	require.Equal(t, 1.0, v.Number)
}

func TestMapValuesMiss(t *testing.T) {
	in := core.NewInterner(false)
	sample := core.NewSample(1)
	sample.Set(0, in.FromString("unseen", false))

	m := NewMapValues([]int{0}).WithDefaultValue(core.NewDouble(-1))
	m.AddRow([]core.Value{in.FromString("known", false)}, core.NewDouble(1))

	v, err := m.Eval(sample)
	require.NoError(t, err)
	require.Equal(t, -1.0, v.Number)
}

func TestApplyArithmetic(t *testing.T) {
	reg := function.NewRegistry(false)
	sample := core.NewSample(2)
	sample.Set(0, core.NewDouble(3))
	sample.Set(1, core.NewDouble(4))

	apply, ok := NewApply(reg, "+", []Expression{NewFieldRef(0), NewFieldRef(1)}, core.ReturnInvalid)
	require.True(t, ok)

	v, err := apply.Eval(sample)
	require.NoError(t, err)
	require.Equal(t, 7.0, v.Number)
}

func TestApplyDivisionByZeroReturnsInvalid(t *testing.T) {
	reg := function.NewRegistry(false)
	sample := core.NewSample(2)
	sample.Set(0, core.NewDouble(1))
	sample.Set(1, core.NewDouble(0))

	apply, ok := NewApply(reg, "/", []Expression{NewFieldRef(0), NewFieldRef(1)}, core.ReturnInvalid)
	require.True(t, ok)

	_, err := apply.Eval(sample)
	require.Error(t, err)
}

func TestApplyDivisionByZeroAsMissing(t *testing.T) {
	reg := function.NewRegistry(false)
	sample := core.NewSample(2)
	sample.Set(0, core.NewDouble(1))
	sample.Set(1, core.NewDouble(0))

	apply, ok := NewApply(reg, "/", []Expression{NewFieldRef(0), NewFieldRef(1)}, core.AsMissing)
	require.True(t, ok)

	v, err := apply.Eval(sample)
	require.NoError(t, err)
	require.True(t, v.Missing)
}

func TestApplyMissingInputShortCircuits(t *testing.T) {
	reg := function.NewRegistry(false)
	sample := core.NewSample(2)
	sample.Set(0, core.NewDouble(1))

	apply, ok := NewApply(reg, "+", []Expression{NewFieldRef(0), NewFieldRef(1)}, core.ReturnInvalid)
	require.True(t, ok)

	v, err := apply.Eval(sample)
	require.NoError(t, err)
	require.True(t, v.Missing)
}

func TestApplyUnknownFunction(t *testing.T) {
	reg := function.NewRegistry(false)
	_, ok := NewApply(reg, "nope", nil, core.ReturnInvalid)
	require.False(t, ok)
}
