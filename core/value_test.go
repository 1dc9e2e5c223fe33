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

package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInferValue(t *testing.T) {
	in := NewInterner(false)

	tests := []struct {
		name   string
		input  string
		number float64
	}{
		{"integer", "42", 42},
		{"negative integer", "-7", -7},
		{"float", "3.14", 3.14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := in.InferValue(tt.input, false)
			require.False(t, v.Missing)
			require.Equal(t, tt.number, v.Number)
		})
	}
}

func TestInferValueOutOfRangeIntegerIsNumber(t *testing.T) {
	in := NewInterner(false)
	a := in.InferValue("99999999999", false)
	b := in.InferValue("99999999999", false)
	require.Equal(t, a.Number, b.Number, "same out-of-range literal yields the same number")
	require.Equal(t, 99999999999.0, a.Number)
}

func TestInferValueString(t *testing.T) {
	in := NewInterner(false)
	a := in.InferValue("hello", false)
	b := in.InferValue("hello", false)
	c := in.InferValue("world", false)

	require.Equal(t, a.Number, b.Number, "interning the same string twice yields the same id")
	require.NotEqual(t, a.Number, c.Number)
}

func TestInternerHashedMode(t *testing.T) {
	in := NewInterner(true)
	a := in.FromString("hello", false)
	b := in.FromString("hello", false)
	require.Equal(t, a.Number, b.Number)
}

func TestFromTypedBoolean(t *testing.T) {
	in := NewInterner(false)
	v, err := in.FromTyped("True", Boolean, false)
	require.NoError(t, err)
	require.Equal(t, 1.0, v.Number)

	v, err = in.FromTyped("0", Boolean, false)
	require.NoError(t, err)
	require.Equal(t, 0.0, v.Number)
}

func TestFromTypedDoubleInvalid(t *testing.T) {
	in := NewInterner(false)
	_, err := in.FromTyped("not-a-number", Double, false)
	require.Error(t, err)
	require.True(t, ErrInvalid.Is(err))
}

func TestValueArithmetic(t *testing.T) {
	a := NewDouble(3)
	b := NewDouble(4)

	require.Equal(t, 7.0, a.Add(b).Number)
	require.Equal(t, -1.0, a.Sub(b).Number)
	require.Equal(t, 12.0, a.Mul(b).Number)
	require.Equal(t, 1.0, a.Diff(b).Number)
}

func TestValueComparison(t *testing.T) {
	a := NewDouble(3)
	b := NewDouble(4)

	require.True(t, a.Less(b))
	require.True(t, b.Greater(a))
	require.False(t, a.Equal(b))
	require.True(t, a.Equal(NewDouble(3)))
}

func TestSumMinMaxAvg(t *testing.T) {
	values := []Value{NewDouble(1), NewDouble(5), NewDouble(-3)}

	require.Equal(t, 3.0, Sum(values).Number)
	require.Equal(t, -3.0, Min(values).Number)
	require.Equal(t, 5.0, Max(values).Number)
	require.Equal(t, 1.0, Avg(values).Number)
}

func TestValueSetBoundary(t *testing.T) {
	// spec.md §8: a SimpleSetPredicate with exactly 150 members and 151
	// members must return identical truth values for the same query.
	makeValues := func(n int) []Value {
		values := make([]Value, n)
		for i := 0; i < n; i++ {
			values[i] = NewDouble(float64(i))
		}
		return values
	}

	set150 := NewValueSet(makeValues(150))
	set151 := NewValueSet(makeValues(151))

	require.True(t, set150.Contains(NewDouble(10)))
	require.True(t, set151.Contains(NewDouble(10)))
	require.False(t, set150.Contains(NewDouble(-1)))
	require.False(t, set151.Contains(NewDouble(-1)))
	require.True(t, set151.Contains(NewDouble(150)))
}
