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

import "github.com/amadeus-pmml/go-pmml/core"

// NormDiscrete one-hot encodes a single categorical value: it evaluates to
// 1 when the referenced field equals Value, 0 otherwise, or MapMissingTo
// when the field is missing. Grounded on expression/normdiscrete.h.
type NormDiscrete struct {
	FieldIndex      int
	Value           core.Value
	HasMapMissingTo bool
	MapMissingTo    core.Value
}

func NewNormDiscrete(fieldIndex int, value core.Value) *NormDiscrete {
	return &NormDiscrete{FieldIndex: fieldIndex, Value: value}
}

func NewNormDiscreteWithMapMissingTo(fieldIndex int, value, mapMissingTo core.Value) *NormDiscrete {
	return &NormDiscrete{FieldIndex: fieldIndex, Value: value, HasMapMissingTo: true, MapMissingTo: mapMissingTo}
}

func (n *NormDiscrete) Eval(sample *core.Sample) (core.Value, error) {
	input := sample.Get(n.FieldIndex)
	if input.Missing {
		if n.HasMapMissingTo {
			return n.MapMissingTo, nil
		}
		return core.MissingValue, nil
	}
	if input.Equal(n.Value) {
		return core.NewDouble(1), nil
	}
	return core.NewDouble(0), nil
}
