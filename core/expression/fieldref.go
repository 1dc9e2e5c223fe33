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

// FieldRef reads another field's current sample slot, substituting
// MapMissingTo when that slot is missing. Grounded on
// expression/fieldref.h.
type FieldRef struct {
	FieldIndex      int
	HasMapMissingTo bool
	MapMissingTo    core.Value
}

// NewFieldRef builds a FieldRef with no missing-value substitution.
func NewFieldRef(fieldIndex int) *FieldRef {
	return &FieldRef{FieldIndex: fieldIndex}
}

// NewFieldRefWithMapMissingTo builds a FieldRef that substitutes
// mapMissingTo for a missing input.
func NewFieldRefWithMapMissingTo(fieldIndex int, mapMissingTo core.Value) *FieldRef {
	return &FieldRef{FieldIndex: fieldIndex, HasMapMissingTo: true, MapMissingTo: mapMissingTo}
}

func (f *FieldRef) Eval(sample *core.Sample) (core.Value, error) {
	v := sample.Get(f.FieldIndex)
	if v.Missing && f.HasMapMissingTo {
		return f.MapMissingTo, nil
	}
	return v, nil
}
