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

// Package field implements the PMML field catalog: DataField, DerivedField,
// MiningField/MiningSchema, and OutputField/OutputDictionary. Grounded on
// core/datafield.h, core/derivedfield.h, core/miningfield.h,
// core/miningschema.h, and output/outputfield.h.
package field

import (
	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/predicate"
)

// DataField declares one feature of the data dictionary: its name, type,
// and (optionally) the constraints admissible values must satisfy.
// Constraints is nil when the field declares none.
type DataField struct {
	Name                string
	DataType            core.DataType
	OpType              core.OpType
	Index               int
	Constraints         *predicate.Predicate
	HasMissingReplacement bool
	MissingReplacement  core.Value
	NumValidValues      int
}

// NewDataField builds a DataField with no constraints.
func NewDataField(name string, dataType core.DataType, opType core.OpType, index int) *DataField {
	return &DataField{Name: name, DataType: dataType, OpType: opType, Index: index, NumValidValues: 1}
}

// Validate reports whether sample satisfies the field's declared
// constraints (an empty Constraints tree always validates).
func (f *DataField) Validate(sample *core.Sample) (bool, error) {
	if f.Constraints == nil {
		return true, nil
	}
	return f.Constraints.Eval(sample)
}
