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

import "github.com/amadeus-pmml/go-pmml/core"

// MiningField extends a DataField with its role in a MiningSchema (active,
// target, supplementary, ...) and its declared missing/invalid/outlier
// handling. Grounded on core/miningfield.h.
type MiningField struct {
	DataField

	Usage core.FieldUsageType

	HasOutlierTreatment bool
	OutlierTreatment     core.OutlierTreatmentMethod
	HasLowValue          bool
	LowValue             core.Value
	HasHighValue         bool
	HighValue            core.Value

	HasMissingValueReplacement bool
	MissingValueReplacement    core.Value

	HasInvalidTreatment bool
	InvalidTreatment    core.InvalidValueTreatmentMethod
}

// NewMiningField builds a MiningField over an already-built DataField.
func NewMiningField(df DataField, usage core.FieldUsageType) *MiningField {
	return &MiningField{DataField: df, Usage: usage}
}

// HandleMissing returns the value substituted for a missing input: the
// field's declared replacement, or an explicit missing Value if none was
// declared.
func (m *MiningField) HandleMissing() core.Value {
	if m.HasMissingValueReplacement {
		return m.MissingValueReplacement
	}
	return core.MissingValue
}

// IsOutlier reports whether value falls outside the field's declared
// [LowValue, HighValue] bounds. A field with no low/high bound declared is
// never an outlier, matching core/miningfield.h's is_outlier: absent bounds
// imply an implicit "asIs" treatment.
func (m *MiningField) IsOutlier(value core.Value) bool {
	if !m.HasOutlierTreatment || !m.HasLowValue || !m.HasHighValue {
		return false
	}
	return value.Less(m.LowValue) || value.Greater(m.HighValue)
}

// HandleOutlier applies the field's declared OutlierTreatment to value.
func (m *MiningField) HandleOutlier(value core.Value) core.Value {
	switch m.OutlierTreatment {
	case core.AsMissingValues:
		return m.HandleMissing()
	case core.AsExtremeValues:
		if value.Less(m.LowValue) {
			return m.LowValue
		}
		return m.HighValue
	default:
		return value
	}
}

// IsInvalid reports whether value fails the field's declared DataField
// constraints.
func (m *MiningField) IsInvalid(sample *core.Sample) (bool, error) {
	ok, err := m.Validate(sample)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// HandleInvalid applies the field's declared InvalidTreatment to value,
// returning core.ErrInvalid when the treatment is ReturnInvalid.
func (m *MiningField) HandleInvalid(value core.Value) (core.Value, error) {
	switch m.InvalidTreatment {
	case core.ReturnInvalid:
		return core.Value{}, core.ErrInvalid.New(m.Name, "value fails declared constraints")
	case core.AsMissing:
		return m.HandleMissing(), nil
	default:
		return value, nil
	}
}
