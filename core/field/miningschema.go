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

// MiningSchema is the ordered collection of MiningFields a model declares,
// plus a pointer to whichever one (if any) is the prediction target.
// Grounded on core/miningschema.h.
type MiningSchema struct {
	Fields        []*MiningField
	byName        map[string]*MiningField
	TargetIndex   int
	HasTarget     bool
}

// NewMiningSchema builds a MiningSchema from fields, locating the (at most
// one) field whose Usage is core.Target.
func NewMiningSchema(fields []*MiningField) *MiningSchema {
	ms := &MiningSchema{Fields: fields, byName: make(map[string]*MiningField, len(fields)), TargetIndex: -1}
	for _, f := range fields {
		ms.byName[f.Name] = f
		if f.Usage == core.Target {
			ms.TargetIndex = f.Index
			ms.HasTarget = true
		}
	}
	return ms
}

// Get returns the MiningField declared under name, or nil if none exists.
func (ms *MiningSchema) Get(name string) *MiningField {
	return ms.byName[name]
}

// Contains reports whether name is declared in the schema.
func (ms *MiningSchema) Contains(name string) bool {
	_, ok := ms.byName[name]
	return ok
}

// Prepare converts a raw name->text input map into a Sample, applying each
// field's missing/invalid/outlier handling. Grounded on
// core/miningschema.h's prepare: a name absent from input, or one that
// fails type conversion, is treated identically to a declared-missing
// value.
func (ms *MiningSchema) Prepare(sample *core.Sample, input map[string]string, interner *core.Interner) error {
	for _, f := range ms.Fields {
		if f.Index == ms.TargetIndex {
			continue
		}

		raw, ok := input[f.Name]
		if !ok {
			sample.SetIfMissing(f.Index, f.HandleMissing())
			continue
		}

		value, err := interner.FromTyped(raw, f.DataType, false)
		if err != nil {
			sample.SetIfMissing(f.Index, f.HandleMissing())
			continue
		}
		sample.Set(f.Index, value)

		if f.HasInvalidTreatment {
			invalid, err := f.IsInvalid(sample)
			if err != nil {
				return err
			}
			if invalid {
				handled, err := f.HandleInvalid(sample.Get(f.Index))
				if err != nil {
					return err
				}
				sample.Set(f.Index, handled)
			}
		}

		if f.HasOutlierTreatment {
			current := sample.Get(f.Index)
			if f.IsOutlier(current) {
				sample.Set(f.Index, f.HandleOutlier(current))
			}
		}
	}
	return nil
}

// Validate reports whether every non-target field in sample satisfies its
// declared constraints.
func (ms *MiningSchema) Validate(sample *core.Sample) (bool, error) {
	for _, f := range ms.Fields {
		if f.Index == ms.TargetIndex {
			continue
		}
		ok, err := f.Validate(sample)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
