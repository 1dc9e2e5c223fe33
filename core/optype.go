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

import "strings"

// OpType classifies how a field's values should be compared: as unordered
// categories, an ordered scale, or a continuous measurement. Grounded on
// core/optype.h.
type OpType int

const (
	Undefined OpType = iota
	Categorical
	Ordinal
	Continuous
)

func ParseOpType(s string) OpType {
	switch strings.ToLower(s) {
	case "categorical":
		return Categorical
	case "ordinal":
		return Ordinal
	case "continuous":
		return Continuous
	default:
		return Undefined
	}
}

// FieldUsageType is a MiningField's role within a MiningSchema. Grounded on
// core/fieldusagetype.h.
type FieldUsageType int

const (
	Active FieldUsageType = iota
	Target
	Supplementary
	Group
	Order
	FrequencyWeight
	AnalysisWeight
)

func ParseFieldUsageType(s string) FieldUsageType {
	switch strings.ToLower(s) {
	case "target", "predicted":
		return Target
	case "supplementary":
		return Supplementary
	case "group":
		return Group
	case "order":
		return Order
	case "frequency_weight":
		return FrequencyWeight
	case "analysis_weight":
		return AnalysisWeight
	default:
		return Active
	}
}

// ValueProperty marks one <Value> child of a DataField as a member of its
// allowed set, its forbidden set, or the substitution used for a missing
// input. Grounded on core/property.h.
type ValueProperty int

const (
	Valid ValueProperty = iota
	Invalid
	MissingProperty
)

func ParseValueProperty(s string) ValueProperty {
	switch strings.ToLower(s) {
	case "invalid":
		return Invalid
	case "missing":
		return MissingProperty
	default:
		return Valid
	}
}
