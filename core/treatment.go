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

// OutlierTreatmentMethod controls how NormContinuous (and any other
// continuous-field consumer) handles an input falling outside its declared
// interval. Grounded on core/outliertreatmentmethod.h.
type OutlierTreatmentMethod int

const (
	AsIs OutlierTreatmentMethod = iota
	AsMissingValues
	AsExtremeValues
)

func ParseOutlierTreatmentMethod(s string) OutlierTreatmentMethod {
	switch strings.ToLower(s) {
	case "asmissingvalues":
		return AsMissingValues
	case "asextremevalues":
		return AsExtremeValues
	default:
		return AsIs
	}
}

// InvalidValueTreatmentMethod controls how a MiningField or Apply expression
// handles a value that fails validation (e.g. a DataField's Value/Interval
// constraints, or a built-in function panicking on bad input). Grounded on
// core/invalidvaluetreatmentmethod.h.
type InvalidValueTreatmentMethod int

const (
	ReturnInvalid InvalidValueTreatmentMethod = iota
	AsIsInvalid
	AsMissing
)

func ParseInvalidValueTreatmentMethod(s string) InvalidValueTreatmentMethod {
	switch strings.ToLower(s) {
	case "asis":
		return AsIsInvalid
	case "asmissing":
		return AsMissing
	default:
		return ReturnInvalid
	}
}

// MissingValueTreatmentMethod documents a MiningField's declared strategy for
// backfilling a missing input (mean/mode/median/fixed value substitution).
// Grounded on core/missingvaluetreatmentmethod.h; the DAG/MiningSchema layer
// is responsible for actually applying the substitution this names.
type MissingValueTreatmentMethod int

const (
	MissingAsIs MissingValueTreatmentMethod = iota
	MissingAsMean
	MissingAsMode
	MissingAsMedian
	MissingAsValue
)

func ParseMissingValueTreatmentMethod(s string) MissingValueTreatmentMethod {
	switch strings.ToLower(s) {
	case "asmean":
		return MissingAsMean
	case "asmode":
		return MissingAsMode
	case "asmedian":
		return MissingAsMedian
	case "asvalue":
		return MissingAsValue
	default:
		return MissingAsIs
	}
}
