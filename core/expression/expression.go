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

// Package expression implements the PMML transformation tree that backs every
// DerivedField: Constant, FieldRef, NormContinuous, NormDiscrete, Discretize,
// MapValues, and Apply. Grounded on the expression/ headers of the original
// implementation; each node is evaluated against a core.Sample and produces a
// core.Value or an error, mirroring spec.md §4.4.
package expression

import "github.com/amadeus-pmml/go-pmml/core"

// Expression is one node of a DerivedField's transformation tree.
type Expression interface {
	Eval(sample *core.Sample) (core.Value, error)
}
