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

// Package model declares the narrow interface every PMML model variant
// (model/tree, model/regression, model/ensemble) satisfies, letting an
// ensemble hold heterogeneous segment models and the loader return a single
// concrete type to its caller. Grounded on core/internal_model.h's
// InternalModel::score_raw.
package model

import "github.com/amadeus-pmml/go-pmml/core"

// Model scores an already-prepared Sample (MiningSchema.Prepare already
// applied) and returns the raw, pre-Target prediction.
type Model interface {
	Score(sample *core.Sample) (*core.Score, error)
}
