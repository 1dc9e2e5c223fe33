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

// Score is a single model evaluation's result: the winning value (a class
// label for classification, the numeric estimate for regression), its
// double-precision rendering, and — for classification — the full
// per-class probability distribution. Grounded on core/internal_score.h;
// PredictedValue/Probability let a Score satisfy field.Prediction without
// core importing the field package.
type Score struct {
	Empty         bool
	PredictedLabel Value
	DoubleScore   float64
	Probabilities map[float64]float64
}

// NewScore returns an empty Score ready to accumulate a prediction.
func NewScore() *Score {
	return &Score{Empty: true, Probabilities: make(map[float64]float64)}
}

// PredictedValue returns the Score's winning value.
func (s *Score) PredictedValue() Value {
	return s.PredictedLabel
}

// Probability returns the probability assigned to className, if any.
func (s *Score) Probability(className Value) (float64, bool) {
	p, ok := s.Probabilities[className.Number]
	return p, ok
}
