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

// Sample is a fixed-length vector of Values, indexed by an Indexer. Every
// loaded model has a canonical BaseSample with all slots missing; per-request
// evaluation starts from a Clone of it. Grounded on core/sample.h.
type Sample struct {
	Values []Value
}

// NewSample returns a Sample with size slots, all missing.
func NewSample(size int) *Sample {
	s := &Sample{Values: make([]Value, size)}
	for i := range s.Values {
		s.Values[i] = MissingValue
	}
	return s
}

// Clone returns an independent copy of s, safe to mutate without affecting
// the original (used to derive a per-request Sample from a Model's
// immutable BaseSample).
func (s *Sample) Clone() *Sample {
	clone := &Sample{Values: make([]Value, len(s.Values))}
	copy(clone.Values, s.Values)
	return clone
}

// Get returns the Value at index i.
func (s *Sample) Get(i int) Value {
	return s.Values[i]
}

// Set unconditionally overwrites the Value at index i.
func (s *Sample) Set(i int, v Value) {
	s.Values[i] = v
}

// SetIfMissing overwrites the Value at index i only if it is currently
// missing.
func (s *Sample) SetIfMissing(i int, v Value) {
	if s.Values[i].Missing {
		s.Values[i] = v
	}
}
