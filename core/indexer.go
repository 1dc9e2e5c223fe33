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

import (
	uuid "github.com/satori/go.uuid"
)

// Indexer assigns a dense integer slot and a DataType to every field name
// seen while parsing a PMML document, so every later field access becomes an
// array index instead of a map lookup. Grounded on core/indexer.h: the same
// get-or-set, bijective name<->index contract, generalized from a raw
// unordered_map pair into two parallel Go slices plus a name index.
//
// An Indexer is mutated only while a document is being loaded; once Load
// returns, the resulting Model owns it exclusively and it is never written
// to again (see spec.md §3, "Lifecycle").
type Indexer struct {
	nameToIndex map[string]int
	names       []string
	types       []DataType
}

// NewIndexer returns an empty Indexer.
func NewIndexer() *Indexer {
	return &Indexer{nameToIndex: make(map[string]int)}
}

// Size returns the number of distinct fields indexed so far.
func (ix *Indexer) Size() int {
	return len(ix.names)
}

// Contains reports whether name has been indexed.
func (ix *Indexer) Contains(name string) bool {
	_, ok := ix.nameToIndex[name]
	return ok
}

// GetIndex returns the index assigned to name, failing with ErrMissing if
// name was never indexed.
func (ix *Indexer) GetIndex(name string) (int, error) {
	i, ok := ix.nameToIndex[name]
	if !ok {
		return 0, ErrMissing.New(name)
	}
	return i, nil
}

// GetTypeByName returns the DataType assigned to name.
func (ix *Indexer) GetTypeByName(name string) (DataType, error) {
	i, ok := ix.nameToIndex[name]
	if !ok {
		return Unset, ErrMissing.New(name)
	}
	return ix.types[i], nil
}

// GetType returns the DataType assigned to index i.
func (ix *Indexer) GetType(i int) DataType {
	if i < 0 || i >= len(ix.types) {
		return Unset
	}
	return ix.types[i]
}

// GetName returns the field name assigned to index i.
func (ix *Indexer) GetName(i int) string {
	if i < 0 || i >= len(ix.names) {
		return ""
	}
	return ix.names[i]
}

// GetOrSet returns the index for name, creating a new slot of type Unset if
// name has not been seen before.
func (ix *Indexer) GetOrSet(name string) int {
	if i, ok := ix.nameToIndex[name]; ok {
		return i
	}
	i := len(ix.names)
	ix.nameToIndex[name] = i
	ix.names = append(ix.names, name)
	ix.types = append(ix.types, Unset)
	return i
}

// GetOrSetTyped returns the index for name, assigning it dataType. Setting
// the type is only permitted if the field's type was previously Unset; a
// field re-declared with a different type keeps its original type, matching
// core/indexer.h's get_or_set(name, datatype) overload (it only writes
// name_datatype[name] the first time it sees that name).
func (ix *Indexer) GetOrSetTyped(name string, dataType DataType) (int, DataType) {
	i := ix.GetOrSet(name)
	if ix.types[i] == Unset {
		ix.types[i] = dataType
	}
	return i, ix.types[i]
}

// RandomName returns a synthetic field name guaranteed not to collide with
// any name already indexed. Used to give the predicted value a slot when the
// mining schema declares no target (core/indexer.h's random_name, there
// implemented as a retry-until-unique rand() loop; here backed by a v4 UUID,
// still drawn again until it is not already indexed, which in practice means
// a single draw).
func (ix *Indexer) RandomName() string {
	for {
		name := uuid.NewV4().String()
		if !ix.Contains(name) {
			return name
		}
	}
}
