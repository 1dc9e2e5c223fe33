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

package expression

import "github.com/amadeus-pmml/go-pmml/core"

// mapValuesNode is one level of the MapValues lookup trie: each input
// column contributes one level, keyed by the column's interned Value
// number, bottoming out in the row's output Value.
type mapValuesNode struct {
	children map[float64]*mapValuesNode
	value    core.Value
	terminal bool
}

func newMapValuesNode() *mapValuesNode {
	return &mapValuesNode{children: make(map[float64]*mapValuesNode)}
}

func (n *mapValuesNode) insert(keys []float64, value core.Value) {
	cur := n
	for _, k := range keys {
		child, ok := cur.children[k]
		if !ok {
			child = newMapValuesNode()
			cur.children[k] = child
		}
		cur = child
	}
	cur.value = value
	cur.terminal = true
}

func (n *mapValuesNode) lookup(keys []float64) (core.Value, bool) {
	cur := n
	for _, k := range keys {
		child, ok := cur.children[k]
		if !ok {
			return core.Value{}, false
		}
		cur = child
	}
	return cur.value, cur.terminal
}

// MapValues maps a tuple of input field values to an output value through a
// lookup table (InlineTable rows), falling back to DefaultValue on a miss and
// MapMissingTo when any key is missing. Grounded on expression/mapvalues.h;
// TreeTable's templated trie becomes mapValuesNode, a plain prefix tree keyed
// by each column's interned Value number.
type MapValues struct {
	FieldIndexes    []int
	table           *mapValuesNode
	HasDefaultValue bool
	DefaultValue    core.Value
	HasMapMissingTo bool
	MapMissingTo    core.Value
}

// NewMapValues builds an empty MapValues reading from fieldIndexes, in
// column order.
func NewMapValues(fieldIndexes []int) *MapValues {
	return &MapValues{FieldIndexes: fieldIndexes, table: newMapValuesNode()}
}

func (m *MapValues) WithDefaultValue(v core.Value) *MapValues {
	m.HasDefaultValue = true
	m.DefaultValue = v
	return m
}

func (m *MapValues) WithMapMissingTo(v core.Value) *MapValues {
	m.HasMapMissingTo = true
	m.MapMissingTo = v
	return m
}

// AddRow inserts one InlineTable row: keys must align, in order, with
// FieldIndexes.
func (m *MapValues) AddRow(keys []core.Value, output core.Value) {
	nums := make([]float64, len(keys))
	for i, k := range keys {
		nums[i] = k.Number
	}
	m.table.insert(nums, output)
}

func (m *MapValues) Eval(sample *core.Sample) (core.Value, error) {
	keys := make([]float64, len(m.FieldIndexes))
	for i, idx := range m.FieldIndexes {
		v := sample.Get(idx)
		if v.Missing {
			if m.HasMapMissingTo {
				return m.MapMissingTo, nil
			}
			return core.MissingValue, nil
		}
		keys[i] = v.Number
	}

	if v, ok := m.table.lookup(keys); ok {
		return v, nil
	}
	if m.HasDefaultValue {
		return m.DefaultValue, nil
	}
	if m.HasMapMissingTo {
		return m.MapMissingTo, nil
	}
	return core.MissingValue, nil
}
