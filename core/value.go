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
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Value is the unified runtime scalar. Every value, regardless of its
// declared PMML data type, is stored as a 64-bit float plus a missing flag;
// string values are interned to a stable numeric id (or hashed, under
// WithHashedStrings). Text is only populated when regex support is enabled
// and the value originated from a string, so Apply("replace", ...) and
// similar string transforms have something to operate on. Grounded on
// core/value.h.
type Value struct {
	Number  float64
	Missing bool
	Text    string
}

// MissingValue is the zero-information Value every Sample slot starts as.
var MissingValue = Value{Missing: true}

// NewDouble wraps a plain numeric Value.
func NewDouble(f float64) Value { return Value{Number: f} }

// NewBool maps true to 1.0 and false to 0.0, per Value::to_double's BOOLEAN
// case.
func NewBool(b bool) Value {
	if b {
		return Value{Number: 1}
	}
	return Value{Number: 0}
}

// Interner assigns a stable numeric id to each distinct string Value it
// sees. One Interner is owned per loaded Model (design note "Owning shared
// metadata" / implementation option (a) in spec.md §9): it is built up
// during Load and may still gain new entries at score time when a raw input
// is a string never seen before, so inserts are guarded by a lock rather
// than left to a single load-time pass.
//
// Hashed mode (loader.WithHashedStrings) chooses the STRING_OPTIMIZATION
// variant instead: a xxhash-derived id that needs no forward id table,
// accepting the (practically negligible) risk of a 64-bit hash collision
// across distinct strings. The reverse id->text map is still written, under
// the same lock, the first time each id is seen.
type Interner struct {
	mu     sync.RWMutex
	ids    map[string]float64
	texts  map[float64]string
	next   float64
	hashed bool
}

// NewInterner returns an empty Interner. When hashed is true it never
// allocates the forward id table and never takes a write lock to resolve
// one, though it still records the reverse id->text mapping: a caller
// rendering a prediction's winning label needs its text back regardless of
// which id scheme produced the number.
func NewInterner(hashed bool) *Interner {
	return &Interner{ids: make(map[string]float64), texts: make(map[float64]string), hashed: hashed}
}

// ID returns the stable numeric id for s, assigning a new one on first
// sight (interned mode) or deriving one from its hash (hashed mode).
func (in *Interner) ID(s string) float64 {
	if in.hashed {
		id := float64(xxhash.Sum64String(s))
		in.mu.RLock()
		_, known := in.texts[id]
		in.mu.RUnlock()
		if !known {
			in.mu.Lock()
			in.texts[id] = s
			in.mu.Unlock()
		}
		return id
	}

	in.mu.RLock()
	id, ok := in.ids[s]
	in.mu.RUnlock()
	if ok {
		return id
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.ids[s]; ok {
		return id
	}
	id = in.next
	in.ids[s] = id
	in.texts[id] = s
	in.next++
	return id
}

// Text returns the string a previously interned/hashed id was assigned to,
// if any. Used to render a classification label or string output back to
// human-readable text without every Value needing to carry its own copy.
func (in *Interner) Text(id float64) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	s, ok := in.texts[id]
	return s, ok
}

// FromString interns (or hashes) s into a Value, optionally retaining the
// original text for regex use.
func (in *Interner) FromString(s string, keepText bool) Value {
	v := Value{Number: in.ID(s)}
	if keepText {
		v.Text = s
	}
	return v
}

// FromTyped converts raw document/input text into a Value according to an
// explicitly declared PMML data type, mirroring Value::to_double's switch
// over DataType.
func (in *Interner) FromTyped(s string, dt DataType, keepText bool) (Value, error) {
	switch dt {
	case Boolean:
		lower := strings.ToLower(s)
		return NewBool(lower == "true" || s == "1"), nil
	case Double:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return Value{}, ErrInvalid.New("<value>", "not numeric: "+s)
		}
		return NewDouble(f), nil
	default: // String
		return in.FromString(s, keepText), nil
	}
}

// InferValue picks a type for s the way Value::infer_value does: an integer
// literal in int32 range with no decimal point becomes a number, a general
// float literal becomes a number, anything else is interned/hashed as a
// string. See spec.md §4.2.
func (in *Interner) InferValue(s string, keepText bool) Value {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return in.FromString(s, keepText)
	}
	// Integer-vs-double distinction collapses to the same stored number, so
	// an integer literal outside int32 range is still a number here.
	return NewDouble(f)
}

// Arithmetic, comparison, and set membership over Values; comparisons and
// arithmetic operate purely on Number, per spec.md §3 ("comparisons treat
// Values as f64").

func (v Value) Add(o Value) Value  { return Value{Number: v.Number + o.Number} }
func (v Value) Sub(o Value) Value  { return Value{Number: v.Number - o.Number} }
func (v Value) Mul(o Value) Value  { return Value{Number: v.Number * o.Number} }
func (v Value) Div(o Value) Value  { return Value{Number: v.Number / o.Number} }
func (v Value) Diff(o Value) Value { return Value{Number: math.Abs(v.Number - o.Number)} }

func (v Value) Equal(o Value) bool        { return v.Number == o.Number }
func (v Value) NotEqual(o Value) bool     { return v.Number != o.Number }
func (v Value) Greater(o Value) bool      { return v.Number > o.Number }
func (v Value) GreaterEqual(o Value) bool { return v.Number >= o.Number }
func (v Value) Less(o Value) bool         { return v.Number < o.Number }
func (v Value) LessEqual(o Value) bool    { return v.Number <= o.Number }

func (v Value) Bool() bool { return v.Number != 0 }

// Sum/Min/Max/Avg are the static Value aggregates of spec.md §4.2. Min and
// Max return the true extreme (spec.md §9 open question 3: the original's
// std::set-based Value::min returns *end(), past the last element, which is
// undefined behavior and is not reproduced here).
func Sum(values []Value) Value {
	var total float64
	for _, v := range values {
		total += v.Number
	}
	return Value{Number: total}
}

func Min(values []Value) Value {
	if len(values) == 0 {
		return Value{}
	}
	m := values[0].Number
	for _, v := range values[1:] {
		if v.Number < m {
			m = v.Number
		}
	}
	return Value{Number: m}
}

func Max(values []Value) Value {
	if len(values) == 0 {
		return Value{}
	}
	m := values[0].Number
	for _, v := range values[1:] {
		if v.Number > m {
			m = v.Number
		}
	}
	return Value{Number: m}
}

func Avg(values []Value) Value {
	if len(values) == 0 {
		return Value{}
	}
	return Value{Number: Sum(values).Number / float64(len(values))}
}

// setThreshold is the SimpleSetPredicate cutover point (spec.md §4.3 /
// §8 boundary behavior): below it, membership is tested with a sorted slice
// and binary search; at or above it, a hash set. Both give identical truth
// values; the split only matters for branch-prediction cost on the value
// sequences PMML tends to declare.
const setThreshold = 150

// ValueSet is a set of Values keyed by Number, used by SimpleSetPredicate
// (core/predicate) for isIn/isNotIn membership tests.
type ValueSet struct {
	sorted []float64      // used when len(sorted) < setThreshold
	hash   map[float64]struct{}
}

// NewValueSet builds a ValueSet from values, choosing its internal
// representation from the element count per setThreshold.
func NewValueSet(values []Value) *ValueSet {
	nums := make([]float64, len(values))
	for i, v := range values {
		nums[i] = v.Number
	}

	if len(nums) < setThreshold {
		sort.Float64s(nums)
		return &ValueSet{sorted: nums}
	}

	hash := make(map[float64]struct{}, len(nums))
	for _, n := range nums {
		hash[n] = struct{}{}
	}
	return &ValueSet{hash: hash}
}

// Contains reports whether v's Number is a member of the set.
func (s *ValueSet) Contains(v Value) bool {
	if s.hash != nil {
		_, ok := s.hash[v.Number]
		return ok
	}
	i := sort.SearchFloat64s(s.sorted, v.Number)
	return i < len(s.sorted) && s.sorted[i] == v.Number
}
