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

import (
	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/predicate"
)

// DiscretizeBin pairs an interval predicate (built by IntervalBuilder-style
// code in the loader, an AND of two simple comparisons) with the value it
// maps matching inputs to.
type DiscretizeBin struct {
	Interval *predicate.Predicate
	Value    core.Value
}

// Discretize maps a continuous input into a discrete bin value by testing
// it against an ordered list of interval predicates, falling through to
// DefaultValue. Grounded on expression/discretize.h.
type Discretize struct {
	FieldIndex      int
	Bins            []DiscretizeBin
	HasDefaultValue bool
	DefaultValue    core.Value
	HasMapMissingTo bool
	MapMissingTo    core.Value
}

func NewDiscretize(fieldIndex int, bins []DiscretizeBin) *Discretize {
	return &Discretize{FieldIndex: fieldIndex, Bins: bins}
}

func (d *Discretize) WithDefaultValue(v core.Value) *Discretize {
	d.HasDefaultValue = true
	d.DefaultValue = v
	return d
}

func (d *Discretize) WithMapMissingTo(v core.Value) *Discretize {
	d.HasMapMissingTo = true
	d.MapMissingTo = v
	return d
}

func (d *Discretize) Eval(sample *core.Sample) (core.Value, error) {
	input := sample.Get(d.FieldIndex)
	if input.Missing {
		if d.HasMapMissingTo {
			return d.MapMissingTo, nil
		}
		return core.MissingValue, nil
	}

	for _, bin := range d.Bins {
		ok, err := bin.Interval.Eval(sample)
		if err != nil {
			return core.Value{}, err
		}
		if ok {
			return bin.Value, nil
		}
	}

	if d.HasDefaultValue {
		return d.DefaultValue, nil
	}
	return core.MissingValue, nil
}
