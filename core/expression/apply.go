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
	"github.com/amadeus-pmml/go-pmml/core/expression/function"
)

// Apply invokes a built-in (or nested Apply) function over its child
// expressions' results. Grounded on expression/apply.h: a missing input
// short-circuits to MapMissingTo/DefaultValue, an arity mismatch fails with
// core.ErrInvalid, and a function error (e.g. division by zero) is routed
// through InvalidValueTreatmentMethod rather than propagated unconditionally.
type Apply struct {
	Function                    function.Func
	Arity                       int
	Children                    []Expression
	InvalidValueTreatmentMethod core.InvalidValueTreatmentMethod
	HasMapMissingTo             bool
	MapMissingTo                core.Value
	HasDefaultValue             bool
	DefaultValue                core.Value
}

// NewApply resolves functionName against reg and builds an Apply over
// children. ok is false if functionName is not registered.
func NewApply(reg *function.Registry, functionName string, children []Expression, invalid core.InvalidValueTreatmentMethod) (*Apply, bool) {
	fn, arity, ok := reg.Resolve(functionName)
	if !ok {
		return nil, false
	}
	return &Apply{
		Function:                    fn,
		Arity:                       arity,
		Children:                    children,
		InvalidValueTreatmentMethod: invalid,
	}, true
}

func (a *Apply) WithMapMissingTo(v core.Value) *Apply {
	a.HasMapMissingTo = true
	a.MapMissingTo = v
	return a
}

func (a *Apply) WithDefaultValue(v core.Value) *Apply {
	a.HasDefaultValue = true
	a.DefaultValue = v
	return a
}

func (a *Apply) missingOrDefault() core.Value {
	if a.HasMapMissingTo {
		return a.MapMissingTo
	}
	if a.HasDefaultValue {
		return a.DefaultValue
	}
	return core.MissingValue
}

func (a *Apply) Eval(sample *core.Sample) (core.Value, error) {
	args := make([]core.Value, len(a.Children))
	for i, child := range a.Children {
		v, err := child.Eval(sample)
		if err != nil {
			return core.Value{}, err
		}
		if v.Missing {
			return a.missingOrDefault(), nil
		}
		args[i] = v
	}

	if a.Arity >= 0 && len(args) != a.Arity {
		return core.Value{}, core.ErrInvalid.New("<apply>", "wrong number of arguments")
	}

	result, err := a.Function(args)
	if err == nil {
		return result, nil
	}

	// PMML defines no validation rule at this level; a function failure
	// (e.g. division by zero) is treated as an invalid value.
	switch a.InvalidValueTreatmentMethod {
	case core.ReturnInvalid:
		return core.Value{}, core.ErrInvalid.New("<apply>", err.Error())
	case core.AsMissing:
		return a.missingOrDefault(), nil
	case core.AsIsInvalid:
		return core.MissingValue, nil
	default:
		return core.Value{}, err
	}
}
