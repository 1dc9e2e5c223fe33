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

// Package function implements the PMML built-in function registry consumed
// by Apply expressions: arithmetic, boolean, aggregation, and (optionally)
// regex string functions, each with a fixed arity. Grounded on
// core/builtinfunctions.h.
package function

import (
	"math"
	"regexp"
	"strings"

	"github.com/amadeus-pmml/go-pmml/core"
)

// Func is a built-in function body: it receives the already-evaluated
// argument list and returns a result Value or an error (arity mismatch,
// regex compile failure, and the like).
type Func func(args []core.Value) (core.Value, error)

// entry pairs a function with its fixed arity; -1 means variadic.
type entry struct {
	arity int
	fn    Func
}

// Registry resolves a PMML function name to its implementation. The base
// registry omits "replace"; WithRegexSupport adds it, mirroring the
// original's REGEX_SUPPORT compile-time flag with a runtime option instead
// (see loader.WithRegexSupport).
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns the fixed built-in function set. When regexSupport is
// true, "replace" is also registered.
func NewRegistry(regexSupport bool) *Registry {
	r := &Registry{entries: map[string]entry{
		"+":              {2, plus},
		"-":              {2, minus},
		"*":              {2, mul},
		"/":              {2, div},
		"max":            {-1, maxFn},
		"min":            {-1, minFn},
		"sum":            {-1, sumFn},
		"avg":            {-1, avgFn},
		"exp":            {1, expFn},
		"ismissing":      {1, isMissing},
		"isnotmissing":   {1, isNotMissing},
		"equal":          {2, equalFn},
		"notequal":       {2, notEqualFn},
		"lessthan":       {2, lessThan},
		"lessorequal":    {2, lessOrEqual},
		"greaterthan":    {2, greaterThan},
		"greaterorequal": {2, greaterOrEqual},
		"isin":           {-1, isIn},
		"isnotin":        {-1, isNotIn},
	}}
	if regexSupport {
		r.entries["replace"] = entry{3, replace}
	}
	return r
}

// Resolve looks up name (case-insensitively) and returns its function and
// declared arity. ok is false for an unknown name.
func (r *Registry) Resolve(name string) (fn Func, arity int, ok bool) {
	e, found := r.entries[strings.ToLower(name)]
	if !found {
		return nil, 0, false
	}
	return e.fn, e.arity, true
}

func plus(args []core.Value) (core.Value, error)  { return args[0].Add(args[1]), nil }
func minus(args []core.Value) (core.Value, error) { return args[0].Sub(args[1]), nil }
func mul(args []core.Value) (core.Value, error)   { return args[0].Mul(args[1]), nil }

func div(args []core.Value) (core.Value, error) {
	if args[1].Number == 0 {
		return core.Value{}, core.ErrMath.New("division by zero")
	}
	return args[0].Div(args[1]), nil
}

func maxFn(args []core.Value) (core.Value, error) { return core.Max(args), nil }
func minFn(args []core.Value) (core.Value, error) { return core.Min(args), nil }
func sumFn(args []core.Value) (core.Value, error) { return core.Sum(args), nil }
func avgFn(args []core.Value) (core.Value, error) { return core.Avg(args), nil }

func expFn(args []core.Value) (core.Value, error) {
	return core.NewDouble(math.Exp(args[0].Number)), nil
}

func isMissing(args []core.Value) (core.Value, error) {
	return core.NewBool(args[0].Missing), nil
}

func isNotMissing(args []core.Value) (core.Value, error) {
	return core.NewBool(!args[0].Missing), nil
}

func equalFn(args []core.Value) (core.Value, error)    { return core.NewBool(args[0].Equal(args[1])), nil }
func notEqualFn(args []core.Value) (core.Value, error)  { return core.NewBool(args[0].NotEqual(args[1])), nil }
func lessThan(args []core.Value) (core.Value, error)    { return core.NewBool(args[0].Less(args[1])), nil }
func lessOrEqual(args []core.Value) (core.Value, error) { return core.NewBool(args[0].LessEqual(args[1])), nil }
func greaterThan(args []core.Value) (core.Value, error) {
	return core.NewBool(args[0].Greater(args[1])), nil
}
func greaterOrEqual(args []core.Value) (core.Value, error) {
	return core.NewBool(args[0].GreaterEqual(args[1])), nil
}

// isIn reports whether args[0] is found among args[1:], matching the
// original's std::find over the remaining elements.
func isIn(args []core.Value) (core.Value, error) {
	if len(args) < 1 {
		return core.Value{}, core.ErrInvalid.New("<apply>", "isIn requires at least one argument")
	}
	needle := args[0]
	for _, v := range args[1:] {
		if needle.Equal(v) {
			return core.NewBool(true), nil
		}
	}
	return core.NewBool(false), nil
}

func isNotIn(args []core.Value) (core.Value, error) {
	v, err := isIn(args)
	if err != nil {
		return core.Value{}, err
	}
	return core.NewBool(!v.Bool()), nil
}

// replace applies a regular expression substitution: args[0] is the subject,
// args[1] the pattern, args[2] the replacement. Only registered when the
// loader is opened WithRegexSupport. The pattern is compiled on every call.
func replace(args []core.Value) (core.Value, error) {
	re, err := regexp.Compile(args[1].Text)
	if err != nil {
		return core.Value{}, core.ErrInvalid.New("<replace>", "bad pattern: "+err.Error())
	}
	result := re.ReplaceAllString(args[0].Text, args[2].Text)
	return core.Value{Text: result}, nil
}
