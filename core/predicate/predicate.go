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

// Package predicate implements the PMML predicate tree: simple comparisons,
// set membership, and the AND/OR/XOR/SURROGATE boolean combinators used by
// tree nodes, ensemble segments, and DataField constraints. Grounded on
// core/predicate.h; exceptions there become error returns here, per
// spec.md §9 ("exceptions for control flow").
package predicate

import (
	"strconv"

	"github.com/amadeus-pmml/go-pmml/core"
)

// Op identifies a predicate node's shape.
type Op int

const (
	True Op = iota
	False
	Equal
	NotEqual
	GreaterThan
	GreaterOrEqual
	LessThan
	LessOrEqual
	IsIn
	IsNotIn
	And
	Or
	Xor
	Surrogate
)

// Predicate is a tagged tree over simple comparisons, set membership, and
// boolean combinators. Exactly one of (Value) or (Set) is meaningful,
// depending on Op; Children is only meaningful for And/Or/Xor/Surrogate.
type Predicate struct {
	Op         Op
	FieldIndex int
	Value      core.Value
	Set        *core.ValueSet
	Children   []*Predicate
}

// NewTrue and NewFalse are the constant predicates.
func NewTrue() *Predicate  { return &Predicate{Op: True} }
func NewFalse() *Predicate { return &Predicate{Op: False} }

// NewSimple builds a single-field comparison predicate.
func NewSimple(op Op, fieldIndex int, value core.Value) *Predicate {
	return &Predicate{Op: op, FieldIndex: fieldIndex, Value: value}
}

// NewSimpleSet builds an isIn/isNotIn membership predicate.
func NewSimpleSet(op Op, fieldIndex int, set *core.ValueSet) *Predicate {
	return &Predicate{Op: op, FieldIndex: fieldIndex, Set: set}
}

// NewCompound builds an AND/OR/XOR/SURROGATE combinator over children.
func NewCompound(op Op, children []*Predicate) *Predicate {
	return &Predicate{Op: op, Children: children}
}

// Eval applies the predicate to sample. It fails with core.ErrMissing when a
// simple sub-predicate reads a field whose Value is missing; SURROGATE
// swallows that error from its children and tries the next one.
func (p *Predicate) Eval(sample *core.Sample) (bool, error) {
	switch p.Op {
	case True:
		return true, nil
	case False:
		return false, nil
	case And:
		return p.evalAnd(sample)
	case Or:
		return p.evalOr(sample)
	case Xor:
		return p.evalXor(sample)
	case Surrogate:
		return p.evalSurrogate(sample)
	default:
		return p.evalSimple(sample)
	}
}

func (p *Predicate) evalSimple(sample *core.Sample) (bool, error) {
	v := sample.Get(p.FieldIndex)
	if v.Missing {
		return false, core.ErrMissing.New(p.fieldName())
	}

	switch p.Op {
	case Equal:
		return v.Equal(p.Value), nil
	case NotEqual:
		return v.NotEqual(p.Value), nil
	case GreaterThan:
		return v.Greater(p.Value), nil
	case GreaterOrEqual:
		return v.GreaterEqual(p.Value), nil
	case LessThan:
		return v.Less(p.Value), nil
	case LessOrEqual:
		return v.LessEqual(p.Value), nil
	case IsIn:
		return p.Set.Contains(v), nil
	case IsNotIn:
		return !p.Set.Contains(v), nil
	default:
		return false, core.ErrParsing.New("unknown predicate operator")
	}
}

// fieldName is best-effort; the Predicate tree only carries an index, so the
// Missing error names the slot, not the declared PMML name. Callers that
// need the document-level name can translate via their Indexer.
func (p *Predicate) fieldName() string {
	return "field#" + strconv.Itoa(p.FieldIndex)
}

func (p *Predicate) evalAnd(sample *core.Sample) (bool, error) {
	for _, child := range p.Children {
		ok, err := child.Eval(sample)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (p *Predicate) evalOr(sample *core.Sample) (bool, error) {
	for _, child := range p.Children {
		ok, err := child.Eval(sample)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (p *Predicate) evalXor(sample *core.Sample) (bool, error) {
	if len(p.Children) == 0 {
		return false, nil
	}
	first, err := p.Children[0].Eval(sample)
	if err != nil {
		return false, err
	}
	for _, child := range p.Children[1:] {
		ok, err := child.Eval(sample)
		if err != nil {
			return false, err
		}
		if ok != first {
			return true, nil
		}
	}
	return false, nil
}

// evalSurrogate evaluates children left-to-right, skipping those that raise
// Missing, and returns the first concrete boolean. If every child raises
// Missing, the Missing error propagates (core/predicate.h's SURROGATE: the
// last attempted result - possibly itself a caught-missing default of false
// - is otherwise returned).
func (p *Predicate) evalSurrogate(sample *core.Sample) (bool, error) {
	var lastErr error
	for _, child := range p.Children {
		ok, err := child.Eval(sample)
		if err != nil {
			if core.ErrMissing.Is(err) {
				lastErr = err
				continue
			}
			return false, err
		}
		if ok {
			return true, nil
		}
		return false, nil
	}
	if lastErr != nil {
		return false, lastErr
	}
	return false, nil
}
