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

package loader

import (
	"strings"

	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/predicate"
)

// simpleOperators maps a SimplePredicate "operator" attribute to its
// predicate.Op, mirroring core/predicatebuilder.h's dispatch table.
var simpleOperators = map[string]predicate.Op{
	"equal":          predicate.Equal,
	"notequal":       predicate.NotEqual,
	"lessthan":       predicate.LessThan,
	"lessorequal":    predicate.LessOrEqual,
	"greaterthan":    predicate.GreaterThan,
	"greaterorequal": predicate.GreaterOrEqual,
}

// booleanOperators maps a CompoundPredicate "booleanOperator" attribute to
// its predicate.Op.
var booleanOperators = map[string]predicate.Op{
	"and":       predicate.And,
	"or":        predicate.Or,
	"xor":       predicate.Xor,
	"surrogate": predicate.Surrogate,
}

// fieldValue resolves a field's declared type (already known to the
// Indexer from an earlier DataField/MiningField declaration, Unset if this
// predicate is the first thing to mention the field) and parses raw through
// it, inferring a type when none is yet known.
func (b *buildCtx) fieldValue(fieldIndex int, raw string) core.Value {
	dt := b.indexer.GetType(fieldIndex)
	if dt == core.Unset {
		return b.interner.InferValue(raw, b.cfg.regexSupport)
	}
	return b.literal(raw, dt)
}

// buildPredicate dispatches node (a True/False/SimplePredicate/
// SimpleSetPredicate/CompoundPredicate element) into a predicate.Predicate.
// Grounded on core/predicatebuilder.h.
func (b *buildCtx) buildPredicate(node *xmlNode) (*predicate.Predicate, error) {
	switch strings.ToLower(node.Tag) {
	case "true":
		return predicate.NewTrue(), nil
	case "false":
		return predicate.NewFalse(), nil
	case "simplepredicate":
		return b.buildSimplePredicate(node)
	case "simplesetpredicate":
		return b.buildSimpleSetPredicate(node)
	case "compoundpredicate":
		return b.buildCompoundPredicate(node)
	default:
		return nil, core.ErrParsing.New("unsupported predicate element: " + node.Tag)
	}
}

// predicateNames lists every element a tree Node or ensemble Segment may use
// for its single guarding predicate. True/False don't share a "Predicate"
// suffix with the other three, so this can't be found via a substring match
// and is enumerated explicitly instead.
var predicateNames = []string{"True", "False", "SimplePredicate", "SimpleSetPredicate", "CompoundPredicate"}

// buildPredicateChild locates node's single Predicate-family child (used by
// tree Nodes and ensemble Segments, each of which owns exactly one) and
// builds it. A node declaring none (a Segment that omits <Predicate>)
// yields nil, which every Predicate consumer in this module already treats
// as "always matches".
func (b *buildCtx) buildPredicateChild(node *xmlNode) (*predicate.Predicate, error) {
	child, ok := node.GetChildByList(predicateNames)
	if !ok {
		return nil, nil
	}
	return b.buildPredicate(child)
}

func (b *buildCtx) buildSimplePredicate(node *xmlNode) (*predicate.Predicate, error) {
	name := node.GetAttribute("field")
	op, ok := simpleOperators[strings.ToLower(node.GetAttribute("operator"))]
	if !ok {
		return nil, core.ErrParsing.New("unsupported SimplePredicate operator: " + node.GetAttribute("operator"))
	}

	idx := b.fieldIndex(name, core.Unset)
	value := b.fieldValue(idx, node.GetAttribute("value"))
	return predicate.NewSimple(op, idx, value), nil
}

func (b *buildCtx) buildSimpleSetPredicate(node *xmlNode) (*predicate.Predicate, error) {
	name := node.GetAttribute("field")
	idx := b.fieldIndex(name, core.Unset)

	var op predicate.Op
	switch strings.ToLower(node.GetAttribute("booleanOperator")) {
	case "isin":
		op = predicate.IsIn
	case "isnotin":
		op = predicate.IsNotIn
	default:
		return nil, core.ErrParsing.New("unsupported SimpleSetPredicate operator: " + node.GetAttribute("booleanOperator"))
	}

	array, ok := node.GetChild("Array")
	if !ok {
		return predicate.NewSimpleSet(op, idx, core.NewValueSet(nil)), nil
	}
	values := parseArrayText(array.Text)
	parsed := make([]core.Value, len(values))
	for i, v := range values {
		parsed[i] = b.fieldValue(idx, v)
	}
	return predicate.NewSimpleSet(op, idx, core.NewValueSet(parsed)), nil
}

func (b *buildCtx) buildCompoundPredicate(node *xmlNode) (*predicate.Predicate, error) {
	op, ok := booleanOperators[strings.ToLower(node.GetAttribute("booleanOperator"))]
	if !ok {
		return nil, core.ErrParsing.New("unsupported CompoundPredicate operator: " + node.GetAttribute("booleanOperator"))
	}

	var children []*predicate.Predicate
	for _, child := range node.Children {
		switch strings.ToLower(child.Tag) {
		case "simplepredicate", "simplesetpredicate", "compoundpredicate", "true", "false":
			built, err := b.buildPredicate(child)
			if err != nil {
				return nil, err
			}
			children = append(children, built)
		}
	}
	return predicate.NewCompound(op, children), nil
}

// parseArrayText splits a PMML <Array> element's whitespace-separated
// content, honoring double-quoted entries that themselves contain spaces.
func parseArrayText(text string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			result = append(result, current.String())
			current.Reset()
		}
	}

	for _, r := range strings.TrimSpace(text) {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if inQuotes {
				current.WriteRune(r)
			} else {
				flush()
			}
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return result
}
