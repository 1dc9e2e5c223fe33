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
	"github.com/amadeus-pmml/go-pmml/core/field"
	"github.com/amadeus-pmml/go-pmml/core/predicate"
)

// dataFieldConstraints assembles a DataField's combined Predicate from its
// <Value> (valid/invalid/missing) and <Interval> children, mirroring
// core/datafield.h's constructor.
func (b *buildCtx) dataFieldConstraints(node *xmlNode, fieldIndex int, dt core.DataType) (*predicate.Predicate, int, bool, core.Value) {
	var allowed, forbidden []core.Value
	var missingReplacement core.Value
	hasMissing := false

	for _, value := range node.GetChilds("Value") {
		v := b.fieldValue(fieldIndex, value.GetAttribute("value"))
		switch strings.ToLower(value.GetAttribute("property")) {
		case "invalid":
			forbidden = append(forbidden, v)
		case "missing":
			missingReplacement = v
			hasMissing = true
		default:
			allowed = append(allowed, v)
		}
	}
	var constraints []*predicate.Predicate
	if len(allowed) > 0 {
		constraints = append(constraints, predicate.NewSimpleSet(predicate.IsIn, fieldIndex, core.NewValueSet(allowed)))
	}
	if len(forbidden) > 0 {
		constraints = append(constraints, predicate.NewSimpleSet(predicate.IsNotIn, fieldIndex, core.NewValueSet(forbidden)))
	}

	for _, interval := range node.GetChilds("Interval") {
		if p := b.buildIntervalPredicate(interval, fieldIndex, dt); p != nil {
			constraints = append(constraints, p)
		}
	}

	nValues := 1
	if len(allowed) > 0 {
		nValues = len(allowed)
	}

	if len(constraints) == 0 {
		return nil, nValues, hasMissing, missingReplacement
	}
	return predicate.NewCompound(predicate.And, constraints), nValues, hasMissing, missingReplacement
}

// buildIntervalPredicate builds the AND of the two simple comparisons one
// <Interval> element contributes, per its declared closure. Grounded on
// core/intervalbuilder.h.
func (b *buildCtx) buildIntervalPredicate(node *xmlNode, fieldIndex int, dt core.DataType) *predicate.Predicate {
	var children []*predicate.Predicate

	hasLeft := node.ExistsAttribute("leftMargin")
	hasRight := node.ExistsAttribute("rightMargin")

	var left, right core.Value
	if hasLeft {
		left = b.literal(node.GetAttribute("leftMargin"), dt)
	}
	if hasRight {
		right = b.literal(node.GetAttribute("rightMargin"), dt)
	}

	closedLeft, closedRight := true, true
	switch strings.ToLower(node.GetAttribute("closure")) {
	case "openopen":
		closedLeft, closedRight = false, false
	case "closedopen":
		closedLeft, closedRight = true, false
	case "openclosed":
		closedLeft, closedRight = false, true
	default: // closedClosed
		closedLeft, closedRight = true, true
	}

	if hasLeft {
		op := predicate.GreaterOrEqual
		if !closedLeft {
			op = predicate.GreaterThan
		}
		children = append(children, predicate.NewSimple(op, fieldIndex, left))
	}
	if hasRight {
		op := predicate.LessOrEqual
		if !closedRight {
			op = predicate.LessThan
		}
		children = append(children, predicate.NewSimple(op, fieldIndex, right))
	}

	if len(children) == 0 {
		return nil
	}
	return predicate.NewCompound(predicate.And, children)
}

// buildDataField builds one <DataField> element. Grounded on
// core/datafield.h.
func (b *buildCtx) buildDataField(node *xmlNode) *field.DataField {
	name := node.GetAttribute("name")
	dt := core.ParseDataType(node.GetAttribute("dataType"))
	ot := core.ParseOpType(node.GetAttribute("optype"))
	idx := b.fieldIndex(name, dt)

	df := field.NewDataField(name, dt, ot, idx)
	constraints, nValues, hasMissing, missingReplacement := b.dataFieldConstraints(node, idx, dt)
	df.Constraints = constraints
	df.NumValidValues = nValues
	df.HasMissingReplacement = hasMissing
	df.MissingReplacement = missingReplacement
	return df
}

// buildDataDictionary builds every <DataField> under a <DataDictionary>
// element.
func (b *buildCtx) buildDataDictionary(node *xmlNode) map[string]*field.DataField {
	result := make(map[string]*field.DataField)
	for _, dfNode := range node.GetChilds("DataField") {
		df := b.buildDataField(dfNode)
		result[df.Name] = df
	}
	return result
}
