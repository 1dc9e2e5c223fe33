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
	"github.com/amadeus-pmml/go-pmml/core/dag"
	"github.com/amadeus-pmml/go-pmml/core/field"
)

// buildOutputField builds one <OutputField> element, dispatching on its
// "feature" attribute among predictedValue/probability/transformedValue.
// Grounded on output/outputfield.h.
func (b *buildCtx) buildOutputField(node *xmlNode) (*field.OutputField, []string, error) {
	name := node.GetAttribute("name")
	dt := core.ParseDataType(node.GetAttribute("dataType"))
	ot := core.ParseOpType(node.GetAttribute("optype"))
	idx := b.fieldIndex(name, dt)

	feature := strings.ToLower(node.GetAttribute("feature"))
	switch feature {
	case "probability":
		targetValue := b.literal(node.GetAttribute("value"), core.Unset)
		expr := field.ProbabilityExpression{TargetValue: targetValue}
		return field.NewOutputField(name, dt, ot, idx, true, expr), nil, nil

	case "transformedvalue":
		exprNode, ok := node.GetChildByList(expressionNames)
		if !ok {
			return nil, nil, core.ErrParsing.New("OutputField " + name + " declares feature transformedValue with no expression")
		}
		var inputs []string
		expr, err := b.buildExpression(exprNode, dt, &inputs)
		if err != nil {
			return nil, nil, err
		}
		return field.NewOutputField(name, dt, ot, idx, true, field.TransformedValueExpression{Expression: expr}), inputs, nil

	default: // predictedValue, and anything else defaults to it
		return field.NewOutputField(name, dt, ot, idx, false, field.PredictedValueExpression{}), nil, nil
	}
}

// buildOutputDictionary builds every <OutputField> under a <Output>
// element, ordering TransformedValue fields that reference one another (or
// a derived field) dependency-first via core/dag. Grounded on
// output/outputdictionary.h.
func (b *buildCtx) buildOutputDictionary(node *xmlNode, knownInput func(string) bool) (*field.OutputDictionary, error) {
	if node == nil {
		return field.NewOutputDictionary(nil), nil
	}

	byName := make(map[string]*field.OutputField)
	var dagNodes []dag.Node

	for _, ofNode := range node.GetChilds("OutputField") {
		of, inputs, err := b.buildOutputField(ofNode)
		if err != nil {
			return nil, err
		}
		byName[of.Name] = of
		dagNodes = append(dagNodes, dag.NewNode(of.Name, inputs))
	}

	order := dag.Build(dagNodes, func(name string) bool {
		if _, ok := byName[name]; ok {
			return true
		}
		return knownInput(name)
	})

	fields := make([]*field.OutputField, 0, len(order))
	for _, name := range order {
		fields = append(fields, byName[name])
	}
	return field.NewOutputDictionary(fields), nil
}
