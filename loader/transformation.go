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
	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/dag"
	"github.com/amadeus-pmml/go-pmml/core/field"
)

// buildDerivedField builds one <DerivedField> element. Grounded on
// core/derivedfield.h.
func (b *buildCtx) buildDerivedField(node *xmlNode) (*field.DerivedField, error) {
	name := node.GetAttribute("name")
	dt := core.ParseDataType(node.GetAttribute("dataType"))
	ot := core.ParseOpType(node.GetAttribute("optype"))
	idx := b.fieldIndex(name, dt)

	exprNode, ok := node.GetChildByList(expressionNames)
	if !ok {
		return nil, core.ErrParsing.New("DerivedField " + name + " declares no expression")
	}

	var inputs []string
	expr, err := b.buildExpression(exprNode, dt, &inputs)
	if err != nil {
		return nil, err
	}

	return field.NewDerivedField(name, dt, ot, idx, expr, inputs), nil
}

// buildDerivedFields collects every <DerivedField> under a
// <TransformationDictionary> and every model-local <LocalTransformations>,
// then orders them dependency-first via core/dag, pruning any whose
// dependency chain can never be satisfied. Grounded on
// core/transformationdictionary.h and core/dagbuilder.h.
func (b *buildCtx) buildDerivedFields(nodes []*xmlNode, knownInput func(string) bool) ([]*field.DerivedField, error) {
	byName := make(map[string]*field.DerivedField, len(nodes))
	dagNodes := make([]dag.Node, 0, len(nodes))

	for _, tdNode := range nodes {
		for _, dfNode := range tdNode.GetChilds("DerivedField") {
			df, err := b.buildDerivedField(dfNode)
			if err != nil {
				return nil, err
			}
			byName[df.Name] = df
			dagNodes = append(dagNodes, dag.NewNode(df.Name, df.Inputs))
		}
	}

	order := dag.Build(dagNodes, knownInput)
	result := make([]*field.DerivedField, 0, len(order))
	for _, name := range order {
		result = append(result, byName[name])
	}
	return result, nil
}
