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
	"github.com/amadeus-pmml/go-pmml/core/expression"
)

// expressionNames lists every element a DerivedField/Apply argument may use
// as its transformation, in the order core/expressionbuilder.h tries them.
var expressionNames = []string{
	"Constant", "FieldRef", "NormContinuous", "NormDiscrete",
	"Discretize", "MapValues", "Apply",
}

// buildExpression dispatches node into an expression.Expression, collecting
// every field name it reads into inputs (used by core/dag to order and
// prune DerivedFields). Grounded on the expression/*.h headers.
func (b *buildCtx) buildExpression(node *xmlNode, dt core.DataType, inputs *[]string) (expression.Expression, error) {
	switch strings.ToLower(node.Tag) {
	case "constant":
		v := b.literal(node.Text, dt)
		return expression.NewConstant(v), nil

	case "fieldref":
		name := node.GetAttribute("field")
		*inputs = append(*inputs, name)
		idx := b.fieldIndex(name, core.Unset)
		if node.ExistsAttribute("mapMissingTo") {
			return expression.NewFieldRefWithMapMissingTo(idx, b.literal(node.GetAttribute("mapMissingTo"), dt)), nil
		}
		return expression.NewFieldRef(idx), nil

	case "normcontinuous":
		return b.buildNormContinuous(node, inputs)

	case "normdiscrete":
		return b.buildNormDiscrete(node, inputs)

	case "discretize":
		return b.buildDiscretize(node, inputs)

	case "mapvalues":
		return b.buildMapValues(node, inputs)

	case "apply":
		return b.buildApply(node, dt, inputs)

	default:
		return nil, core.ErrParsing.New("unsupported expression element: " + node.Tag)
	}
}

func (b *buildCtx) buildNormContinuous(node *xmlNode, inputs *[]string) (expression.Expression, error) {
	name := node.GetAttribute("field")
	*inputs = append(*inputs, name)
	idx := b.fieldIndex(name, core.Double)

	var points []expression.LinearNorm
	for _, ln := range node.GetChilds("LinearNorm") {
		points = append(points, expression.LinearNorm{
			Orig: ln.GetDoubleAttribute("orig"),
			Norm: ln.GetDoubleAttribute("norm"),
		})
	}
	outlier := core.ParseOutlierTreatmentMethod(node.GetAttribute("outliers"))

	if node.ExistsAttribute("mapMissingTo") {
		mm := core.NewDouble(node.GetDoubleAttribute("mapMissingTo"))
		return expression.NewNormContinuousWithMapMissingTo(idx, points, outlier, mm), nil
	}
	return expression.NewNormContinuous(idx, points, outlier), nil
}

func (b *buildCtx) buildNormDiscrete(node *xmlNode, inputs *[]string) (expression.Expression, error) {
	name := node.GetAttribute("field")
	*inputs = append(*inputs, name)
	idx := b.fieldIndex(name, core.Unset)
	value := b.fieldValue(idx, node.GetAttribute("value"))

	if node.ExistsAttribute("mapMissingTo") {
		mm := core.NewDouble(node.GetDoubleAttribute("mapMissingTo"))
		return expression.NewNormDiscreteWithMapMissingTo(idx, value, mm), nil
	}
	return expression.NewNormDiscrete(idx, value), nil
}

func (b *buildCtx) buildDiscretize(node *xmlNode, inputs *[]string) (expression.Expression, error) {
	name := node.GetAttribute("field")
	*inputs = append(*inputs, name)
	idx := b.fieldIndex(name, core.Double)

	var bins []expression.DiscretizeBin
	for _, binNode := range node.GetChilds("DiscretizeBin") {
		interval, ok := binNode.GetChild("Interval")
		if !ok {
			continue
		}
		p := b.buildIntervalPredicate(interval, idx, core.Double)
		if p == nil {
			continue
		}
		value := b.literal(binNode.GetAttribute("binValue"), core.Unset)
		bins = append(bins, expression.DiscretizeBin{Interval: p, Value: value})
	}

	d := expression.NewDiscretize(idx, bins)
	if node.ExistsAttribute("defaultValue") {
		d = d.WithDefaultValue(b.literal(node.GetAttribute("defaultValue"), core.Unset))
	}
	if node.ExistsAttribute("mapMissingTo") {
		d = d.WithMapMissingTo(b.literal(node.GetAttribute("mapMissingTo"), core.Unset))
	}
	return d, nil
}

func (b *buildCtx) buildMapValues(node *xmlNode, inputs *[]string) (expression.Expression, error) {
	pairs := node.GetChilds("FieldColumnPair")
	fieldIndexes := make([]int, len(pairs))
	columnByIndex := make(map[int]string, len(pairs))
	for i, pair := range pairs {
		name := pair.GetAttribute("field")
		*inputs = append(*inputs, name)
		idx := b.fieldIndex(name, core.Unset)
		fieldIndexes[i] = idx
		columnByIndex[i] = pair.GetAttribute("column")
	}

	m := expression.NewMapValues(fieldIndexes)
	outputColumn := node.GetAttribute("outputColumn")

	if table, ok := node.GetChild("InlineTable"); ok {
		for _, row := range table.GetChilds("row") {
			keys := make([]core.Value, len(pairs))
			for i := range pairs {
				cell, ok := row.GetChild(columnByIndex[i])
				text := ""
				if ok {
					text = cell.Text
				}
				keys[i] = b.fieldValue(fieldIndexes[i], text)
			}
			var output core.Value
			if cell, ok := row.GetChild(outputColumn); ok {
				output = b.literal(cell.Text, core.Unset)
			}
			m.AddRow(keys, output)
		}
	}

	if node.ExistsAttribute("defaultValue") {
		m = m.WithDefaultValue(b.literal(node.GetAttribute("defaultValue"), core.Unset))
	}
	if node.ExistsAttribute("mapMissingTo") {
		m = m.WithMapMissingTo(b.literal(node.GetAttribute("mapMissingTo"), core.Unset))
	}
	return m, nil
}

func (b *buildCtx) buildApply(node *xmlNode, dt core.DataType, inputs *[]string) (expression.Expression, error) {
	functionName := node.GetAttribute("name")
	invalid := core.ParseInvalidValueTreatmentMethod(node.GetAttribute("invalidValueTreatment"))

	var children []expression.Expression
	for _, child := range node.Children {
		if !isExpressionTag(child.Tag) {
			continue
		}
		built, err := b.buildExpression(child, dt, inputs)
		if err != nil {
			return nil, err
		}
		children = append(children, built)
	}

	apply, ok := expression.NewApply(b.registry, functionName, children, invalid)
	if !ok {
		return nil, core.ErrParsing.New("unsupported function: " + functionName)
	}
	if node.ExistsAttribute("mapMissingTo") {
		apply = apply.WithMapMissingTo(b.literal(node.GetAttribute("mapMissingTo"), dt))
	}
	if node.ExistsAttribute("defaultValue") {
		apply = apply.WithDefaultValue(b.literal(node.GetAttribute("defaultValue"), dt))
	}
	return apply, nil
}

func isExpressionTag(tag string) bool {
	for _, name := range expressionNames {
		if strings.EqualFold(tag, name) {
			return true
		}
	}
	return false
}
