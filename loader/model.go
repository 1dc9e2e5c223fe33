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
	"github.com/amadeus-pmml/go-pmml/model"
	"github.com/amadeus-pmml/go-pmml/model/ensemble"
	"github.com/amadeus-pmml/go-pmml/model/regression"
	"github.com/amadeus-pmml/go-pmml/model/tree"
	"github.com/amadeus-pmml/go-pmml/norm"
)

// builtModel bundles everything a model element (<TreeModel>,
// <RegressionModel>, <MiningModel>) produces: the dispatched model.Model
// plus the MiningSchema and Output declared alongside it, so pmml.Load can
// assemble the top-level Model and each ensemble Segment can recursively
// carry its own.
type builtModel struct {
	MiningSchema *field.MiningSchema
	Function     core.MiningFunction
	Model        model.Model
	Outputs      *field.OutputDictionary
}

// buildModel dispatches a model element by tag name. Grounded on
// core/internal_model.h's three concrete subclasses.
func (b *buildCtx) buildModel(node *xmlNode, dictionary map[string]*field.DataField, knownInput func(string) bool) (*builtModel, error) {
	switch strings.ToLower(node.Tag) {
	case "treemodel":
		return b.buildTreeModel(node, dictionary, knownInput)
	case "regressionmodel":
		return b.buildRegressionModel(node, dictionary, knownInput)
	case "miningmodel":
		return b.buildEnsembleModel(node, dictionary, knownInput)
	default:
		return nil, core.ErrParsing.New("unsupported model element: " + node.Tag)
	}
}

// modelSchemaAndOutput builds the MiningSchema and (DAG-ordered) Output
// common to every model element, returning the schema, the resolved target
// field index (-1 if none declared) and its DataType.
func (b *buildCtx) modelSchemaAndOutput(node *xmlNode, dictionary map[string]*field.DataField, knownInput func(string) bool) (*field.MiningSchema, int, core.DataType, *field.OutputDictionary, error) {
	msNode, ok := node.GetChild("MiningSchema")
	if !ok {
		return nil, -1, core.Unset, nil, core.ErrParsing.New(node.Tag + " declares no MiningSchema")
	}
	schema := b.buildMiningSchema(msNode, dictionary)

	targetIdx := schema.TargetIndex
	targetDT := core.Unset
	if targetIdx >= 0 {
		targetDT = b.indexer.GetType(targetIdx)
	}

	outputNode, _ := node.GetChild("Output")
	outputs, err := b.buildOutputDictionary(outputNode, knownInput)
	if err != nil {
		return nil, -1, core.Unset, nil, err
	}

	return schema, targetIdx, targetDT, outputs, nil
}

func (b *buildCtx) buildTreeModel(node *xmlNode, dictionary map[string]*field.DataField, knownInput func(string) bool) (*builtModel, error) {
	schema, _, targetDT, outputs, err := b.modelSchemaAndOutput(node, dictionary, knownInput)
	if err != nil {
		return nil, err
	}

	rootNode, ok := node.GetChild("Node")
	if !ok {
		return nil, core.ErrParsing.New("TreeModel declares no root Node")
	}
	root, err := b.buildTreeNode(rootNode, targetDT)
	if err != nil {
		return nil, err
	}

	returnLast := strings.EqualFold(node.GetAttribute("noTrueChildStrategy"), "returnLastPrediction")
	function := core.ParseMiningFunction(node.GetAttribute("functionName"))

	return &builtModel{
		MiningSchema: schema,
		Function:     function,
		Model:        tree.New(root, returnLast),
		Outputs:      outputs,
	}, nil
}

func (b *buildCtx) buildTreeNode(node *xmlNode, targetDT core.DataType) (*tree.Node, error) {
	pred, err := b.buildPredicateChild(node)
	if err != nil {
		return nil, err
	}

	var children []*tree.Node
	for _, childNode := range node.GetChilds("Node") {
		child, err := b.buildTreeNode(childNode, targetDT)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	var distributions []tree.ScoreDistribution
	for _, sdNode := range node.GetChilds("ScoreDistribution") {
		v := b.literal(sdNode.GetAttribute("value"), targetDT)
		distributions = append(distributions, tree.ScoreDistribution{
			Value:       v,
			RecordCount: sdNode.GetDoubleAttribute("recordCount"),
		})
	}

	hasScore := node.ExistsAttribute("score")
	var simpleScore core.Value
	if hasScore {
		simpleScore = b.literal(node.GetAttribute("score"), targetDT)
	}

	recordCount := node.GetDoubleAttribute("recordCount")
	if recordCount == doubleMin {
		recordCount = 0
	}

	return tree.NewNode(pred, children, simpleScore, hasScore, distributions, recordCount), nil
}

func (b *buildCtx) buildRegressionModel(node *xmlNode, dictionary map[string]*field.DataField, knownInput func(string) bool) (*builtModel, error) {
	schema, _, _, outputs, err := b.modelSchemaAndOutput(node, dictionary, knownInput)
	if err != nil {
		return nil, err
	}

	function := core.ParseMiningFunction(node.GetAttribute("functionName"))
	normalization := norm.ParseLinkFunction(node.GetAttribute("normalizationMethod"))

	var tables []*regression.Table
	for _, tableNode := range node.GetChilds("RegressionTable") {
		table, err := b.buildRegressionTable(tableNode)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return &builtModel{
		MiningSchema: schema,
		Function:     function,
		Model:        regression.New(function, normalization, tables),
		Outputs:      outputs,
	}, nil
}

func (b *buildCtx) buildRegressionTable(node *xmlNode) (*regression.Table, error) {
	table := &regression.Table{Intercept: node.GetDoubleAttribute("intercept")}
	if table.Intercept == doubleMin {
		table.Intercept = 0
	}
	table.TargetCategory = b.literal(node.GetAttribute("targetCategory"), core.Unset)

	for _, np := range node.GetChilds("NumericPredictor") {
		idx := b.fieldIndex(np.GetAttribute("name"), core.Double)
		exponent := np.GetDoubleAttribute("exponent")
		if exponent == doubleMin {
			exponent = 1
		}
		table.NumericPredictors = append(table.NumericPredictors, regression.NumericPredictor{
			FieldIndex:  idx,
			Coefficient: np.GetDoubleAttribute("coefficient"),
			Exponent:    exponent,
		})
	}

	for _, cp := range node.GetChilds("CategoricalPredictor") {
		idx := b.fieldIndex(cp.GetAttribute("name"), core.Unset)
		value := b.fieldValue(idx, cp.GetAttribute("value"))
		coeff := cp.GetDoubleAttribute("coefficient")

		var existing *regression.CategoricalPredictor
		for i := range table.CategoricalPredictors {
			if table.CategoricalPredictors[i].FieldIndex == idx {
				existing = &table.CategoricalPredictors[i]
				break
			}
		}
		if existing == nil {
			table.CategoricalPredictors = append(table.CategoricalPredictors, regression.CategoricalPredictor{
				FieldIndex:   idx,
				Coefficients: map[float64]float64{},
			})
			existing = &table.CategoricalPredictors[len(table.CategoricalPredictors)-1]
		}
		existing.Coefficients[value.Number] = coeff
	}

	for _, ptNode := range node.GetChilds("PredictorTerm") {
		var indexes []int
		for _, fr := range ptNode.GetChilds("FieldRef") {
			indexes = append(indexes, b.fieldIndex(fr.GetAttribute("field"), core.Double))
		}
		table.PredictorTerms = append(table.PredictorTerms, regression.PredictorTerm{
			Coefficient:  ptNode.GetDoubleAttribute("coefficient"),
			FieldIndexes: indexes,
		})
	}

	return table, nil
}

func (b *buildCtx) buildEnsembleModel(node *xmlNode, dictionary map[string]*field.DataField, knownInput func(string) bool) (*builtModel, error) {
	schema, targetIdx, _, outputs, err := b.modelSchemaAndOutput(node, dictionary, knownInput)
	if err != nil {
		return nil, err
	}

	function := core.ParseMiningFunction(node.GetAttribute("functionName"))

	segmentationNode, ok := node.GetChild("Segmentation")
	if !ok {
		return nil, core.ErrParsing.New("MiningModel declares no Segmentation")
	}
	method, err := ensemble.ParseMethod(segmentationNode.GetAttribute("multipleModelMethod"))
	if err != nil {
		return nil, err
	}

	numClasses := 0
	if targetIdx >= 0 {
		if df, ok := dictionary[b.indexer.GetName(targetIdx)]; ok {
			numClasses = df.NumValidValues
		}
	}

	var segments []ensemble.Segment
	segNodes := segmentationNode.GetChilds("Segment")
	for i, segNode := range segNodes {
		seg, err := b.buildSegment(segNode, dictionary, knownInput, i == len(segNodes)-1)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	runners := make([]ensemble.DerivedRunner, len(b.derived))
	for i, df := range b.derived {
		runners[i] = df
	}
	em := ensemble.New(function, method, segments, numClasses).
		WithParallelMin(b.cfg.parallelEnsembleMin).
		WithDerived(runners)

	return &builtModel{
		MiningSchema: schema,
		Function:     function,
		Model:        em,
		Outputs:      outputs,
	}, nil
}

func (b *buildCtx) buildSegment(node *xmlNode, dictionary map[string]*field.DataField, knownInput func(string) bool, isLast bool) (ensemble.Segment, error) {
	pred, err := b.buildPredicateChild(node)
	if err != nil {
		return ensemble.Segment{}, err
	}

	weight := node.GetDoubleAttribute("weight")
	if weight == doubleMin {
		weight = 1
	}

	var childNode *xmlNode
	for _, child := range node.Children {
		switch strings.ToLower(child.Tag) {
		case "treemodel", "regressionmodel", "miningmodel":
			childNode = child
		}
	}
	if childNode == nil {
		return ensemble.Segment{}, core.ErrParsing.New("Segment declares no child model")
	}

	built, err := b.buildModel(childNode, dictionary, knownInput)
	if err != nil {
		return ensemble.Segment{}, err
	}

	seg := ensemble.Segment{Weight: weight, Predicate: pred, Model: built.Model, Outputs: built.Outputs}

	if !isLast && built.MiningSchema.HasTarget {
		seg.HasChainOutput = true
		seg.ChainOutputIndex = built.MiningSchema.TargetIndex
	}

	return seg, nil
}
