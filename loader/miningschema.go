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
	"github.com/amadeus-pmml/go-pmml/core/field"
)

// buildMiningField builds one <MiningField> element, layering usage and
// missing/invalid/outlier treatment over the DataField the DataDictionary
// already declared for the same name (or a freshly synthesized one, for a
// document that names a field in MiningSchema without a matching
// DataField). Grounded on core/miningfield.h.
func (b *buildCtx) buildMiningField(node *xmlNode, dictionary map[string]*field.DataField) *field.MiningField {
	name := node.GetAttribute("name")

	df, ok := dictionary[name]
	if !ok {
		idx := b.fieldIndex(name, core.Unset)
		dt := b.indexer.GetType(idx)
		df = field.NewDataField(name, dt, core.Undefined, idx)
	}

	usage := core.ParseFieldUsageType(node.GetAttribute("usageType"))
	mf := field.NewMiningField(*df, usage)

	if node.ExistsAttribute("missingValueReplacement") {
		mf.HasMissingValueReplacement = true
		mf.MissingValueReplacement = b.fieldValue(df.Index, node.GetAttribute("missingValueReplacement"))
	}

	if node.ExistsAttribute("invalidValueTreatment") {
		mf.HasInvalidTreatment = true
		mf.InvalidTreatment = core.ParseInvalidValueTreatmentMethod(node.GetAttribute("invalidValueTreatment"))
	}

	if node.ExistsAttribute("outliers") {
		mf.HasOutlierTreatment = true
		mf.OutlierTreatment = core.ParseOutlierTreatmentMethod(node.GetAttribute("outliers"))
	}
	if node.ExistsAttribute("lowValue") {
		mf.HasLowValue = true
		mf.LowValue = b.literal(node.GetAttribute("lowValue"), core.Double)
	}
	if node.ExistsAttribute("highValue") {
		mf.HasHighValue = true
		mf.HighValue = b.literal(node.GetAttribute("highValue"), core.Double)
	}

	return mf
}

// buildMiningSchema builds a <MiningSchema> element's MiningFields. Grounded
// on core/miningschema.h.
func (b *buildCtx) buildMiningSchema(node *xmlNode, dictionary map[string]*field.DataField) *field.MiningSchema {
	var fields []*field.MiningField
	for _, mfNode := range node.GetChilds("MiningField") {
		fields = append(fields, b.buildMiningField(mfNode, dictionary))
	}
	return field.NewMiningSchema(fields)
}
