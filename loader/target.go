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
	coretarget "github.com/amadeus-pmml/go-pmml/core/target"
)

// buildTarget builds a model's <Targets><Target> element (the first one, or
// the one whose field attribute names the mining schema's target field),
// defaulting to an empty, no-op Target when none is declared — a document
// with no <Targets> element simply never rescales/remaps its raw score.
// Grounded on core/target.h.
func (b *buildCtx) buildTarget(node *xmlNode, function core.MiningFunction, targetFieldIndex int) *coretarget.Target {
	t := coretarget.New(function)
	if node == nil {
		return t
	}

	targetNodes := node.GetChilds("Target")
	var chosen *xmlNode
	targetFieldName := b.indexer.GetName(targetFieldIndex)
	for _, tn := range targetNodes {
		if tn.GetAttribute("field") == targetFieldName {
			chosen = tn
			break
		}
	}
	if chosen == nil && len(targetNodes) > 0 {
		chosen = targetNodes[0]
	}
	if chosen == nil {
		return t
	}

	if chosen.ExistsAttribute("castInteger") {
		t.HasCast = true
		t.Cast = coretarget.ParseCastInteger(chosen.GetAttribute("castInteger"))
	}
	if chosen.ExistsAttribute("min") {
		t.HasMin = true
		t.Min = chosen.GetDoubleAttribute("min")
	}
	if chosen.ExistsAttribute("max") {
		t.HasMax = true
		t.Max = chosen.GetDoubleAttribute("max")
	}
	if chosen.ExistsAttribute("rescaleConstant") {
		t.HasRescaleConstant = true
		t.RescaleConstant = chosen.GetDoubleAttribute("rescaleConstant")
	}
	if chosen.ExistsAttribute("rescaleFactor") {
		t.HasRescaleFactor = true
		t.RescaleFactor = chosen.GetDoubleAttribute("rescaleFactor")
	}

	for _, tvNode := range chosen.GetChilds("TargetValue") {
		tv := coretarget.Value{Label: b.fieldValue(targetFieldIndex, tvNode.GetAttribute("value"))}
		if tvNode.ExistsAttribute("displayValue") {
			tv.HasDisplayValue = true
			tv.DisplayValue = b.interner.FromString(tvNode.GetAttribute("displayValue"), false)
		}
		if tvNode.ExistsAttribute("priorProbability") {
			tv.HasPriorProbability = true
			tv.PriorProbability = tvNode.GetDoubleAttribute("priorProbability")
		}
		if tvNode.ExistsAttribute("defaultValue") {
			tv.HasDefaultValue = true
			tv.DefaultValue = tvNode.GetDoubleAttribute("defaultValue")
		}
		t.Values = append(t.Values, tv)
	}

	return t
}
