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

package field

import (
	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/expression"
)

// DerivedField declares a feature computed from other fields via an
// Expression tree. Grounded on core/derivedfield.h.
type DerivedField struct {
	Name       string
	DataType   core.DataType
	OpType     core.OpType
	Index      int
	Expression expression.Expression
	// Inputs lists every field name the expression tree reads, collected
	// by the loader while walking the XML tree. Used by core/dag to order
	// and prune DerivedFields (core/dagbuilder.h).
	Inputs []string
}

// NewDerivedField builds a DerivedField over an already-built expression
// tree.
func NewDerivedField(name string, dataType core.DataType, opType core.OpType, index int, expr expression.Expression, inputs []string) *DerivedField {
	return &DerivedField{Name: name, DataType: dataType, OpType: opType, Index: index, Expression: expr, Inputs: inputs}
}

// Prepare evaluates the field's expression against sample and writes the
// result into its own slot.
func (d *DerivedField) Prepare(sample *core.Sample) error {
	v, err := d.Expression.Eval(sample)
	if err != nil {
		return err
	}
	sample.Set(d.Index, v)
	return nil
}
