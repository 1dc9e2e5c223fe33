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

package expression

import "github.com/amadeus-pmml/go-pmml/core"

// Constant always evaluates to the same Value, regardless of sample.
// Grounded on expression/constant.h.
type Constant struct {
	Value core.Value
}

// NewConstant returns a Constant wrapping value.
func NewConstant(value core.Value) *Constant {
	return &Constant{Value: value}
}

func (c *Constant) Eval(sample *core.Sample) (core.Value, error) {
	return c.Value, nil
}
