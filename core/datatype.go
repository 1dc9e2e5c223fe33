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

package core

import "strings"

// DataType is the runtime type tag assigned to a field by the Indexer.
// PMML's Integer and Float collapse into Double (see core/datatype.h and
// spec.md §9 open question 2); Boolean and String are kept distinct because
// they change how raw input text is converted into a Value.
type DataType int

const (
	// Unset marks a field the Indexer has seen by name only, with no
	// declared type yet.
	Unset DataType = iota
	Double
	Boolean
	String
)

// ParseDataType maps a PMML data-type attribute to a DataType, collapsing
// Integer and Float into Double.
func ParseDataType(s string) DataType {
	switch strings.ToLower(s) {
	case "integer", "float", "double":
		return Double
	case "boolean":
		return Boolean
	case "string":
		return String
	default:
		return String
	}
}

func (t DataType) String() string {
	switch t {
	case Double:
		return "double"
	case Boolean:
		return "boolean"
	case String:
		return "string"
	default:
		return "unset"
	}
}
