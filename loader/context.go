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
	"github.com/spf13/cast"

	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/expression/function"
	"github.com/amadeus-pmml/go-pmml/core/field"
)

// buildCtx carries everything the various XML-to-IR builder functions share:
// the document-wide field Indexer and string Interner, the resolved
// built-in function Registry, and the caller's Option set. One buildCtx is
// created per Load call and threaded through every builder.
type buildCtx struct {
	indexer  *core.Indexer
	interner *core.Interner
	registry *function.Registry
	cfg      *config
	// derived is the document's top-level, already dependency-ordered
	// DerivedField set, set once loader.build has resolved it and consumed
	// by any ModelChain ensemble built afterwards (see model.go's
	// buildEnsembleModel).
	derived []*field.DerivedField
}

func newBuildCtx(cfg *config) *buildCtx {
	return &buildCtx{
		indexer:  core.NewIndexer(),
		interner: core.NewInterner(cfg.hashedStrings),
		registry: function.NewRegistry(cfg.regexSupport),
		cfg:      cfg,
	}
}

// fieldIndex returns the Indexer slot for name, registering it (typed, if
// not already known) when first seen. Mirrors core/indexer.h's
// get_or_set(name, datatype) overload: a field's type is fixed by whichever
// declaration (DataField, MiningField, DerivedField, ...) is processed
// first.
func (b *buildCtx) fieldIndex(name string, dt core.DataType) int {
	idx, _ := b.indexer.GetOrSetTyped(name, dt)
	return idx
}

// literal parses a value declared directly in the PMML document text (a
// DataField <Value value="...">, a <Constant>, a TargetValue default) into
// a core.Value of the given declared type. Numeric coercion goes through
// spf13/cast (the same library the MiningSchema input path would reach for
// were it parsing a raw request rather than a literal baked into the
// document). A Double literal cast can't read as a number becomes
// core.MissingValue; a String literal is interned.
func (b *buildCtx) literal(text string, dt core.DataType) core.Value {
	switch dt {
	case core.Boolean:
		v, err := cast.ToBoolE(text)
		if err != nil {
			return core.NewBool(text == "1" || text == "true")
		}
		return core.NewBool(v)
	case core.Double:
		f, err := cast.ToFloat64E(text)
		if err != nil {
			return core.MissingValue
		}
		return core.NewDouble(f)
	default:
		return b.interner.FromString(text, b.cfg.regexSupport)
	}
}
