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

// Package core holds the evaluation primitives shared by every PMML model
// variant: field indexing, the unified Value scalar and the per-request
// Sample buffer.
package core

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// The four error kinds surfaced by the evaluation core. Missing and Invalid
// are sometimes caught locally (SURROGATE predicates, mapMissingTo,
// asMissing/asIs treatments); Parsing and Math always propagate to the
// caller.
var (
	// ErrParsing reports a malformed document, an unsupported construct, or
	// an un-scorable model.
	ErrParsing = errors.NewKind("pmml: parsing error: %s")
	// ErrMissing reports a predicate or expression observing a missing
	// value that its policy does not handle.
	ErrMissing = errors.NewKind("pmml: missing value for field %q")
	// ErrInvalid reports an input violating its field's constraints, a
	// built-in called with the wrong arity, or an internal error routed
	// through returnInvalid.
	ErrInvalid = errors.NewKind("pmml: invalid value for field %q: %s")
	// ErrMath reports a normalization or built-in producing a numerically
	// undefined result.
	ErrMath = errors.NewKind("pmml: math error: %s")
)

// WrapParsing folds a lower-level error (typically from encoding/xml or
// archive/zip) into ErrParsing while preserving it as the cause via Kind.Wrap,
// so the original failure is still reachable by unwrapping.
func WrapParsing(cause error, context string) error {
	if cause == nil {
		return nil
	}
	return ErrParsing.Wrap(cause, context)
}
