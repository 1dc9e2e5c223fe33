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

// Package pmml loads a serialized PMML predictive-model document and
// evaluates it against input records. It is the public façade over the
// core/loader/model packages: Load builds an immutable Model from a file on
// disk, and Model.Score/Predict/Validate run the per-sample evaluation
// pipeline described in spec.md's control-flow summary — clone base sample,
// mining-schema prepare, derived-field DAG, mining-schema validate, model
// dispatch, target transform, output dictionary. Grounded on
// core/internal_model.h's top-level PMML/InternalModel split.
package pmml

import (
	"context"
	"strconv"

	"github.com/opentracing/opentracing-go"

	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/loader"
)

// Option reconfigures how Load parses and evaluates a document (string
// interning scheme, regex support, intra-request ensemble parallelism). A
// thin re-export of loader.Option so callers never need to import the
// loader package directly.
type Option = loader.Option

var (
	WithHashedStrings     = loader.WithHashedStrings
	WithRegexSupport      = loader.WithRegexSupport
	WithParallelEnsembles = loader.WithParallelEnsembles
)

// Model is a fully loaded, immutable PMML document ready to score input
// records. Two concurrent callers may share one Model by reference without
// coordination (spec.md §5): no field of Model is mutated after Load
// returns.
type Model struct {
	doc        *loader.Document
	baseSample *core.Sample
}

// Load reads the PMML document at path (plain XML, or a single-entry zip
// archive when zipped is true) and builds a ready-to-score Model. It fails
// with core.ErrParsing if the document is unreadable, declares no
// DataDictionary, declares no supported top-level model element, or any
// other structural requirement of spec.md §6 is violated.
func Load(path string, zipped bool, opts ...Option) (*Model, error) {
	doc, err := loader.Load(path, zipped, opts...)
	if err != nil {
		return nil, err
	}
	return &Model{doc: doc, baseSample: core.NewSample(doc.Indexer.Size())}, nil
}

// prepare builds the per-request Sample: clone the canonical base sample,
// run the mining schema's prepare pass over raw input, then the
// derived-field DAG in its dependency order.
func (m *Model) prepare(input map[string]string) (*core.Sample, error) {
	sample := m.baseSample.Clone()
	if err := m.doc.MiningSchema.Prepare(sample, input, m.doc.Interner); err != nil {
		return nil, err
	}
	for _, df := range m.doc.Derived {
		if err := df.Prepare(sample); err != nil {
			return nil, err
		}
	}
	return sample, nil
}

// Score runs the full evaluation pipeline for one input record — mining
// schema prepare, derived-field DAG, mining-schema validate, model dispatch,
// target transform, output dictionary — and returns the resulting
// Prediction. It may fail with core.ErrMissing, core.ErrInvalid or
// core.ErrMath, per spec.md §7's propagation policy.
//
// ctx carries a tracing span (opentracing.StartSpanFromContext), tagged with
// the model's mining function and field count, mirroring how sql.Context
// carries a span through the teacher's row-execution path end to end.
// Scoring never suspends, so ctx is never selected on otherwise.
func (m *Model) Score(ctx context.Context, input map[string]string) (*Prediction, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "pmml.Score")
	defer span.Finish()
	span.SetTag("mining.function", m.doc.Function.String())
	span.SetTag("mining.fields", strconv.Itoa(m.doc.Indexer.Size()))

	sample, err := m.prepare(input)
	if err != nil {
		return nil, err
	}

	ok, err := m.doc.MiningSchema.Validate(sample)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, core.ErrInvalid.New("<mining schema>", "input fails declared field constraints")
	}

	score, err := m.doc.Model.Score(sample)
	if err != nil {
		return nil, err
	}

	m.doc.Target.Apply(score)

	if m.doc.Outputs != nil {
		if err := m.doc.Outputs.Prepare(sample, score); err != nil {
			return nil, err
		}
	}

	return newPrediction(score, sample, m.doc.Outputs, m.doc.Interner), nil
}

// Predict runs the same pipeline as Score (output dictionary included) and
// returns only the winning label's string rendering.
func (m *Model) Predict(ctx context.Context, input map[string]string) (string, error) {
	prediction, err := m.Score(ctx, input)
	if err != nil {
		return "", err
	}
	return prediction.AsString(), nil
}

// Validate reports whether input satisfies every non-target field's
// declared constraints, without running the model itself. It only fails if
// the mining-schema prepare pass itself hits a propagating error (spec.md
// §8 property 3: a false Validate implies Score raises core.ErrInvalid,
// unless a field's own treatment is as_is/as_missing).
func (m *Model) Validate(ctx context.Context, input map[string]string) (bool, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "pmml.Validate")
	defer span.Finish()

	sample, err := m.prepare(input)
	if err != nil {
		return false, err
	}
	return m.doc.MiningSchema.Validate(sample)
}

// MiningFunction reports whether the loaded model performs classification
// or regression.
func (m *Model) MiningFunction() core.MiningFunction {
	return m.doc.Function
}
