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

// Package loader reads a PMML document off disk (plain XML or a zipped
// single-entry archive) and builds the in-memory evaluation graph the core
// and model packages operate over: a DataDictionary, a top-level
// MiningSchema, a dependency-ordered set of DerivedFields, a dispatched
// model.Model, a Target and an OutputDictionary, all sharing one
// core.Indexer and core.Interner. It has no knowledge of the pmml package;
// pmml.Load calls into loader and wraps the result in its public façade.
package loader

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/field"
	"github.com/amadeus-pmml/go-pmml/core/target"
	"github.com/amadeus-pmml/go-pmml/model"
)

// modelElementNames lists the three concrete model elements a document's
// root may carry. Grounded on core/internal_model.h's model dispatch.
var modelElementNames = []string{"TreeModel", "RegressionModel", "MiningModel"}

// Document is the fully loaded, ready-to-score contents of one PMML file:
// the shared Indexer/Interner, the data dictionary, the top-level mining
// schema and derived fields, the dispatched model, its Target rescaling and
// its OutputDictionary. Grounded on core/internal_model.h's PMML class,
// which owns the same set of parsed sub-objects behind one load() call.
type Document struct {
	Indexer      *core.Indexer
	Interner     *core.Interner
	DataFields   map[string]*field.DataField
	MiningSchema *field.MiningSchema
	Derived      []*field.DerivedField
	Function     core.MiningFunction
	Model        model.Model
	Target       *target.Target
	Outputs      *field.OutputDictionary
}

// Load reads the PMML document at path and builds a Document. When zipped
// is true, path is opened as a zip archive and its first entry with a .xml
// or .pmml extension is parsed, or its first entry if none has one (a
// document distributed as a compressed archive, per spec.md's expanded
// load-time concerns); otherwise path is parsed as plain XML.
func Load(path string, zipped bool, opts ...Option) (*Document, error) {
	r, closeFn, err := openSource(path, zipped)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	root, err := parseXML(r)
	if err != nil {
		return nil, err
	}

	return build(root, newConfig(opts))
}

func openSource(path string, zipped bool) (io.Reader, func() error, error) {
	if !zipped {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, core.WrapParsing(err, path)
		}
		return f, f.Close, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, core.WrapParsing(err, path)
	}
	if len(zr.File) == 0 {
		zr.Close()
		return nil, nil, core.ErrParsing.New("empty zip archive: " + path)
	}

	entry := zr.File[0]
	for _, f := range zr.File {
		if strings.EqualFold(filepath.Ext(f.Name), ".xml") || strings.EqualFold(filepath.Ext(f.Name), ".pmml") {
			entry = f
			break
		}
	}

	rc, err := entry.Open()
	if err != nil {
		zr.Close()
		return nil, nil, core.WrapParsing(errors.Wrap(err, "loader: opening zip entry "+entry.Name), entry.Name)
	}
	return rc, func() error {
		rc.Close()
		return zr.Close()
	}, nil
}

func build(root *xmlNode, cfg *config) (*Document, error) {
	if root == nil || !strings.EqualFold(root.Tag, "PMML") {
		return nil, core.ErrParsing.New("document declares no root PMML element")
	}

	b := newBuildCtx(cfg)

	ddNode, ok := root.GetChild("DataDictionary")
	if !ok {
		return nil, core.ErrParsing.New("document declares no DataDictionary")
	}
	dictionary := b.buildDataDictionary(ddNode)

	knownInput := func(name string) bool {
		_, ok := dictionary[name]
		return ok
	}

	var transformNodes []*xmlNode
	if tdNode, ok := root.GetChild("TransformationDictionary"); ok {
		transformNodes = append(transformNodes, tdNode)
	}

	modelNode, ok := root.GetChildByList(modelElementNames)
	if !ok {
		return nil, core.ErrParsing.New("document declares no model element")
	}
	if strings.EqualFold(modelNode.GetAttribute("isScorable"), "false") {
		return nil, core.ErrParsing.New(modelNode.Tag + " declares isScorable=false")
	}

	if ltNode, ok := modelNode.GetChild("LocalTransformations"); ok {
		transformNodes = append(transformNodes, ltNode)
	}

	derived, err := b.buildDerivedFields(transformNodes, knownInput)
	if err != nil {
		return nil, err
	}
	derivedKnown := func(name string) bool {
		if knownInput(name) {
			return true
		}
		for _, df := range derived {
			if df.Name == name {
				return true
			}
		}
		return false
	}

	b.derived = derived
	built, err := b.buildModel(modelNode, dictionary, derivedKnown)
	if err != nil {
		return nil, err
	}

	if !built.MiningSchema.HasTarget {
		placeholder := b.indexer.RandomName()
		idx, dt := b.indexer.GetOrSetTyped(placeholder, core.Double)
		df := field.NewDataField(placeholder, dt, core.Continuous, idx)
		synthetic := field.NewMiningField(*df, core.Target)
		built.MiningSchema.Fields = append(built.MiningSchema.Fields, synthetic)
		built.MiningSchema.TargetIndex = idx
		built.MiningSchema.HasTarget = true
	}

	targetsNode, _ := modelNode.GetChild("Targets")
	tgt := b.buildTarget(targetsNode, built.Function, built.MiningSchema.TargetIndex)

	logrus.WithFields(logrus.Fields{
		"function":      built.Function.String(),
		"fields":        b.indexer.Size(),
		"derivedFields": len(derived),
	}).Info("loaded PMML document")
	for _, df := range derived {
		logrus.WithFields(logrus.Fields{"field": df.Name}).Debug("derived field resolved")
	}

	return &Document{
		Indexer:      b.indexer,
		Interner:     b.interner,
		DataFields:   dictionary,
		MiningSchema: built.MiningSchema,
		Derived:      derived,
		Function:     built.Function,
		Model:        built.Model,
		Target:       tgt,
		Outputs:      built.Outputs,
	}, nil
}
