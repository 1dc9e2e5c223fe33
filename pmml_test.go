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

package pmml

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const irisTreePMML = `<?xml version="1.0"?>
<PMML version="4.3">
  <DataDictionary>
    <DataField name="sepal_length" optype="continuous" dataType="double"/>
    <DataField name="sepal_width" optype="continuous" dataType="double"/>
    <DataField name="petal_length" optype="continuous" dataType="double"/>
    <DataField name="petal_width" optype="continuous" dataType="double"/>
    <DataField name="species" optype="categorical" dataType="string">
      <Value value="Iris-setosa"/>
      <Value value="Iris-versicolor"/>
      <Value value="Iris-virginica"/>
    </DataField>
  </DataDictionary>
  <TreeModel functionName="classification" noTrueChildStrategy="returnNullPrediction">
    <MiningSchema>
      <MiningField name="sepal_length" usageType="active"/>
      <MiningField name="sepal_width" usageType="active"/>
      <MiningField name="petal_length" usageType="active"/>
      <MiningField name="petal_width" usageType="active"/>
      <MiningField name="species" usageType="target"/>
    </MiningSchema>
    <Node id="0" score="Iris-setosa">
      <True/>
      <Node id="1" score="Iris-setosa">
        <SimplePredicate field="petal_length" operator="lessOrEqual" value="2.5"/>
        <ScoreDistribution value="Iris-setosa" recordCount="50"/>
      </Node>
      <Node id="2" score="Iris-versicolor">
        <CompoundPredicate booleanOperator="and">
          <SimplePredicate field="petal_length" operator="greaterThan" value="2.5"/>
          <SimplePredicate field="petal_width" operator="lessOrEqual" value="1.7"/>
        </CompoundPredicate>
        <ScoreDistribution value="Iris-versicolor" recordCount="49"/>
        <ScoreDistribution value="Iris-virginica" recordCount="5"/>
      </Node>
      <Node id="3" score="Iris-virginica">
        <SimplePredicate field="petal_width" operator="greaterThan" value="1.7"/>
        <ScoreDistribution value="Iris-versicolor" recordCount="1"/>
        <ScoreDistribution value="Iris-virginica" recordCount="45"/>
      </Node>
    </Node>
  </TreeModel>
</PMML>`

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "model.pmml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAndScoreIrisTree(t *testing.T) {
	path := writeFixture(t, irisTreePMML)
	model, err := Load(path, false)
	require.NoError(t, err)

	prediction, err := model.Score(context.Background(), map[string]string{
		"sepal_length": "6.6",
		"sepal_width":  "2.9",
		"petal_length": "4.6",
		"petal_width":  "1.3",
	})
	require.NoError(t, err)
	require.Equal(t, "Iris-versicolor", prediction.AsString())

	var total float64
	for _, p := range prediction.Distribution() {
		total += p
	}
	require.InDelta(t, 1.0, total, 1e-9)
}

func TestPredictReturnsWinningLabel(t *testing.T) {
	path := writeFixture(t, irisTreePMML)
	model, err := Load(path, false)
	require.NoError(t, err)

	label, err := model.Predict(context.Background(), map[string]string{
		"sepal_length": "5.0",
		"sepal_width":  "3.3",
		"petal_length": "1.4",
		"petal_width":  "0.2",
	})
	require.NoError(t, err)
	require.Equal(t, "Iris-setosa", label)
}

func TestValidateAcceptsInDomainInput(t *testing.T) {
	path := writeFixture(t, irisTreePMML)
	model, err := Load(path, false)
	require.NoError(t, err)

	ok, err := model.Validate(context.Background(), map[string]string{
		"sepal_length": "6.6",
		"sepal_width":  "2.9",
		"petal_length": "4.6",
		"petal_width":  "1.3",
	})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLoadFailsOnMissingModelElement(t *testing.T) {
	path := writeFixture(t, `<PMML version="4.3"><DataDictionary/></PMML>`)
	_, err := Load(path, false)
	require.Error(t, err)
}

func TestLoadFailsOnUnscorableModel(t *testing.T) {
	unscorable := `<PMML version="4.3">
  <DataDictionary>
    <DataField name="x" optype="continuous" dataType="double"/>
  </DataDictionary>
  <TreeModel functionName="classification" isScorable="false">
    <MiningSchema>
      <MiningField name="x" usageType="active"/>
    </MiningSchema>
    <Node id="0" score="a"><True/></Node>
  </TreeModel>
</PMML>`
	path := writeFixture(t, unscorable)
	_, err := Load(path, false)
	require.Error(t, err)
}

func TestDistributionMatchesExpectedClassSet(t *testing.T) {
	path := writeFixture(t, irisTreePMML)
	model, err := Load(path, false)
	require.NoError(t, err)

	prediction, err := model.Score(context.Background(), map[string]string{
		"sepal_length": "6.6",
		"sepal_width":  "2.9",
		"petal_length": "4.6",
		"petal_width":  "1.3",
	})
	require.NoError(t, err)

	dist := prediction.Distribution()
	gotClasses := make([]string, 0, len(dist))
	for class := range dist {
		gotClasses = append(gotClasses, class)
	}
	wantClasses := []string{"Iris-versicolor", "Iris-virginica"}
	if diff := cmp.Diff(wantClasses, gotClasses, cmp.Transformer("sorted", func(s []string) []string {
		out := append([]string(nil), s...)
		sort.Strings(out)
		return out
	})); diff != "" {
		t.Fatalf("unexpected class set (-want +got):\n%s", diff)
	}
}
