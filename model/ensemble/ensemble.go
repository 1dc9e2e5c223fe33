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

// Package ensemble implements the PMML MiningModel (Segmentation): a set of
// weighted, predicate-guarded member models combined by one of the
// MULTIPLE-MODEL-METHOD strategies. Grounded on
// ensemblemodel/ensemblemodel.h, ensemblemodel/multiplemodelmethod.h and
// ensemblemodel/segment.h.
package ensemble

import (
	"runtime"
	"strings"
	"sync"

	"github.com/amadeus-pmml/go-pmml/core"
	"github.com/amadeus-pmml/go-pmml/core/field"
	"github.com/amadeus-pmml/go-pmml/core/predicate"
	"github.com/amadeus-pmml/go-pmml/model"
)

// DerivedRunner is the narrow slice of field.DerivedField a ModelChain
// augmentation needs: re-running the derived-field DAG against a sample
// that a prior segment has just mutated. Declared here (rather than
// importing core/field's concrete type) to keep this package's dependency
// surface to what it actually calls.
type DerivedRunner interface {
	Prepare(sample *core.Sample) error
}

// Method identifies one of the PMML MULTIPLE-MODEL-METHOD strategies.
// Grounded on ensemblemodel/multiplemodelmethod.h.
type Method int

const (
	MajorityVote Method = iota
	WeightedMajorityVote
	Average
	WeightedAverage
	Sum
	ModelChain
)

// ParseMethod maps a multipleModelMethod attribute to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "majorityvote":
		return MajorityVote, nil
	case "weightedmajorityvote":
		return WeightedMajorityVote, nil
	case "average":
		return Average, nil
	case "weightedaverage":
		return WeightedAverage, nil
	case "sum":
		return Sum, nil
	case "modelchain":
		return ModelChain, nil
	default:
		return 0, core.ErrParsing.New(s + " not supported")
	}
}

// Segment is one <Segment>: a weighted, predicate-guarded member model. A
// nil Predicate always matches. ChainOutput, when set, is the sample slot
// this segment's winning value is written to before the next segment in a
// ModelChain runs, letting a later segment read an earlier one's prediction
// as an ordinary field. Outputs, when set, are this segment's own declared
// OutputFields, resolved into the shared sample alongside the chain output
// so a later segment may also reference them by name. Grounded on
// ensemblemodel/segment.h.
type Segment struct {
	Weight           float64
	Predicate        *predicate.Predicate
	Model            model.Model
	HasChainOutput   bool
	ChainOutputIndex int
	Outputs          *field.OutputDictionary
}

func (s *Segment) match(sample *core.Sample) (bool, error) {
	if s.Predicate == nil {
		return true, nil
	}
	return s.Predicate.Eval(sample)
}

// Model implements model.Model for a PMML MiningModel: it fans a sample out
// across Segments and reduces their individual scores with Method. Grounded
// on ensemblemodel/ensemblemodel.h.
type Model struct {
	Function  core.MiningFunction
	Method    Method
	Segments  []Segment
	// NumClasses is the target field's declared number of valid values,
	// used as the winning-vote threshold denominator by
	// WeightedMajorityVote (1/NumClasses). Zero disables early-exit.
	NumClasses int
	// ParallelMin is the segment-count threshold above which MajorityVote,
	// regression Average and Sum reduce their segments with a worker-pool
	// fan-out instead of a single sequential loop (spec.md §5, "optional
	// intra-request parallelism"). Zero disables parallel reduction.
	ParallelMin int
	// Derived re-runs the owning model's derived-field DAG against a
	// ModelChain's augmented sample. Only the first augmentation triggers
	// this (spec.md §4.12): later segments' inputs are already present from
	// the first pass.
	Derived []DerivedRunner
}

// New builds a Model with no parallel-reduction threshold and no
// ModelChain derived-field rerun.
func New(function core.MiningFunction, method Method, segments []Segment, numClasses int) *Model {
	return &Model{Function: function, Method: method, Segments: segments, NumClasses: numClasses}
}

// WithParallelMin sets the segment-count threshold for parallel reduction.
func (m *Model) WithParallelMin(min int) *Model {
	m.ParallelMin = min
	return m
}

// WithDerived attaches the derived-field DAG a ModelChain's first
// augmentation must re-run.
func (m *Model) WithDerived(derived []DerivedRunner) *Model {
	m.Derived = derived
	return m
}

// Score combines the ensemble's member scores per Method, mirroring
// multiplemodelmethod.h's to_function dispatch.
func (m *Model) Score(sample *core.Sample) (*core.Score, error) {
	switch m.Method {
	case MajorityVote:
		return m.majorityVote(sample)
	case WeightedMajorityVote:
		return m.weightedMajorityVote(sample)
	case Average:
		if m.Function == core.Regression {
			return m.regressionAverage(sample)
		}
		return m.classificationAverage(sample, 1)
	case WeightedAverage:
		return m.classificationWeightedAverage(sample)
	case Sum:
		return m.sum(sample)
	case ModelChain:
		return m.modelChain(sample)
	}
	return nil, core.ErrParsing.New("unsupported multiple model method")
}

// classAccumulator tallies a value per distinct class label, in
// first-seen order so argmax ties resolve deterministically (PMML does not
// specify a tie-break order; the original's unordered_map iteration order
// is itself unspecified, so first-seen-among-segments is a faithful,
// reproducible stand-in).
type classAccumulator struct {
	order  []float64
	labels map[float64]core.Value
	values map[float64]float64
}

func newClassAccumulator() *classAccumulator {
	return &classAccumulator{labels: make(map[float64]core.Value), values: make(map[float64]float64)}
}

func (c *classAccumulator) add(label core.Value, delta float64) {
	if _, ok := c.values[label.Number]; !ok {
		c.order = append(c.order, label.Number)
		c.labels[label.Number] = label
	}
	c.values[label.Number] += delta
}

// argmax returns the highest-value class, stopping early once a value
// exceeds threshold, per majority_vote/weighted_majority_vote's `if
// (max_prob > winning_threshold) break;`.
func (c *classAccumulator) argmax(threshold float64) (core.Value, float64, bool) {
	maxProb := 0.0
	var winner core.Value
	found := false
	for _, key := range c.order {
		if maxProb > threshold {
			break
		}
		v := c.values[key]
		if v > maxProb {
			maxProb = v
			winner = c.labels[key]
			found = true
		}
	}
	return winner, maxProb, found
}

func (c *classAccumulator) toScore(winner core.Value, maxProb float64, found bool) *core.Score {
	score := core.NewScore()
	if found {
		score.Empty = false
		score.PredictedLabel = winner
		score.DoubleScore = maxProb
	}
	for _, key := range c.order {
		score.Probabilities[key] = c.values[key]
	}
	return score
}

// parallelize reports whether segment evaluation should fan out across a
// worker pool rather than run as one sequential loop. Spec.md §5 gates this
// on segment count (ParallelMin, zero by default) rather than always
// threading, since the fan-out/reduce overhead only pays for itself once a
// model has enough segments.
func (m *Model) parallelize() bool {
	return m.ParallelMin > 0 && len(m.Segments) > m.ParallelMin
}

// segmentChunks splits [0, len(m.Segments)) into up to GOMAXPROCS
// contiguous ranges for a worker-pool reduction.
func (m *Model) segmentChunks() [][2]int {
	workers := runtime.GOMAXPROCS(0)
	n := len(m.Segments)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers

	var chunks [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		chunks = append(chunks, [2]int{start, end})
	}
	return chunks
}

// reduceAccumulators runs accumulate over every segment, sequentially or (if
// parallelize reports true) spread across a worker per segmentChunks range,
// each with its own private classAccumulator merged into the result by a
// final serial pass. Grounded on spec.md §5: aggregators are commutative and
// associative over doubles, so worker count does not change the result up
// to floating-point reordering.
func (m *Model) reduceAccumulators(accumulate func(seg *Segment, acc *classAccumulator) error) (*classAccumulator, error) {
	if !m.parallelize() {
		acc := newClassAccumulator()
		for i := range m.Segments {
			if err := accumulate(&m.Segments[i], acc); err != nil {
				return nil, err
			}
		}
		return acc, nil
	}

	chunks := m.segmentChunks()
	partials := make([]*classAccumulator, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	for ci, rng := range chunks {
		wg.Add(1)
		go func(ci int, lo, hi int) {
			defer wg.Done()
			acc := newClassAccumulator()
			for i := lo; i < hi; i++ {
				if err := accumulate(&m.Segments[i], acc); err != nil {
					errs[ci] = err
					return
				}
			}
			partials[ci] = acc
		}(ci, rng[0], rng[1])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	merged := newClassAccumulator()
	for _, p := range partials {
		for _, key := range p.order {
			merged.add(p.labels[key], p.values[key])
		}
	}
	return merged, nil
}

func (m *Model) majorityVote(sample *core.Sample) (*core.Score, error) {
	n := float64(len(m.Segments))

	acc, err := m.reduceAccumulators(func(seg *Segment, acc *classAccumulator) error {
		ok, err := seg.match(sample)
		if err != nil || !ok {
			return err
		}
		score, err := seg.Model.Score(sample)
		if err != nil || score.Empty {
			return err
		}
		acc.add(score.PredictedLabel, 1.0/n)
		return nil
	})
	if err != nil {
		return nil, err
	}

	winner, maxProb, found := acc.argmax(0.5)
	return acc.toScore(winner, maxProb, found), nil
}

func (m *Model) weightedMajorityVote(sample *core.Sample) (*core.Score, error) {
	n := float64(len(m.Segments))
	threshold := 1.0
	if m.NumClasses > 0 {
		threshold = 1.0 / float64(m.NumClasses)
	}
	acc := newClassAccumulator()

	for i := range m.Segments {
		seg := &m.Segments[i]
		ok, err := seg.match(sample)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		score, err := seg.Model.Score(sample)
		if err != nil {
			return nil, err
		}
		if score.Empty {
			continue
		}
		acc.add(score.PredictedLabel, seg.Weight/n)
	}

	winner, maxProb, found := acc.argmax(threshold)
	return acc.toScore(winner, maxProb, found), nil
}

// classificationAverage averages every segment's probability distribution,
// matching classification_average/classification_weighted_average: segment
// 0 always contributes, regardless of its Predicate.
func (m *Model) classificationAverage(sample *core.Sample, weightOfRest float64) (*core.Score, error) {
	n := float64(len(m.Segments))
	acc := newClassAccumulator()

	first, err := m.Segments[0].Model.Score(sample)
	if err != nil {
		return nil, err
	}
	for key, p := range first.Probabilities {
		acc.add(core.NewDouble(key), p)
	}

	for i := 1; i < len(m.Segments); i++ {
		seg := &m.Segments[i]
		ok, err := seg.match(sample)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		score, err := seg.Model.Score(sample)
		if err != nil {
			return nil, err
		}
		for key, p := range score.Probabilities {
			acc.add(core.NewDouble(key), p*weightOfRest)
		}
	}

	for _, key := range acc.order {
		acc.values[key] /= n
	}

	winner, maxProb, found := acc.argmax(1.0)
	return acc.toScore(winner, maxProb, found), nil
}

func (m *Model) classificationWeightedAverage(sample *core.Sample) (*core.Score, error) {
	n := float64(len(m.Segments))
	acc := newClassAccumulator()

	first, err := m.Segments[0].Model.Score(sample)
	if err != nil {
		return nil, err
	}
	for key, p := range first.Probabilities {
		acc.add(core.NewDouble(key), p)
	}

	for i := 1; i < len(m.Segments); i++ {
		seg := &m.Segments[i]
		ok, err := seg.match(sample)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		score, err := seg.Model.Score(sample)
		if err != nil {
			return nil, err
		}
		for key, p := range score.Probabilities {
			acc.add(core.NewDouble(key), p*seg.Weight)
		}
	}

	for _, key := range acc.order {
		acc.values[key] /= n
	}

	threshold := 1.0
	if m.NumClasses > 0 {
		threshold = 1.0 / float64(m.NumClasses)
	}
	winner, maxProb, found := acc.argmax(threshold)
	return acc.toScore(winner, maxProb, found), nil
}

// reduceDoubles mirrors reduceAccumulators for the two plain-double
// reductions (regression Average and Sum): accumulate contributes a
// (value, weight) pair per matching segment, sequentially or over a
// per-chunk partial sum merged serially.
func (m *Model) reduceDoubles(accumulate func(seg *Segment) (value float64, weight float64, matched bool, err error)) (sum float64, count float64, err error) {
	if !m.parallelize() {
		for i := range m.Segments {
			v, w, matched, err := accumulate(&m.Segments[i])
			if err != nil {
				return 0, 0, err
			}
			if !matched {
				continue
			}
			sum += v
			count += w
		}
		return sum, count, nil
	}

	chunks := m.segmentChunks()
	sums := make([]float64, len(chunks))
	counts := make([]float64, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	for ci, rng := range chunks {
		wg.Add(1)
		go func(ci, lo, hi int) {
			defer wg.Done()
			var s, c float64
			for i := lo; i < hi; i++ {
				v, w, matched, err := accumulate(&m.Segments[i])
				if err != nil {
					errs[ci] = err
					return
				}
				if !matched {
					continue
				}
				s += v
				c += w
			}
			sums[ci], counts[ci] = s, c
		}(ci, rng[0], rng[1])
	}
	wg.Wait()

	for _, e := range errs {
		if e != nil {
			return 0, 0, e
		}
	}
	for i := range sums {
		sum += sums[i]
		count += counts[i]
	}
	return sum, count, nil
}

func (m *Model) regressionAverage(sample *core.Sample) (*core.Score, error) {
	sum, count, err := m.reduceDoubles(func(seg *Segment) (float64, float64, bool, error) {
		ok, err := seg.match(sample)
		if err != nil || !ok {
			return 0, 0, false, err
		}
		score, err := seg.Model.Score(sample)
		if err != nil {
			return 0, 0, false, err
		}
		return score.DoubleScore, 1, true, nil
	})
	if err != nil {
		return nil, err
	}

	result := core.NewScore()
	if count > 0 {
		result.Empty = false
		result.DoubleScore = sum / count
		result.PredictedLabel = core.NewDouble(result.DoubleScore)
	}
	return result, nil
}

func (m *Model) sum(sample *core.Sample) (*core.Score, error) {
	total, _, err := m.reduceDoubles(func(seg *Segment) (float64, float64, bool, error) {
		ok, err := seg.match(sample)
		if err != nil || !ok {
			return 0, 0, false, err
		}
		score, err := seg.Model.Score(sample)
		if err != nil {
			return 0, 0, false, err
		}
		return score.DoubleScore, 0, true, nil
	})
	if err != nil {
		return nil, err
	}

	result := core.NewScore()
	result.Empty = false
	result.DoubleScore = total
	result.PredictedLabel = core.NewDouble(total)
	return result, nil
}

// modelChain scores every segment but the last in order. For each matching
// segment it writes the winning value into its declared ChainOutputIndex
// slot and resolves any of the segment's own declared OutputFields into the
// shared sample, before the next segment runs; the final segment is then
// scored unconditionally. Grounded on multiplemodelmethod.h's model_chain
// (augment_first/augment write both the predicted value and the segment's
// output fields into the running sample before the next segment).
func (m *Model) modelChain(sample *core.Sample) (*core.Score, error) {
	chained := sample.Clone()
	augmented := false

	for i := 0; i < len(m.Segments)-1; i++ {
		seg := &m.Segments[i]
		ok, err := seg.match(chained)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		score, err := seg.Model.Score(chained)
		if err != nil {
			return nil, err
		}
		if seg.HasChainOutput {
			chained.Set(seg.ChainOutputIndex, score.PredictedLabel)
		}
		if seg.Outputs != nil {
			if err := seg.Outputs.Prepare(chained, score); err != nil {
				return nil, err
			}
		}

		// Only the first augmentation needs to re-run the derived-field
		// DAG: it may consume the freshly written chain output/output
		// fields, but every later segment's inputs were already resolved
		// by that first pass (spec.md §4.12).
		if !augmented {
			for _, d := range m.Derived {
				if err := d.Prepare(chained); err != nil {
					return nil, err
				}
			}
			augmented = true
		}
	}

	return m.Segments[len(m.Segments)-1].Model.Score(chained)
}
