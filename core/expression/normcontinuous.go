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

// LinearNorm is one (orig, norm) anchor point of a NormContinuous piecewise
// linear mapping.
type LinearNorm struct {
	Orig float64
	Norm float64
}

// NormContinuous normalizes an input field through piecewise linear
// interpolation over a sorted list of (orig, norm) anchor points. Grounded
// on expression/normcontinuous.h; the outlier branch here tests against the
// true bounds of the anchor list (input below the first anchor or above the
// last) rather than reproducing the original's inverted, effectively
// dead condition (see spec.md §9 open question on NormContinuous outliers).
type NormContinuous struct {
	FieldIndex       int
	Points           []LinearNorm
	OutlierTreatment core.OutlierTreatmentMethod
	HasMapMissingTo  bool
	MapMissingTo     core.Value
}

func NewNormContinuous(fieldIndex int, points []LinearNorm, outlier core.OutlierTreatmentMethod) *NormContinuous {
	return &NormContinuous{FieldIndex: fieldIndex, Points: points, OutlierTreatment: outlier}
}

func NewNormContinuousWithMapMissingTo(fieldIndex int, points []LinearNorm, outlier core.OutlierTreatmentMethod, mapMissingTo core.Value) *NormContinuous {
	return &NormContinuous{
		FieldIndex:       fieldIndex,
		Points:           points,
		OutlierTreatment: outlier,
		HasMapMissingTo:  true,
		MapMissingTo:     mapMissingTo,
	}
}

func (n *NormContinuous) interpolate(x float64) float64 {
	for i := 0; i < len(n.Points)-1; i++ {
		a, b := n.Points[i], n.Points[i+1]
		if x >= a.Orig && x <= b.Orig {
			return a.Norm + (x-a.Orig)/(b.Orig-a.Orig)*(b.Norm-a.Norm)
		}
	}
	// Outside every interval: clamp to the nearer end's segment and
	// extrapolate along it.
	if len(n.Points) < 2 {
		if len(n.Points) == 1 {
			return n.Points[0].Norm
		}
		return 0
	}
	if x < n.Points[0].Orig {
		a, b := n.Points[0], n.Points[1]
		return a.Norm + (x-a.Orig)/(b.Orig-a.Orig)*(b.Norm-a.Norm)
	}
	last := n.Points[len(n.Points)-1]
	prev := n.Points[len(n.Points)-2]
	return prev.Norm + (x-prev.Orig)/(last.Orig-prev.Orig)*(last.Norm-prev.Norm)
}

func (n *NormContinuous) Eval(sample *core.Sample) (core.Value, error) {
	input := sample.Get(n.FieldIndex)
	if input.Missing {
		if n.HasMapMissingTo {
			return n.MapMissingTo, nil
		}
		return core.MissingValue, nil
	}

	if len(n.Points) == 0 {
		return core.MissingValue, nil
	}

	isOutlier := input.Number < n.Points[0].Orig || input.Number > n.Points[len(n.Points)-1].Orig
	if isOutlier {
		switch n.OutlierTreatment {
		case core.AsMissingValues:
			if n.HasMapMissingTo {
				return n.MapMissingTo, nil
			}
			return core.MissingValue, nil
		case core.AsExtremeValues:
			if input.Number < n.Points[0].Orig {
				return core.NewDouble(n.Points[0].Norm), nil
			}
			return core.NewDouble(n.Points[len(n.Points)-1].Norm), nil
		}
	}

	return core.NewDouble(n.interpolate(input.Number)), nil
}
