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

// Package norm implements the PMML regression normalization link functions
// (logit, probit, cloglog, loglog, cauchit, exp, softmax, simplemax, none)
// in their single-output, categorical and ordinal forms. Grounded on
// math/normalizationmethods.h, math/misc.h and
// regressionmodel/normalizationmethodtype.h.
package norm

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/amadeus-pmml/go-pmml/core"
)

// LinkFunction names one of the PMML REGRESSIONNORMALIZATIONMETHOD values.
// Grounded on regressionmodel/normalizationmethodtype.h.
type LinkFunction int

const (
	None LinkFunction = iota
	SimpleMax
	SoftMax
	Logit
	Probit
	CLogLog
	Exp
	LogLog
	Cauchit
)

// ParseLinkFunction maps a normalizationMethod attribute to a LinkFunction;
// an unrecognized value falls back to None, matching the original
// converter's out_of_range catch.
func ParseLinkFunction(s string) LinkFunction {
	switch strings.ToLower(s) {
	case "simplemax":
		return SimpleMax
	case "softmax":
		return SoftMax
	case "logit":
		return Logit
	case "probit":
		return Probit
	case "cloglog":
		return CLogLog
	case "exp":
		return Exp
	case "loglog":
		return LogLog
	case "cauchit":
		return Cauchit
	default:
		return None
	}
}

var standardNormal = distuv.Normal{Mu: 0, Sigma: 1}
var standardCauchy = distuv.Cauchy{X0: 0, Gamma: 1}

func logit(a float64) float64 {
	return 1 / (1 + math.Exp(-a))
}

func probit(a float64) float64 {
	return standardNormal.CDF(a)
}

func cloglog(a float64) float64 {
	return 1 - math.Exp(-math.Exp(a))
}

func loglog(a float64) float64 {
	return math.Exp(-math.Exp(a))
}

func cauchit(a float64) float64 {
	return standardCauchy.CDF(a)
}

func closest0or1(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// Single applies a LinkFunction to the lone estimate of a regression model
// predicting a continuous target. Grounded on math/normalizationmethods.h's
// single_* family. single_softmax reuses logit, matching the original
// (a categorical-only method has no single-value form there).
func Single(fn LinkFunction, a float64) float64 {
	switch fn {
	case SoftMax:
		return logit(a)
	case Logit:
		return logit(a)
	case Probit:
		return probit(a)
	case CLogLog:
		return cloglog(a)
	case Exp:
		return math.Exp(a)
	case LogLog:
		return loglog(a)
	case Cauchit:
		return cauchit(a)
	default:
		return a
	}
}

func categoricalBase(values []float64, function func(float64) float64, name string) ([]float64, error) {
	if len(values) != 2 {
		return nil, core.ErrMath.New(name + " must have exactly 2 inputs")
	}
	a := function(values[0])
	return []float64{a, 1 - a}, nil
}

// Categorical applies a LinkFunction across a RegressionTable's full set of
// raw per-class scores, returning normalized probabilities that sum to one.
// Grounded on math/normalizationmethods.h's categorical_* family.
func Categorical(fn LinkFunction, values []float64) ([]float64, error) {
	switch fn {
	case SoftMax:
		exps := make([]float64, len(values))
		sum := 0.0
		for i, v := range values {
			exps[i] = math.Exp(v)
			sum += exps[i]
		}
		result := make([]float64, len(values))
		for i, e := range exps {
			result[i] = e / sum
		}
		return result, nil

	case SimpleMax:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		result := make([]float64, len(values))
		for i, v := range values {
			result[i] = v / sum
		}
		return result, nil

	case Logit:
		return categoricalBase(values, logit, "logit")
	case Probit:
		return categoricalBase(values, probit, "probit")
	case CLogLog:
		return categoricalBase(values, cloglog, "cloglog")
	case LogLog:
		return categoricalBase(values, loglog, "loglog")
	case Cauchit:
		if len(values) != 2 {
			return nil, core.ErrMath.New("cauchit must have exactly 2 inputs")
		}
		a := cauchit(values[0])
		return []float64{a, 1 - a}, nil

	default: // None
		if len(values) == 0 {
			return nil, core.ErrMath.New("none must have at least 1 input")
		}
		result := make([]float64, 0, len(values)+1)
		sum := 0.0
		for i := 0; i < len(values)-1; i++ {
			sum += values[i]
			result = append(result, values[i])
		}
		result = append(result, 1-sum)

		if len(values) == 2 {
			result[0] = closest0or1(result[0])
			result[1] = closest0or1(result[1])
		}
		return result, nil
	}
}

func ordinalBase(values []float64, function func(float64) float64) []float64 {
	result := make([]float64, 0, len(values)+1)
	result = append(result, function(values[0]))
	for i := 1; i < len(values); i++ {
		result = append(result, function(values[i])-function(values[i-1]))
	}
	result = append(result, 1-function(values[len(values)-1]))
	return result
}

// Ordinal applies a LinkFunction across an ordinal target's cumulative
// scores. Grounded on math/normalizationmethods.h's ordinal_* family.
func Ordinal(fn LinkFunction, values []float64) []float64 {
	switch fn {
	case Logit:
		return ordinalBase(values, logit)
	case Probit:
		return ordinalBase(values, probit)
	case Exp:
		return ordinalBase(values, math.Exp)
	case CLogLog:
		return ordinalBase(values, cloglog)
	case LogLog:
		return ordinalBase(values, loglog)
	case Cauchit:
		return ordinalBase(values, cauchit)
	default: // None
		return ordinalBase(values, func(a float64) float64 { return a })
	}
}
