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

// config collects the runtime knobs a Load caller may opt into. Grounded on
// spec.md §3.3/§9: STRING_OPTIMIZATION and REGEX_SUPPORT were original
// compile-time flags, modeled here as functional options instead.
type config struct {
	hashedStrings  bool
	regexSupport   bool
	parallelEnsembleMin int
}

// Option configures a Load call.
type Option func(*config)

// WithHashedStrings switches string Values to the xxhash-derived
// STRING_OPTIMIZATION id scheme (core.NewInterner(true)) instead of
// table-interning, trading a (negligible) collision risk for no forward
// string-to-id table; the reverse id-to-text map is still recorded.
func WithHashedStrings() Option {
	return func(c *config) { c.hashedStrings = true }
}

// WithRegexSupport registers the "replace" built-in function, mirroring the
// original's REGEX_SUPPORT compile flag.
func WithRegexSupport() Option {
	return func(c *config) { c.regexSupport = true }
}

// WithParallelEnsembles sets ensemble.Model.ParallelMin: an ensemble with
// more than min segments reduces MajorityVote, regression Average and Sum
// across a worker pool. Zero, the default, keeps every reduction sequential.
func WithParallelEnsembles(min int) Option {
	return func(c *config) { c.parallelEnsembleMin = min }
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
