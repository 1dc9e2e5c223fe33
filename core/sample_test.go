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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSampleAllMissing(t *testing.T) {
	s := NewSample(3)
	for i := 0; i < 3; i++ {
		require.True(t, s.Get(i).Missing)
	}
}

func TestSampleCloneIndependence(t *testing.T) {
	base := NewSample(2)
	base.Set(0, NewDouble(1))

	clone := base.Clone()
	clone.Set(0, NewDouble(2))

	require.Equal(t, 1.0, base.Get(0).Number)
	require.Equal(t, 2.0, clone.Get(0).Number)
}

func TestSampleSetIfMissing(t *testing.T) {
	s := NewSample(1)
	s.SetIfMissing(0, NewDouble(5))
	require.Equal(t, 5.0, s.Get(0).Number)

	s.SetIfMissing(0, NewDouble(9))
	require.Equal(t, 5.0, s.Get(0).Number, "SetIfMissing must not overwrite a present value")
}
