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

func TestIndexerGetOrSet(t *testing.T) {
	ix := NewIndexer()

	i1 := ix.GetOrSet("petal_length")
	i2 := ix.GetOrSet("petal_width")
	i3 := ix.GetOrSet("petal_length")

	require.Equal(t, 0, i1)
	require.Equal(t, 1, i2)
	require.Equal(t, i1, i3, "re-indexing the same name must return the same slot")
	require.Equal(t, 2, ix.Size())
}

func TestIndexerTypeSetOnlyOnce(t *testing.T) {
	ix := NewIndexer()

	i, typ := ix.GetOrSetTyped("species", String)
	require.Equal(t, String, typ)

	_, typ2 := ix.GetOrSetTyped("species", Double)
	require.Equal(t, String, typ2, "setting the type a second time must not overwrite it")
	require.Equal(t, String, ix.GetType(i))
}

func TestIndexerUnknownNameFails(t *testing.T) {
	ix := NewIndexer()
	_, err := ix.GetIndex("nope")
	require.Error(t, err)
	require.True(t, ErrMissing.Is(err))
}

func TestIndexerRandomNameNoCollision(t *testing.T) {
	ix := NewIndexer()
	existing := ix.GetOrSet("x")
	name := ix.RandomName()
	require.NotEqual(t, ix.GetName(existing), name)
	require.False(t, ix.Contains(name))
}
