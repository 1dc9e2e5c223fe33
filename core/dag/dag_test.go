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

package dag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildOrdersDependenciesFirst(t *testing.T) {
	nodes := []Node{
		NewNode("c", []string{"b"}),
		NewNode("b", []string{"a"}),
		NewNode("a", []string{"x"}),
	}

	order := Build(nodes, func(name string) bool { return name == "x" })
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestBuildPrunesUnresolvableNode(t *testing.T) {
	nodes := []Node{
		NewNode("a", []string{"unknown_field"}),
		NewNode("b", []string{"x"}),
	}

	order := Build(nodes, func(name string) bool { return name == "x" })
	require.Equal(t, []string{"b"}, order)
}

func TestBuildPrunesTransitiveDependents(t *testing.T) {
	nodes := []Node{
		NewNode("a", []string{"unknown_field"}),
		NewNode("b", []string{"a"}),
	}

	order := Build(nodes, func(name string) bool { return false })
	require.Empty(t, order)
}

func TestBuildHandlesDiamondDependency(t *testing.T) {
	nodes := []Node{
		NewNode("d", []string{"b", "c"}),
		NewNode("b", []string{"a"}),
		NewNode("c", []string{"a"}),
		NewNode("a", []string{"x"}),
	}

	order := Build(nodes, func(name string) bool { return name == "x" })
	require.Equal(t, []string{"a", "b", "c", "d"}, order)
}

func TestBuildNoDependencies(t *testing.T) {
	nodes := []Node{
		NewNode("a", []string{"x"}),
		NewNode("b", []string{"y"}),
	}

	order := Build(nodes, func(name string) bool { return true })
	require.Equal(t, []string{"a", "b"}, order)
}
