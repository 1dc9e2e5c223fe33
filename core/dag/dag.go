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

// Package dag orders a set of named, input-declaring nodes (DerivedFields,
// OutputFields) into a dependency-respecting evaluation sequence, pruning any
// node whose dependency chain can never be satisfied. Grounded on
// core/dagbuilder.h, generalized from a DerivedField-only builder into one
// usable by any field kind with a name and a set of inputs.
package dag

// Node is anything the builder can order: a name, and the set of other
// names it reads while evaluating.
type Node interface {
	NodeName() string
	NodeInputs() []string
}

// simpleNode is the adapter loaders use to feed a DerivedField or
// OutputField (which declare a name and an input list but don't implement
// Node themselves, keeping this package independent of core/field) into
// Build.
type simpleNode struct {
	name   string
	inputs []string
}

func (s simpleNode) NodeName() string     { return s.name }
func (s simpleNode) NodeInputs() []string { return s.inputs }

// NewNode wraps a (name, inputs) pair as a Node.
func NewNode(name string, inputs []string) Node {
	return simpleNode{name: name, inputs: inputs}
}

// Build returns node names in an order where every node's inputs that are
// themselves nodes appear before it, depth-first, in first-seen order. A
// node whose dependency chain includes an input that is neither another
// node nor a known field (per knownInput) is pruned from the result, along
// with everything that (transitively) depends on it — a PMML document may
// declare computations that can never run because a referenced field was
// itself dropped; rather than fail the whole load, this silently excludes
// them exactly as the original dagbuilder.h does.
func Build(nodes []Node, knownInput func(name string) bool) []string {
	byName := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byName[n.NodeName()] = n
	}

	visited := make(map[string]bool, len(nodes))
	removed := make(map[string]bool)
	var order []string

	var visit func(n Node)
	visit = func(n Node) {
		name := n.NodeName()
		if visited[name] {
			return
		}

		for _, input := range n.NodeInputs() {
			if removed[input] {
				removed[name] = true
				visited[name] = true
				return
			}

			if dep, ok := byName[input]; ok {
				visit(dep)
				continue
			}

			if !knownInput(input) {
				removed[name] = true
				visited[name] = true
				return
			}
		}

		visited[name] = true
		order = append(order, name)
	}

	for _, n := range nodes {
		visit(n)
	}

	return order
}
